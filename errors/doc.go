/*
Package errors declares the error kinds used across peerfund.

Every error returned by a handler wraps one of the root errors created with
Register. A root error carries a numeric code that is stable over time and
can be shown to a client, while the wrapping layers add context for
operators.

Use Wrap or Wrapf at the point where an error is created. The innermost wrap
attaches a stack trace, further wraps only add a message. Test for a kind
with the root error Is method:

	if errors.ErrNotFound.Is(err) {
		...
	}

Formatting an error with %+v prints the stack trace of its creation point.
*/
package errors
