package errors

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the innermost stack trace attached to the error chain,
// or nil if there is none.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	for err != nil {
		if s, ok := err.(stackTracer); ok {
			st = s.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return st
}

// StackTrace returns the call stack recorded when the error was first
// wrapped.
func (e *wrappedError) StackTrace() errors.StackTrace {
	return stackTrace(e.parent)
}

// Format works like pkg/errors. %+v prints the message followed by the
// stack trace of the creation point, with frames of this package removed.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			for _, f := range e.StackTrace() {
				if name := fmt.Sprintf("%n", f); name == "Wrap" || name == "Wrapf" || name == "(*Error).New" || name == "(*Error).Newf" {
					continue
				}
				fmt.Fprintf(s, "\n%+v", f)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
