/*
Package peerfund defines the interfaces that tie the fund extensions together:
storage, messages, handlers, decorators, principals and events. It also holds
the helpers to carry a logger and block information through a context.

Look into this package for a brief overview of the design decisions made
around the extension building blocks. The extensions themselves live under
x/, the application wiring under app/ and cmd/peerfund.
*/
package peerfund
