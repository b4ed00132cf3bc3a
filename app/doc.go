/*
Package app assembles extensions into an application.

A Router dispatches messages to handlers by their path, decorators are
chained around it with ChainDecorators, and a StoreApp runs the resulting
handler against a versioned store, one call at a time.
*/
package app
