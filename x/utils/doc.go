// Package utils provides decorators shared by all handlers: savepoints,
// logging and panic recovery.
package utils
