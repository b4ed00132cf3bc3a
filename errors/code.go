package errors

import "fmt"

const (
	// SuccessCode is returned for a nil error.
	SuccessCode uint32 = 0

	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

// Code returns the code of the root error wrapped by err. Errors that do
// not wrap a registered root error are internal and get code 1.
func Code(err error) uint32 {
	if isNil(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and the message that can be presented to a client.
// Messages of internal errors are replaced by a generic text unless debug
// is set. In debug mode the stack trace is included as well.
func Info(err error, debug bool) (uint32, string) {
	code := Code(err)
	switch {
	case code == SuccessCode:
		return code, ""
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalCode:
		return code, internalLog
	default:
		return code, err.Error()
	}
}
