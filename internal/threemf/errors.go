package threemf

import "fmt"

// ErrorCode classifies library errors
type ErrorCode int

const (
	ErrorCodeSuccess ErrorCode = iota
	ErrorCodeNotImplemented
	ErrorCodeInvalidParam
	ErrorCodeResourceNotFound
	ErrorCodeDuplicateMetaData
	ErrorCodeWriterClassUnknown
	ErrorCodeIO
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeSuccess:
		return "success"
	case ErrorCodeNotImplemented:
		return "not implemented"
	case ErrorCodeInvalidParam:
		return "invalid parameter"
	case ErrorCodeResourceNotFound:
		return "resource not found"
	case ErrorCodeDuplicateMetaData:
		return "duplicate metadata"
	case ErrorCodeWriterClassUnknown:
		return "writer class unknown"
	case ErrorCodeIO:
		return "input/output error"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// Error is returned by every failing library call
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
