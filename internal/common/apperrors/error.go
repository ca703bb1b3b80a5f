// Package apperrors provides the application error type used across the
// portal. Errors form a hierarchy: a sentinel created with New can derive
// children with New, and errors.Is matches a child against any ancestor.
// Each error carries an HTTP status code that the transport layer maps
// onto responses.
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
