package apperrors

import "strings"

type appError struct {
	msg        string
	parent     Error
	wrapped    []error
	statuscode int
	expand     bool
}

// New creates a root error with no parent.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll renders the message followed by all wrapped causes when
// expansion is enabled. Kept separate from Error so internal causes are
// not leaked to clients unless a layer opts in.
func (e *appError) ErrorAll() string {
	if !e.expand || len(e.wrapped) == 0 {
		return e.msg
	}
	parts := make([]string, 0, len(e.wrapped))
	for _, err := range e.wrapped {
		parts = append(parts, err.Error())
	}
	return e.msg + ": " + strings.Join(parts, "; ")
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		parent:     e,
		statuscode: e.statuscode,
		expand:     e.expand,
	}
}

func (e *appError) Msg(msg string) Error {
	e.msg = msg
	return e
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	e.msg = msg
	e.wrapped = append(e.wrapped, err...)
	return e
}

func (e *appError) Err(err ...error) Error {
	e.wrapped = append(e.wrapped, err...)
	return e
}

func (e *appError) Unwrap() []error {
	return e.wrapped
}

func (e *appError) Is(target error) bool {
	if e == target {
		return true
	}
	if e.parent != nil && e.parent.Is(target) {
		return true
	}
	for _, err := range e.wrapped {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetExpandError(expand bool) Error {
	e.expand = expand
	return e
}

func (e *appError) SetStatusCode(code int) Error {
	e.statuscode = code
	return e
}

func (e *appError) StatusCode() int {
	return e.statuscode
}
