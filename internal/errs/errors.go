package errs

import (
	"errors"
	"net/http"
)

// Kind classifies an error so the HTTP layer can pick a status code without
// string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindGateway
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries every missing/invalid field for validation errors so the
	// caller can fix the whole form in one pass.
	Fields []string
	cause  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) HTTPCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindGateway:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func Validation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Gateway(message string, cause error) *Error {
	return &Error{Kind: KindGateway, Message: message, cause: cause}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// As unwraps err into *Error if it is one anywhere in the chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}
