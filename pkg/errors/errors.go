package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeAuth        ErrorType = "auth"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// ErrCorruptStorage indicates an existing snapshot file whose structure cannot
// be parsed. Absence of the file is not corruption; callers treat a missing
// file as an empty history.
var ErrCorruptStorage = errors.New("snapshot storage is corrupt")

// IsFetchError reports whether err originated from the remote follower lookup.
func IsFetchError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// IsCorruptStorage reports whether err indicates unparseable snapshot storage.
func IsCorruptStorage(err error) bool {
	return errors.Is(err, ErrCorruptStorage)
}
