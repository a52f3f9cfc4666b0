package session

import (
	"errors"
	"fmt"
)

// Error represents provider reported error
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error returns error message
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// StatusCode returns HTTP status reported by provider
func (e *Error) StatusCode() int {
	return e.Status
}

// NewError creates provider error
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// AsError returns provider error from err chain
func AsError(err error) (*Error, bool) {
	var ret *Error
	if errors.As(err, &ret) {
		return ret, true
	}
	return nil, false
}
