package retry

import (
	"errors"
	"fmt"
)

// ErrExhausted is matched by errors.Is on every ExhaustedError
var ErrExhausted = errors.New("retry attempts exhausted")

// ExhaustedError is returned when every attempt failed with a retryable error
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts", ErrExhausted, e.Attempts)
}

// Is matches ErrExhausted
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// IsExhausted returns true if err is an ExhaustedError
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}
