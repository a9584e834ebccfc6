package errors

import (
	"errors"
	"fmt"
)

var (
	ErrorInvalidArgument  = errors.New("invalid argument")   // Static error for malformed user input.
	ErrorArgumentTooLarge = errors.New("argument too large") // Static error for input above a configured limit.
)

// WrapInvalidArgument wraps the error for a malformed argument.
func WrapInvalidArgument(name string, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrorInvalidArgument, name, value)
}

// WrapArgumentTooLarge wraps the error for an argument above its limit.
func WrapArgumentTooLarge(name string, value int64, limit int64) error {
	return fmt.Errorf("%w: %s=%d exceeds %d", ErrorArgumentTooLarge, name, value, limit)
}
