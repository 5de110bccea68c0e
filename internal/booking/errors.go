package booking

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned when the same patient is already waiting for the
// same department.
var ErrDuplicate = errors.New("appointment already exists")

// InputError reports an admission request that failed validation.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInputError reports whether err is or wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
