package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrPhoneExists    = errors.New("phone number already exists")
)

// IsConflict reports whether err is a uniqueness collision on either of the
// two unique attributes.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameExists) || errors.Is(err, ErrPhoneExists)
}

// ValidationError rejects a single field before any state is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PersistenceError reports a durable copy that could not be brought in line
// with the canonical record set. The canonical mutation is not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }
