package application

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
)

// ValidationError reports a malformed or rejected update request.
// Err, when set, is the taxonomy error the failure also belongs to.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

var (
	errNoUpdateFields   = &ValidationError{Message: "at least one field required"}
	errOldPasswordWrong = &ValidationError{Message: "old password incorrect"}
	errUsernameTaken    = &ValidationError{Message: "username taken", Err: ErrDuplicateUsername}
)
