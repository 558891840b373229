package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrDuplicateAssignment blocks a single assignment when the user is
	// already scheduled somewhere on that date.
	ErrDuplicateAssignment = errors.New("user is already assigned on this date")
	// ErrAlreadyAssigned is reported when a move targets a (user, project,
	// date) that already exists. It is informational, not a failure.
	ErrAlreadyAssigned = errors.New("user is already assigned to this project on this date")
	ErrEmptySelection  = errors.New("at least one user must be selected")
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrUnavailable is returned while the datastore circuit is open.
	ErrUnavailable = errors.New("service temporarily unavailable")
)
