package members

import "errors"

var (
	ErrNotFound            = errors.New("member not found")
	ErrMissingFields       = errors.New("name, role, registration and badge are required")
	ErrInvalidRegistration = errors.New("registration must be exactly 9 digits")
	ErrInvalidBadge        = errors.New("badge id must be exactly 5 digits")
	ErrRegistrationTaken   = errors.New("registration already enrolled")
	ErrBadgeTaken          = errors.New("badge id already enrolled")
	ErrEmptyPassword       = errors.New("password must not be empty")
)
