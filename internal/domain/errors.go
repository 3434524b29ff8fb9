package domain

import "errors"

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates that the caller is not authorized to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so login failures never reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates that no live session accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmailTaken indicates that a user with the same email already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)
