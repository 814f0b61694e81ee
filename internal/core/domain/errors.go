package domain

import "errors"

var (
	// ErrValidation covers malformed or missing input fields.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicateUsername and ErrDuplicateEmail signal uniqueness conflicts
	// on registration. Both are detected before any write and again at the
	// store's unique index, so a losing racer sees the same error.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	// ErrInvalidCredentials is returned uniformly for unknown-user and
	// wrong-password logins so responses never aid username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers every token rejection: missing or malformed
	// header, bad signature, wrong algorithm, expiry, missing claims.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrForbidden means the token verified but its role set does not
	// intersect the route's required roles.
	ErrForbidden = errors.New("access forbidden")

	// ErrUserNotFound is internal to the store contract; the Authenticator
	// maps it to ErrInvalidCredentials before it can reach a login response.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole rejects role strings outside the closed {USER, ADMIN} set.
	ErrInvalidRole = errors.New("invalid role")
)
