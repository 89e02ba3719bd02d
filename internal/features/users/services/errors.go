package users_services

import "errors"

// Domain conditions raised by the auth services. Controllers translate these
// 1:1 to HTTP statuses; they are never retried.
var (
	// ErrUserExists maps to 409.
	ErrUserExists = errors.New("user already exists with this email")

	// ErrInvalidCredentials is deliberately identical for unknown email and
	// wrong password so the response does not leak which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, malformed claims and expiry of
	// access tokens.
	ErrInvalidToken = errors.New("invalid access token")

	// ErrInvalidRefreshToken covers bad signature, a missing stored row and
	// an inactive owner.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRefreshTokenExpired is raised when the stored row is past its
	// expiry; the row is deleted as a side effect.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrIncorrectPassword = errors.New("current password is incorrect")

	ErrUserNotFound = errors.New("user not found")
)
