package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid login id, email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("current password is incorrect")
	ErrTooManyRequests     = errors.New("too many login attempts")
)
