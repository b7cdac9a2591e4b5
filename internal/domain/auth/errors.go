package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid identifier or password")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
)
