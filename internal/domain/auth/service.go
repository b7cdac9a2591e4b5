package auth

import (
	"context"

	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
)

// Actor is the authenticated principal extracted from access-token claims.
// Authorization decisions in services key off this, never off raw claims.
type Actor struct {
	EmployeeID   string
	Role         employee.Role
	DepartmentID string
}

// AuthService handles credential login, the Google OAuth2 flow, refresh-token
// rotation and short-lived SSE tokens.
type AuthService interface {
	// Login authenticates by email or employee number. It returns the access
	// token response plus the refresh token and its expiry for the cookie.
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenPairResponse, string, int64, error)

	// Refresh rotates a refresh token: the presented token is revoked and a
	// new pair is issued.
	Refresh(ctx context.Context, refreshToken string, session SessionTrackingRequest) (TokenPairResponse, string, int64, error)

	Logout(ctx context.Context, refreshToken string) error

	Me(ctx context.Context, employeeID string) (employee.Employee, error)

	// GoogleLoginURL returns the consent redirect URL and the state value the
	// handler stores in a short-lived cookie.
	GoogleLoginURL(userAgent string) (string, string)

	// GoogleCallback completes the OAuth2 flow. The Google account's verified
	// email must match an existing employee; there is no self-registration.
	GoogleCallback(ctx context.Context, state, storedState, code string, session SessionTrackingRequest) (TokenPairResponse, string, int64, error)

	// SSEToken issues a short-lived token for opening a notification stream.
	SSEToken(employeeID string) (string, int, error)
}
