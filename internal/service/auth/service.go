package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/oauth"
	"github.com/lgu-hris/leave-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employeeRepo  employee.Repository
	jwtService    jwt.Service
	jwtRepo       postgresql.JWTRepository
	googleService oauth.GoogleService
}

func NewAuthService(
	employeeRepo employee.Repository,
	jwtService jwt.Service,
	jwtRepo postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		jwtRepo:       jwtRepo,
		googleService: googleService,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenPairResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, "", 0, err
	}

	var emp employee.Employee
	var err error
	if strings.Contains(req.Identifier, "@") {
		emp, err = a.employeeRepo.GetByEmail(ctx, req.Identifier)
	} else {
		emp, err = a.employeeRepo.GetByEmployeeNo(ctx, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, "", 0, err
	}

	if !emp.IsActive {
		return auth.TokenPairResponse{}, "", 0, auth.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return a.issueTokenPair(ctx, emp, session)
}

func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string, session auth.SessionTrackingRequest) (auth.TokenPairResponse, string, int64, error) {
	employeeID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidToken
	}

	revoked, err := a.jwtRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidToken
		}
		return auth.TokenPairResponse{}, "", 0, err
	}
	if revoked {
		return auth.TokenPairResponse{}, "", 0, auth.ErrRefreshTokenRevoked
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID, employee.QueryOptions{})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPairResponse{}, "", 0, auth.ErrEmployeeNotFound
		}
		return auth.TokenPairResponse{}, "", 0, err
	}
	if !emp.IsActive {
		return auth.TokenPairResponse{}, "", 0, auth.ErrAccountInactive
	}

	// Rotation: the presented token dies with the new issuance.
	if err := a.jwtRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenPairResponse{}, "", 0, err
	}

	return a.issueTokenPair(ctx, emp, session)
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.jwtService.RevokeToken(refreshToken)
	return a.jwtRepo.RevokeRefreshToken(ctx, refreshToken)
}

func (a *AuthServiceImpl) Me(ctx context.Context, employeeID string) (employee.Employee, error) {
	return a.employeeRepo.GetByID(ctx, employeeID, employee.QueryOptions{IncludeDepartment: true})
}

func (a *AuthServiceImpl) GoogleLoginURL(userAgent string) (string, string) {
	state := a.googleService.GenerateState(userAgent)
	return a.googleService.RedirectURL(state), state
}

func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, state, storedState, code string, session auth.SessionTrackingRequest) (auth.TokenPairResponse, string, int64, error) {
	if state == "" || state != storedState {
		return auth.TokenPairResponse{}, "", 0, auth.ErrOAuthStateMismatch
	}

	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidToken
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenPairResponse{}, "", 0, auth.ErrInvalidToken
	}

	emp, err := a.employeeRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPairResponse{}, "", 0, auth.ErrEmployeeNotFound
		}
		return auth.TokenPairResponse{}, "", 0, err
	}
	if !emp.IsActive {
		return auth.TokenPairResponse{}, "", 0, auth.ErrAccountInactive
	}

	return a.issueTokenPair(ctx, emp, session)
}

func (a *AuthServiceImpl) SSEToken(employeeID string) (string, int, error) {
	return a.jwtService.GenerateSSEToken(employeeID)
}

func (a *AuthServiceImpl) issueTokenPair(ctx context.Context, emp employee.Employee, session auth.SessionTrackingRequest) (auth.TokenPairResponse, string, int64, error) {
	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.DepartmentID, emp.Role)
	if err != nil {
		return auth.TokenPairResponse{}, "", 0, err
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenPairResponse{}, "", 0, err
	}

	if err := a.jwtRepo.CreateRefreshToken(ctx, emp.ID, refreshToken, refreshExpiresAt, session); err != nil {
		return auth.TokenPairResponse{}, "", 0, err
	}

	return auth.TokenPairResponse{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt,
		EmployeeID:   emp.ID,
		Role:         string(emp.Role),
		DepartmentID: emp.DepartmentID,
		FullName:     emp.FullName,
	}, refreshToken, refreshExpiresAt, nil
}
