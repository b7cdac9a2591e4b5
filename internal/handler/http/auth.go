package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/jwt"
)

const oauthStateCookie = "oauth_state"

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

func sessionFrom(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	}
}

func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pair, refreshToken, refreshExpiresAt, err := h.authService.Login(r.Context(), req, sessionFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt))
	response.Success(w, pair)
}

func (h *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	pair, refreshToken, refreshExpiresAt, err := h.authService.Refresh(r.Context(), cookie.Value, sessionFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt))
	response.Success(w, pair)
}

func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.authService.Logout(r.Context(), refreshToken); err != nil {
		response.HandleError(w, err)
		return
	}

	// Expire the cookie client-side.
	http.SetCookie(w, h.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix()))
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (h *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.authService.Me(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToResponse(emp))
}

func (h *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	url, state := h.authService.GoogleLoginURL(r.UserAgent())

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	var storedState string
	if cookie, err := r.Cookie(oauthStateCookie); err == nil {
		storedState = cookie.Value
	}

	pair, refreshToken, refreshExpiresAt, err := h.authService.GoogleCallback(r.Context(), state, storedState, code, sessionFrom(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt))
	response.Success(w, pair)
}

func (h *AuthHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	token, expiresIn, err := h.authService.SSEToken(actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}
