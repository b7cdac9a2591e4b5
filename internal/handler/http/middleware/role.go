package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route on the role carried in the access token.
func RequirePermission(perm employee.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, leave.ErrRoleNotAllowed)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, leave.ErrRoleNotAllowed)
				return
			}

			if !employee.HasPermission(employee.Role(roleStr), perm) {
				response.HandleError(w, leave.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
