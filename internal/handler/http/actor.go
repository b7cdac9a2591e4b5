package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
)

// actorFrom rebuilds the authenticated principal from access-token claims.
func actorFrom(r *http.Request) (auth.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Actor{}, auth.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return auth.Actor{}, auth.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	departmentID, _ := claims["department_id"].(string)

	return auth.Actor{
		EmployeeID:   employeeID,
		Role:         employee.Role(roleStr),
		DepartmentID: departmentID,
	}, nil
}
