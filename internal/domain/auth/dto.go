package auth

import "github.com/lgu-hris/leave-backend-go/internal/pkg/validator"

type LoginRequest struct {
	// Identifier accepts either the employee's email or employee number.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresAt    int64  `json:"expires_at"`
	EmployeeID   string `json:"employee_id"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
	FullName     string `json:"full_name"`
}
