package employee

import (
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeNo   string  `json:"employee_no"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	DepartmentID string  `json:"department_id"`
	Position     *string `json:"position,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeNo) {
		errs = append(errs, validator.ValidationError{Field: "employee_no", Message: "employee_no is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of employee, department_admin, hr, mayor"})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	FullName     *string `json:"full_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Position     *string `json:"position,omitempty"`
	AvatarURL    *string `json:"-"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "employee id is required"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Role != nil && !Role(*r.Role).Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of employee, department_admin, hr, mayor"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	EmployeeNo     string    `json:"employee_no"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName *string   `json:"department_name,omitempty"`
	Position       *string   `json:"position,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             emp.ID,
		EmployeeNo:     emp.EmployeeNo,
		FullName:       emp.FullName,
		Email:          emp.Email,
		Role:           string(emp.Role),
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		Position:       emp.Position,
		AvatarURL:      emp.AvatarURL,
		IsActive:       emp.IsActive,
		CreatedAt:      emp.CreatedAt,
	}
}
