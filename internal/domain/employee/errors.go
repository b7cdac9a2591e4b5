package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmployeeNoExists   = errors.New("employee number already registered")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid employee role")
	ErrLastHRManager      = errors.New("cannot remove the last HR employee")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own employee record")
)
