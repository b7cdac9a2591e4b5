package employee

import (
	"context"
	"io"
)

// EmployeeService covers HR-managed employee administration.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)

	// Update guards against demoting or deactivating the last active HR
	// employee, which would lock the approval pipeline.
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	// Delete refuses self-deletion and removal of the last active HR employee.
	Delete(ctx context.Context, actorID, id string) error

	// UploadAvatar stores the image and returns its public URL.
	UploadAvatar(ctx context.Context, employeeID, filename, contentType string, file io.Reader) (string, error)
}

// DepartmentService manages the department reference table.
type DepartmentService interface {
	Create(ctx context.Context, dept Department) (Department, error)
	Get(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
