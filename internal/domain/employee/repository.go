package employee

import "context"

// QueryOptions controls which related data gets joined into the result.
// Joins are opt-in so list endpoints stay cheap.
type QueryOptions struct {
	IncludeDepartment bool
}

type Filter struct {
	DepartmentID *string
	Role         *Role
	Search       *string
	Page         int
	Limit        int
}

// Repository - interface for the employees table
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, opts QueryOptions) (Employee, error)
	GetByEmployeeNo(ctx context.Context, employeeNo string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error
	CountActiveByRole(ctx context.Context, role Role) (int64, error)
}

// DepartmentRepository - interface for the departments table
type DepartmentRepository interface {
	Create(ctx context.Context, dept Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}
