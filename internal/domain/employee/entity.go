package employee

import "time"

// Role is the typed role discriminator. Every authorization check goes
// through Role or a Permission lookup, never through raw string comparison
// in handlers.
type Role string

const (
	RoleEmployee        Role = "employee"
	RoleDepartmentAdmin Role = "department_admin"
	RoleHR              Role = "hr"
	RoleMayor           Role = "mayor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleDepartmentAdmin, RoleHR, RoleMayor:
		return true
	}
	return false
}

// Employee entity
type Employee struct {
	ID           string
	EmployeeNo   string // external id printed on the physical ID card
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	DepartmentID string
	Position     *string
	AvatarURL    *string
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined data, populated only when the caller opts in
	DepartmentName *string
}

// Department entity
type Department struct {
	ID        string
	Name      string
	Code      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
