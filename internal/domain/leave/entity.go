package leave

import "time"

// Category maps to leave_category_enum in DB
type Category string

const (
	CategoryVacation Category = "vacation"
	CategorySick     Category = "sick"
)

func (c Category) Valid() bool {
	return c == CategoryVacation || c == CategorySick
}

// Status is the leave request lifecycle state. Requests move
// pending -> recommended -> hr_approved -> approved, with disapproval
// possible at each stage and owner cancellation before the mayor acts.
type Status string

const (
	StatusPending     Status = "pending"
	StatusRecommended Status = "recommended"
	StatusHRApproved  Status = "hr_approved"
	StatusApproved    Status = "approved"
	StatusDisapproved Status = "disapproved"
	StatusCancelled   Status = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusDisapproved, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether the owning employee may still cancel.
func (s Status) Cancellable() bool {
	switch s {
	case StatusPending, StatusRecommended, StatusHRApproved:
		return true
	}
	return false
}

// Decision is a single approver's verdict at any stage.
type Decision string

const (
	DecisionApprove    Decision = "approve"
	DecisionDisapprove Decision = "disapprove"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionDisapprove
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string

	Category     Category
	Subtype      *string
	StartDate    time.Time
	EndDate      time.Time
	NumberOfDays float64
	WhereSpent   string
	LocationNote *string
	Commutation  bool
	WithoutPay   bool

	Status Status

	// Department stage metadata
	RecommendedBy  *string
	RecommendedAt  *time.Time
	RecommendNotes *string

	// HR stage metadata
	HRDecidedBy *string
	HRDecidedAt *time.Time
	HRNotes     *string

	// Mayoral stage metadata
	MayorDecidedBy *string
	MayorDecidedAt *time.Time
	MayorNotes     *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined data, populated only when the caller opts in
	EmployeeName   *string
	DepartmentID   *string
	DepartmentName *string
}

// Recommendation is the department-stage audit record. At most one exists
// per (leave request, department admin); the table enforces it.
type Recommendation struct {
	ID                string
	LeaveRequestID    string
	DepartmentAdminID string
	Decision          Decision
	Remarks           *string
	CreatedAt         time.Time

	AdminName *string
}

// Approval is the HR-stage audit record, unique per (leave request, HR manager).
type Approval struct {
	ID             string
	LeaveRequestID string
	HRManagerID    string
	Decision       Decision
	Remarks        *string
	CreatedAt      time.Time

	ManagerName *string
}
