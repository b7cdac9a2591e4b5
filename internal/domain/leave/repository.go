package leave

import (
	"context"
	"time"
)

// QueryOptions controls which related data gets joined into the result.
type QueryOptions struct {
	IncludeEmployee bool
}

type Filter struct {
	Status       *string
	Category     *string
	EmployeeID   *string
	DepartmentID *string
	Page         int
	Limit        int
}

// StageUpdate carries a single stage transition to storage. Exactly one
// stage's fields are set per call. When ExpectedStatus is set, the update
// applies only if the row is still in that state; a concurrent transition
// surfaces as ErrInvalidTransition.
type StageUpdate struct {
	ID             string
	Status         Status
	ExpectedStatus *Status

	RecommendedBy  *string
	RecommendedAt  *time.Time
	RecommendNotes *string

	HRDecidedBy *string
	HRDecidedAt *time.Time
	HRNotes     *string

	MayorDecidedBy *string
	MayorDecidedAt *time.Time
	MayorNotes     *string

	CancelledAt *time.Time
}

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, opts QueryOptions) (LeaveRequest, error)
	List(ctx context.Context, filter Filter) ([]LeaveRequest, int64, error)
	ApplyStage(ctx context.Context, update StageUpdate) error
}

// RecommendationRepository - interface for the leave_recommendations table.
// Create surfaces ErrDuplicateDecision when the (request, admin) uniqueness
// constraint rejects the insert.
type RecommendationRepository interface {
	Create(ctx context.Context, rec Recommendation) (Recommendation, error)
	GetByRequestID(ctx context.Context, requestID string) ([]Recommendation, error)
}

// ApprovalRepository - interface for the leave_approvals table, symmetric to
// RecommendationRepository for the HR stage.
type ApprovalRepository interface {
	Create(ctx context.Context, appr Approval) (Approval, error)
	GetByRequestID(ctx context.Context, requestID string) ([]Approval, error)
}
