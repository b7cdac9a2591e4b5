package leave

import (
	"context"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
)

// RequestService covers the employee-facing request lifecycle.
type RequestService interface {
	// Create files a new request. When credits are insufficient the request
	// is still created as without-pay and a warning string is returned.
	Create(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, string, error)

	Get(ctx context.Context, actor auth.Actor, id string) (LeaveRequest, error)

	// List scopes results by the actor's role: employees see their own,
	// department admins their department, HR and the mayor everything.
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]LeaveRequest, int64, error)

	// Cancel withdraws a request. Only the owner may cancel, and only while
	// the request has not reached a terminal state.
	Cancel(ctx context.Context, actor auth.Actor, id string) (LeaveRequest, error)

	// History returns the reconstructed audit trail for one request.
	History(ctx context.Context, actor auth.Actor, id string) (DecisionHistory, error)
}

// DecisionService covers the three approval stages. Each stage admits exactly
// one source state; a decision against any other state fails with
// ErrInvalidTransition, and a repeated decision by the same approver fails
// with ErrDuplicateDecision.
type DecisionService interface {
	// Recommend is the department-admin stage, valid only on pending requests
	// from the admin's own department.
	Recommend(ctx context.Context, actor auth.Actor, requestID string, req DecisionRequest) (LeaveRequest, error)

	// HRDecide is the HR stage, valid only on recommended requests.
	HRDecide(ctx context.Context, actor auth.Actor, requestID string, req DecisionRequest) (LeaveRequest, error)

	// MayorDecide is the final stage, valid only on hr_approved requests.
	// Approval writes the ledger entry in the same transaction.
	MayorDecide(ctx context.Context, actor auth.Actor, requestID string, req DecisionRequest) (LeaveRequest, error)
}
