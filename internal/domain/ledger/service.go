package ledger

import (
	"context"

	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
)

// CreditCheck is the outcome of a balance check against an employee's
// current-month record.
type CreditCheck struct {
	Sufficient bool
	Available  float64
}

// Service owns the leave-credit ledger. All balance math rounds to three
// decimals and preserves balance = earned - used.
type Service interface {
	// CheckCredits reports whether the employee's current balance in the
	// given category covers the requested days.
	CheckCredits(ctx context.Context, employeeID string, category leave.Category, days float64) (CreditCheck, error)

	// RecordApprovedLeave itemizes a mayor-approved request into the record
	// of the month the leave starts in. Paid leave starting in or before the
	// current month is deducted from the balance; unpaid leave accumulates
	// lwop_days instead. Leave starting in a future month is recorded but
	// not yet deducted.
	RecordApprovedLeave(ctx context.Context, request leave.LeaveRequest) error

	// AddUndertime accumulates undertime hours on the given month's record
	// and charges the same hours against the vacation balance.
	AddUndertime(ctx context.Context, req AddUndertimeRequest) (Record, error)

	// CurrentRecord returns the employee's record for the current month,
	// creating it from the prior month's balances when absent.
	CurrentRecord(ctx context.Context, employeeID string) (Record, error)

	ListRecords(ctx context.Context, employeeID string) ([]Record, error)
}
