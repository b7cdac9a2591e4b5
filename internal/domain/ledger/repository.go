package ledger

import "context"

// Repository - interface for the leave_records table. One row per
// (employee, month, year); the table enforces uniqueness on that key.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByEmployeeMonthYear(ctx context.Context, employeeID string, month, year int) (Record, error)
	// GetLatestByEmployee returns the most recent row ordered by
	// (year, month) descending, or ErrRecordNotFound.
	GetLatestByEmployee(ctx context.Context, employeeID string) (Record, error)
	// GetLatestBefore returns the most recent row strictly before the given
	// month, used to carry balances forward when a month's row is created.
	GetLatestBefore(ctx context.Context, employeeID string, month, year int) (Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	Update(ctx context.Context, record Record) error
}
