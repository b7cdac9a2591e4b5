package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Opening balances for an employee's first-ever ledger row, and the monthly
// accrual applied when a new month's row is carried forward from a prior one.
const (
	OpeningVacationBalance = 15.0
	OpeningSickBalance     = 12.0
	MonthlyVacationAccrual = 1.25
	MonthlySickAccrual     = 1.25
)

// Entry is one itemized leave charge inside a month's record.
type Entry struct {
	LeaveRequestID string  `json:"leave_request_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Days           float64 `json:"days"`
	Paid           bool    `json:"paid"`
}

// Entries is stored as a JSONB column.
type Entries []Entry

// Value implements driver.Valuer for database storage
func (e Entries) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(Entries{})
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner for database retrieval
func (e *Entries) Scan(value interface{}) error {
	if value == nil {
		*e = Entries{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ledger entries: invalid type")
	}

	return json.Unmarshal(bytes, e)
}

// Record is one employee's leave accounting for one calendar month.
// Invariant: balance = earned - used for both categories after any mutation.
type Record struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int

	VacationEarned  float64
	VacationUsed    float64
	VacationBalance float64

	SickEarned  float64
	SickUsed    float64
	SickBalance float64

	UndertimeHours float64
	LwopDays       float64

	VacationEntries Entries
	SickEntries     Entries

	CreatedAt time.Time
	UpdatedAt time.Time
}
