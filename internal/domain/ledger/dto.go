package ledger

import (
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
)

type AddUndertimeRequest struct {
	EmployeeID     string  `json:"user_id"`
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	UndertimeHours float64 `json:"undertime_hours"`
}

func (r *AddUndertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.UndertimeHours <= 0 {
		errs = append(errs, validator.ValidationError{Field: "undertime_hours", Message: "undertime_hours must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	VacationEarned  float64   `json:"vacation_earned"`
	VacationUsed    float64   `json:"vacation_used"`
	VacationBalance float64   `json:"vacation_balance"`
	SickEarned      float64   `json:"sick_earned"`
	SickUsed        float64   `json:"sick_used"`
	SickBalance     float64   `json:"sick_balance"`
	UndertimeHours  float64   `json:"undertime_hours"`
	LwopDays        float64   `json:"lwop_days"`
	VacationEntries Entries   `json:"vacation_entries"`
	SickEntries     Entries   `json:"sick_entries"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		Month:           rec.Month,
		Year:            rec.Year,
		VacationEarned:  rec.VacationEarned,
		VacationUsed:    rec.VacationUsed,
		VacationBalance: rec.VacationBalance,
		SickEarned:      rec.SickEarned,
		SickUsed:        rec.SickUsed,
		SickBalance:     rec.SickBalance,
		UndertimeHours:  rec.UndertimeHours,
		LwopDays:        rec.LwopDays,
		VacationEntries: rec.VacationEntries,
		SickEntries:     rec.SickEntries,
		UpdatedAt:       rec.UpdatedAt,
	}
}
