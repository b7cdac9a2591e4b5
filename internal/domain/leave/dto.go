package leave

import (
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID   string  `json:"-"`
	LeaveType    string  `json:"leave_type"`
	Subtype      *string `json:"subtype,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	NumberOfDays float64 `json:"number_of_days"`
	WhereSpent   string  `json:"where_spent"`
	Commutation  bool    `json:"commutation"`
	LocationNote *string `json:"location_specify,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Category(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be vacation or sick",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.NumberOfDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "number_of_days",
			Message: "number_of_days must be greater than zero",
		})
	}

	if validator.IsEmpty(r.WhereSpent) {
		errs = append(errs, validator.ValidationError{
			Field:   "where_spent",
			Message: "where_spent is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecisionRequest struct {
	Decision string  `json:"decision"`
	Remarks  *string `json:"remarks,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Decision(r.Decision).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be approve or disapprove",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name,omitempty"`
	DepartmentName *string    `json:"department_name,omitempty"`
	LeaveType      string     `json:"leave_type"`
	Subtype        *string    `json:"subtype,omitempty"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	NumberOfDays   float64    `json:"number_of_days"`
	WhereSpent     string     `json:"where_spent"`
	LocationNote   *string    `json:"location_specify,omitempty"`
	Commutation    bool       `json:"commutation"`
	WithoutPay     bool       `json:"without_pay"`
	Status         string     `json:"status"`
	RecommendedBy  *string    `json:"recommended_by,omitempty"`
	RecommendedAt  *time.Time `json:"recommended_at,omitempty"`
	RecommendNotes *string    `json:"recommendation_remarks,omitempty"`
	HRDecidedBy    *string    `json:"hr_decided_by,omitempty"`
	HRDecidedAt    *time.Time `json:"hr_decided_at,omitempty"`
	HRNotes        *string    `json:"hr_remarks,omitempty"`
	MayorDecidedBy *string    `json:"mayor_decided_by,omitempty"`
	MayorDecidedAt *time.Time `json:"mayor_decided_at,omitempty"`
	MayorNotes     *string    `json:"mayor_remarks,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToResponse(req LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             req.ID,
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		DepartmentName: req.DepartmentName,
		LeaveType:      string(req.Category),
		Subtype:        req.Subtype,
		StartDate:      req.StartDate.Format("2006-01-02"),
		EndDate:        req.EndDate.Format("2006-01-02"),
		NumberOfDays:   req.NumberOfDays,
		WhereSpent:     req.WhereSpent,
		LocationNote:   req.LocationNote,
		Commutation:    req.Commutation,
		WithoutPay:     req.WithoutPay,
		Status:         string(req.Status),
		RecommendedBy:  req.RecommendedBy,
		RecommendedAt:  req.RecommendedAt,
		RecommendNotes: req.RecommendNotes,
		HRDecidedBy:    req.HRDecidedBy,
		HRDecidedAt:    req.HRDecidedAt,
		HRNotes:        req.HRNotes,
		MayorDecidedBy: req.MayorDecidedBy,
		MayorDecidedAt: req.MayorDecidedAt,
		MayorNotes:     req.MayorNotes,
		CancelledAt:    req.CancelledAt,
		CreatedAt:      req.CreatedAt,
	}
}

// DecisionHistory is the reconstructed audit trail for one request, shown to
// HR and mayor views so they can see prior-stage reasoning.
type DecisionHistory struct {
	Recommendations []Recommendation `json:"recommendations"`
	Approvals       []Approval       `json:"approvals"`
}
