package response

import (
	"errors"
	"net/http"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrEmployeeNoExists):
		Conflict(w, "Employee number already registered")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, "Invalid employee role", nil)
	case errors.Is(err, employee.ErrLastHRManager):
		Conflict(w, "Cannot remove the last active HR employee")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "Cannot delete your own employee record", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrNotRequestOwner),
		errors.Is(err, leave.ErrWrongDepartment),
		errors.Is(err, leave.ErrRoleNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrDuplicateDecision):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrNotCancellable):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrRemarksRequired):
		BadRequest(w, err.Error(), nil)

	// Ledger domain errors
	case errors.Is(err, ledger.ErrRecordNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, ledger.ErrRecordExists):
		Conflict(w, "Leave record already exists for this month")
	case errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, ledger.ErrInvalidHours),
		errors.Is(err, ledger.ErrUnknownCategory):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
