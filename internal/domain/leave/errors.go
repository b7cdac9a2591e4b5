package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrNotRequestOwner      = errors.New("only the requesting employee may cancel this request")
	ErrWrongDepartment      = errors.New("approver does not belong to the requesting employee's department")
	ErrRoleNotAllowed       = errors.New("role is not allowed to perform this decision")
	ErrInvalidTransition    = errors.New("leave request is not in a state that allows this decision")
	ErrDuplicateDecision    = errors.New("approver has already decided on this leave request")
	ErrRemarksRequired      = errors.New("disapproval requires a reason")
	ErrNotCancellable       = errors.New("leave request can no longer be cancelled")
)
