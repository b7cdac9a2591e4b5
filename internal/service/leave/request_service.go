package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
)

type RequestServiceImpl struct {
	requestRepo  leave.LeaveRequestRepository
	recRepo      leave.RecommendationRepository
	apprRepo     leave.ApprovalRepository
	employeeRepo employee.Repository
	ledgerSvc    ledger.Service
	notifier     notification.Service
}

func NewRequestService(
	requestRepo leave.LeaveRequestRepository,
	recRepo leave.RecommendationRepository,
	apprRepo leave.ApprovalRepository,
	employeeRepo employee.Repository,
	ledgerSvc ledger.Service,
	notifier notification.Service,
) leave.RequestService {
	return &RequestServiceImpl{
		requestRepo:  requestRepo,
		recRepo:      recRepo,
		apprRepo:     apprRepo,
		employeeRepo: employeeRepo,
		ledgerSvc:    ledgerSvc,
		notifier:     notifier,
	}
}

func (s *RequestServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, string, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, "", err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, "", err
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, "", err
	}

	category := leave.Category(req.LeaveType)

	check, err := s.ledgerSvc.CheckCredits(ctx, req.EmployeeID, category, req.NumberOfDays)
	if err != nil {
		return leave.LeaveRequest{}, "", err
	}

	var warning string
	withoutPay := false
	if !check.Sufficient {
		withoutPay = true
		warning = fmt.Sprintf(
			"insufficient %s leave credits, request filed without pay (available: %.3f, requesting: %v)",
			req.LeaveType, check.Available, req.NumberOfDays,
		)
	}

	request := leave.LeaveRequest{
		EmployeeID:   req.EmployeeID,
		Category:     category,
		Subtype:      req.Subtype,
		StartDate:    startDate,
		EndDate:      endDate,
		NumberOfDays: req.NumberOfDays,
		WhereSpent:   req.WhereSpent,
		LocationNote: req.LocationNote,
		Commutation:  req.Commutation,
		WithoutPay:   withoutPay,
		Status:       leave.StatusPending,
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, "", err
	}

	s.notifyDepartmentAdmins(ctx, created, notification.TypeLeaveSubmitted,
		"New leave request",
		fmt.Sprintf("A %s leave request for %v day(s) is awaiting your recommendation.", created.Category, created.NumberOfDays),
	)

	return created, warning, nil
}

func (s *RequestServiceImpl) Get(ctx context.Context, actor auth.Actor, id string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := canView(actor, request); err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (s *RequestServiceImpl) List(ctx context.Context, actor auth.Actor, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	switch actor.Role {
	case employee.RoleEmployee:
		filter.EmployeeID = &actor.EmployeeID
		filter.DepartmentID = nil
	case employee.RoleDepartmentAdmin:
		filter.DepartmentID = &actor.DepartmentID
	case employee.RoleHR, employee.RoleMayor:
		// Unrestricted.
	default:
		return nil, 0, leave.ErrRoleNotAllowed
	}

	return s.requestRepo.List(ctx, filter)
}

func (s *RequestServiceImpl) Cancel(ctx context.Context, actor auth.Actor, id string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id, leave.QueryOptions{})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.EmployeeID != actor.EmployeeID {
		return leave.LeaveRequest{}, leave.ErrNotRequestOwner
	}
	if !request.Status.Cancellable() {
		return leave.LeaveRequest{}, leave.ErrNotCancellable
	}

	now := time.Now()
	expected := request.Status
	err = s.requestRepo.ApplyStage(ctx, leave.StageUpdate{
		ID:             request.ID,
		Status:         leave.StatusCancelled,
		ExpectedStatus: &expected,
		CancelledAt:    &now,
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.requestRepo.GetByID(ctx, id, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyDepartmentAdmins(ctx, updated, notification.TypeLeaveCancelled,
		"Leave request cancelled",
		fmt.Sprintf("A pending %s leave request for %v day(s) was withdrawn by the requester.", updated.Category, updated.NumberOfDays),
	)

	return updated, nil
}

func (s *RequestServiceImpl) History(ctx context.Context, actor auth.Actor, id string) (leave.DecisionHistory, error) {
	request, err := s.requestRepo.GetByID(ctx, id, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.DecisionHistory{}, err
	}
	if err := canView(actor, request); err != nil {
		return leave.DecisionHistory{}, err
	}

	recs, err := s.recRepo.GetByRequestID(ctx, id)
	if err != nil {
		return leave.DecisionHistory{}, err
	}
	approvals, err := s.apprRepo.GetByRequestID(ctx, id)
	if err != nil {
		return leave.DecisionHistory{}, err
	}

	return leave.DecisionHistory{
		Recommendations: recs,
		Approvals:       approvals,
	}, nil
}

// canView gates single-request reads: owner, HR, mayor, or a department
// admin of the requester's department.
func canView(actor auth.Actor, request leave.LeaveRequest) error {
	if request.EmployeeID == actor.EmployeeID {
		return nil
	}

	switch actor.Role {
	case employee.RoleHR, employee.RoleMayor:
		return nil
	case employee.RoleDepartmentAdmin:
		if request.DepartmentID != nil && *request.DepartmentID == actor.DepartmentID {
			return nil
		}
		return leave.ErrWrongDepartment
	}

	return leave.ErrRoleNotAllowed
}

// notifyDepartmentAdmins fans a fire-and-forget notification out to every
// active department admin of the requester's department.
func (s *RequestServiceImpl) notifyDepartmentAdmins(ctx context.Context, request leave.LeaveRequest, typ notification.Type, title, message string) {
	if request.DepartmentID == nil {
		requester, err := s.employeeRepo.GetByID(ctx, request.EmployeeID, employee.QueryOptions{})
		if err != nil {
			return
		}
		request.DepartmentID = &requester.DepartmentID
	}

	role := employee.RoleDepartmentAdmin
	admins, _, err := s.employeeRepo.List(ctx, employee.Filter{
		DepartmentID: request.DepartmentID,
		Role:         &role,
	})
	if err != nil {
		return
	}

	for _, admin := range admins {
		s.notifier.Notify(notification.PushRequest{
			RecipientID: admin.ID,
			SenderID:    &request.EmployeeID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data: map[string]interface{}{
				"leave_request_id": request.ID,
				"status":           string(request.Status),
			},
		})
	}
}
