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
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
)

type DecisionServiceImpl struct {
	txManager    database.TxManager
	requestRepo  leave.LeaveRequestRepository
	recRepo      leave.RecommendationRepository
	apprRepo     leave.ApprovalRepository
	employeeRepo employee.Repository
	ledgerSvc    ledger.Service
	notifier     notification.Service
}

func NewDecisionService(
	txManager database.TxManager,
	requestRepo leave.LeaveRequestRepository,
	recRepo leave.RecommendationRepository,
	apprRepo leave.ApprovalRepository,
	employeeRepo employee.Repository,
	ledgerSvc ledger.Service,
	notifier notification.Service,
) leave.DecisionService {
	return &DecisionServiceImpl{
		txManager:    txManager,
		requestRepo:  requestRepo,
		recRepo:      recRepo,
		apprRepo:     apprRepo,
		employeeRepo: employeeRepo,
		ledgerSvc:    ledgerSvc,
		notifier:     notifier,
	}
}

// validateDecision covers the checks shared by all three stages.
func validateDecision(req leave.DecisionRequest) (leave.Decision, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	decision := leave.Decision(req.Decision)
	if decision == leave.DecisionDisapprove && (req.Remarks == nil || validator.IsEmpty(*req.Remarks)) {
		return "", leave.ErrRemarksRequired
	}
	return decision, nil
}

func (s *DecisionServiceImpl) Recommend(ctx context.Context, actor auth.Actor, requestID string, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	if actor.Role != employee.RoleDepartmentAdmin {
		return leave.LeaveRequest{}, leave.ErrRoleNotAllowed
	}

	decision, err := validateDecision(req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.DepartmentID == nil || *request.DepartmentID != actor.DepartmentID {
		return leave.LeaveRequest{}, leave.ErrWrongDepartment
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}

	newStatus := leave.StatusRecommended
	if decision == leave.DecisionDisapprove {
		newStatus = leave.StatusDisapproved
	}

	now := time.Now()
	expected := leave.StatusPending
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.recRepo.Create(txCtx, leave.Recommendation{
			LeaveRequestID:    request.ID,
			DepartmentAdminID: actor.EmployeeID,
			Decision:          decision,
			Remarks:           req.Remarks,
		}); err != nil {
			return err
		}

		return s.requestRepo.ApplyStage(txCtx, leave.StageUpdate{
			ID:             request.ID,
			Status:         newStatus,
			ExpectedStatus: &expected,
			RecommendedBy:  &actor.EmployeeID,
			RecommendedAt:  &now,
			RecommendNotes: req.Remarks,
		})
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if decision == leave.DecisionApprove {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveRecommended,
			"Leave request recommended",
			"Your leave request was recommended and forwarded to HR.")
		s.notifyRole(ctx, employee.RoleHR, updated, actor.EmployeeID, notification.TypeLeaveRecommended,
			"Leave request awaiting HR review",
			fmt.Sprintf("A recommended %s leave request for %v day(s) is awaiting HR review.", updated.Category, updated.NumberOfDays))
	} else {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveDisapproved,
			"Leave request disapproved",
			"Your leave request was disapproved at the department stage.")
	}

	return updated, nil
}

func (s *DecisionServiceImpl) HRDecide(ctx context.Context, actor auth.Actor, requestID string, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	if actor.Role != employee.RoleHR {
		return leave.LeaveRequest{}, leave.ErrRoleNotAllowed
	}

	decision, err := validateDecision(req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.StatusRecommended {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}

	newStatus := leave.StatusHRApproved
	if decision == leave.DecisionDisapprove {
		newStatus = leave.StatusDisapproved
	}

	now := time.Now()
	expected := leave.StatusRecommended
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.apprRepo.Create(txCtx, leave.Approval{
			LeaveRequestID: request.ID,
			HRManagerID:    actor.EmployeeID,
			Decision:       decision,
			Remarks:        req.Remarks,
		}); err != nil {
			return err
		}

		return s.requestRepo.ApplyStage(txCtx, leave.StageUpdate{
			ID:             request.ID,
			Status:         newStatus,
			ExpectedStatus: &expected,
			HRDecidedBy:    &actor.EmployeeID,
			HRDecidedAt:    &now,
			HRNotes:        req.Remarks,
		})
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if decision == leave.DecisionApprove {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveHRApproved,
			"Leave request approved by HR",
			"Your leave request passed HR review and awaits the mayor's decision.")
		s.notifyRole(ctx, employee.RoleMayor, updated, actor.EmployeeID, notification.TypeLeaveHRApproved,
			"Leave request awaiting final decision",
			fmt.Sprintf("An HR-approved %s leave request for %v day(s) awaits your decision.", updated.Category, updated.NumberOfDays))
	} else {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveDisapproved,
			"Leave request disapproved",
			"Your leave request was disapproved at the HR stage.")
	}

	return updated, nil
}

func (s *DecisionServiceImpl) MayorDecide(ctx context.Context, actor auth.Actor, requestID string, req leave.DecisionRequest) (leave.LeaveRequest, error) {
	if actor.Role != employee.RoleMayor {
		return leave.LeaveRequest{}, leave.ErrRoleNotAllowed
	}

	decision, err := validateDecision(req)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status != leave.StatusHRApproved {
		return leave.LeaveRequest{}, leave.ErrInvalidTransition
	}

	newStatus := leave.StatusApproved
	if decision == leave.DecisionDisapprove {
		newStatus = leave.StatusDisapproved
	}

	now := time.Now()
	expected := leave.StatusHRApproved
	// The stage write and the ledger write-back commit together so an
	// approved request can never be missing its credit deduction.
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.ApplyStage(txCtx, leave.StageUpdate{
			ID:             request.ID,
			Status:         newStatus,
			ExpectedStatus: &expected,
			MayorDecidedBy: &actor.EmployeeID,
			MayorDecidedAt: &now,
			MayorNotes:     req.Remarks,
		}); err != nil {
			return err
		}

		if decision == leave.DecisionApprove {
			return s.ledgerSvc.RecordApprovedLeave(txCtx, request)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID, leave.QueryOptions{IncludeEmployee: true})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if decision == leave.DecisionApprove {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveApproved,
			"Leave request approved",
			"Your leave request received final approval.")
	} else {
		s.notifyRequester(updated, actor.EmployeeID, notification.TypeLeaveDisapproved,
			"Leave request disapproved",
			"Your leave request was disapproved by the mayor.")
	}

	return updated, nil
}

func (s *DecisionServiceImpl) notifyRequester(request leave.LeaveRequest, senderID string, typ notification.Type, title, message string) {
	s.notifier.Notify(notification.PushRequest{
		RecipientID: request.EmployeeID,
		SenderID:    &senderID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"leave_request_id": request.ID,
			"status":           string(request.Status),
		},
	})
}

func (s *DecisionServiceImpl) notifyRole(ctx context.Context, role employee.Role, request leave.LeaveRequest, senderID string, typ notification.Type, title, message string) {
	staff, _, err := s.employeeRepo.List(ctx, employee.Filter{Role: &role})
	if err != nil {
		return
	}
	for _, member := range staff {
		s.notifier.Notify(notification.PushRequest{
			RecipientID: member.ID,
			SenderID:    &senderID,
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
