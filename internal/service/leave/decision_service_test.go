package leave

import (
	"context"
	"testing"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decisionFixture struct {
	requestRepo *fakeRequestRepo
	recRepo     *fakeRecommendationRepo
	apprRepo    *fakeApprovalRepo
	ledgerSvc   *fakeLedgerService
	notifier    *fakeNotifier
	service     leave.DecisionService
}

func newDecisionFixture() *decisionFixture {
	requestRepo := newFakeRequestRepo()
	recRepo := newFakeRecommendationRepo()
	apprRepo := newFakeApprovalRepo()
	employeeRepo := newFakeEmployeeRepo(
		employee.Employee{ID: "emp-1", Role: employee.RoleEmployee, DepartmentID: "dept-1", IsActive: true},
		employee.Employee{ID: "admin-1", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-1", IsActive: true},
		employee.Employee{ID: "hr-1", Role: employee.RoleHR, DepartmentID: "dept-9", IsActive: true},
		employee.Employee{ID: "mayor-1", Role: employee.RoleMayor, DepartmentID: "dept-0", IsActive: true},
	)
	ledgerSvc := &fakeLedgerService{}
	notifier := &fakeNotifier{}

	requestRepo.departments["emp-1"] = "dept-1"

	return &decisionFixture{
		requestRepo: requestRepo,
		recRepo:     recRepo,
		apprRepo:    apprRepo,
		ledgerSvc:   ledgerSvc,
		notifier:    notifier,
		service:     NewDecisionService(passTx{}, requestRepo, recRepo, apprRepo, employeeRepo, ledgerSvc, notifier),
	}
}

var (
	deptAdmin  = auth.Actor{EmployeeID: "admin-1", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-1"}
	hrManager  = auth.Actor{EmployeeID: "hr-1", Role: employee.RoleHR, DepartmentID: "dept-9"}
	mayorActor = auth.Actor{EmployeeID: "mayor-1", Role: employee.RoleMayor, DepartmentID: "dept-0"}

	approveReq = leave.DecisionRequest{Decision: "approve"}
)

func disapproveReq(remarks string) leave.DecisionRequest {
	if remarks == "" {
		return leave.DecisionRequest{Decision: "disapprove"}
	}
	return leave.DecisionRequest{Decision: "disapprove", Remarks: &remarks}
}

func (fix *decisionFixture) seed(status leave.Status) string {
	created, _ := fix.requestRepo.Create(context.Background(), leave.LeaveRequest{
		EmployeeID:   "emp-1",
		Category:     leave.CategoryVacation,
		NumberOfDays: 3,
		Status:       status,
	})
	return created.ID
}

func TestRecommendApprove(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	updated, err := fix.service.Recommend(context.Background(), deptAdmin, id, approveReq)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusRecommended, updated.Status)
	require.NotNil(t, updated.RecommendedBy)
	assert.Equal(t, "admin-1", *updated.RecommendedBy)
	assert.NotNil(t, updated.RecommendedAt)
	require.Len(t, fix.recRepo.recommendations, 1)
	assert.Equal(t, leave.DecisionApprove, fix.recRepo.recommendations[0].Decision)
}

func TestRecommendDisapproveEndsRequest(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	updated, err := fix.service.Recommend(context.Background(), deptAdmin, id, disapproveReq("incomplete form"))
	require.NoError(t, err)

	assert.Equal(t, leave.StatusDisapproved, updated.Status)
	assert.True(t, updated.Status.Terminal())
}

func TestRecommendDisapproveRequiresRemarks(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	_, err := fix.service.Recommend(context.Background(), deptAdmin, id, disapproveReq(""))
	assert.ErrorIs(t, err, leave.ErrRemarksRequired)

	got, _ := fix.requestRepo.GetByID(context.Background(), id, leave.QueryOptions{})
	assert.Equal(t, leave.StatusPending, got.Status)
	assert.Empty(t, fix.recRepo.recommendations)
}

func TestRecommendWrongRole(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	_, err := fix.service.Recommend(context.Background(), hrManager, id, approveReq)
	assert.ErrorIs(t, err, leave.ErrRoleNotAllowed)
}

func TestRecommendWrongDepartment(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	otherAdmin := auth.Actor{EmployeeID: "admin-2", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-2"}
	_, err := fix.service.Recommend(context.Background(), otherAdmin, id, approveReq)
	assert.ErrorIs(t, err, leave.ErrWrongDepartment)
}

func TestRecommendOnlyFromPending(t *testing.T) {
	fix := newDecisionFixture()

	for _, status := range []leave.Status{
		leave.StatusRecommended, leave.StatusHRApproved,
		leave.StatusApproved, leave.StatusDisapproved, leave.StatusCancelled,
	} {
		id := fix.seed(status)
		_, err := fix.service.Recommend(context.Background(), deptAdmin, id, approveReq)
		assert.ErrorIs(t, err, leave.ErrInvalidTransition, "status %s", status)
	}
}

func TestRecommendDuplicateDecisionConflict(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	_, err := fix.service.Recommend(context.Background(), deptAdmin, id, approveReq)
	require.NoError(t, err)

	// Reset status as a stand-in for a concurrent writer that read the
	// request while still pending; the audit uniqueness must still hold.
	fix.requestRepo.requests[id].Status = leave.StatusPending

	_, err = fix.service.Recommend(context.Background(), deptAdmin, id, approveReq)
	assert.ErrorIs(t, err, leave.ErrDuplicateDecision)
	assert.Len(t, fix.recRepo.recommendations, 1)
}

func TestHRDecideApprove(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusRecommended)

	updated, err := fix.service.HRDecide(context.Background(), hrManager, id, approveReq)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusHRApproved, updated.Status)
	require.NotNil(t, updated.HRDecidedBy)
	assert.Equal(t, "hr-1", *updated.HRDecidedBy)
	require.Len(t, fix.apprRepo.approvals, 1)
}

func TestHRDecideOnlyFromRecommended(t *testing.T) {
	fix := newDecisionFixture()

	for _, status := range []leave.Status{
		leave.StatusPending, leave.StatusHRApproved,
		leave.StatusApproved, leave.StatusDisapproved, leave.StatusCancelled,
	} {
		id := fix.seed(status)
		_, err := fix.service.HRDecide(context.Background(), hrManager, id, approveReq)
		assert.ErrorIs(t, err, leave.ErrInvalidTransition, "status %s", status)
	}
}

func TestMayorApproveWritesLedger(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusHRApproved)

	updated, err := fix.service.MayorDecide(context.Background(), mayorActor, id, approveReq)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, updated.Status)
	require.Len(t, fix.ledgerSvc.recorded, 1)
	assert.Equal(t, id, fix.ledgerSvc.recorded[0].ID)
}

func TestMayorDisapproveSkipsLedger(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusHRApproved)

	updated, err := fix.service.MayorDecide(context.Background(), mayorActor, id, disapproveReq("budget freeze"))
	require.NoError(t, err)

	assert.Equal(t, leave.StatusDisapproved, updated.Status)
	assert.Empty(t, fix.ledgerSvc.recorded)
}

func TestMayorDecideIdempotent(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusHRApproved)

	_, err := fix.service.MayorDecide(context.Background(), mayorActor, id, approveReq)
	require.NoError(t, err)

	_, err = fix.service.MayorDecide(context.Background(), mayorActor, id, approveReq)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)

	// The ledger write-back happened exactly once.
	assert.Len(t, fix.ledgerSvc.recorded, 1)
}

func TestDecisionNotifications(t *testing.T) {
	fix := newDecisionFixture()
	id := fix.seed(leave.StatusPending)

	_, err := fix.service.Recommend(context.Background(), deptAdmin, id, approveReq)
	require.NoError(t, err)

	// Requester plus the HR staff member.
	recipients := map[string]bool{}
	for _, sent := range fix.notifier.sent {
		recipients[sent.RecipientID] = true
	}
	assert.True(t, recipients["emp-1"])
	assert.True(t, recipients["hr-1"])
}
