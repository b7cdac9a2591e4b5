package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/auth"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	requestRepo  *fakeRequestRepo
	employeeRepo *fakeEmployeeRepo
	ledgerSvc    *fakeLedgerService
	notifier     *fakeNotifier
	service      leave.RequestService
}

func newRequestFixture(check ledger.CreditCheck) *requestFixture {
	requestRepo := newFakeRequestRepo()
	recRepo := newFakeRecommendationRepo()
	apprRepo := newFakeApprovalRepo()
	employeeRepo := newFakeEmployeeRepo(
		employee.Employee{ID: "emp-1", FullName: "Ana Reyes", Role: employee.RoleEmployee, DepartmentID: "dept-1", IsActive: true},
		employee.Employee{ID: "admin-1", FullName: "Ben Cruz", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-1", IsActive: true},
	)
	ledgerSvc := &fakeLedgerService{check: check}
	notifier := &fakeNotifier{}

	requestRepo.departments["emp-1"] = "dept-1"

	return &requestFixture{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		ledgerSvc:    ledgerSvc,
		notifier:     notifier,
		service:      NewRequestService(requestRepo, recRepo, apprRepo, employeeRepo, ledgerSvc, notifier),
	}
}

func validCreateRequest() leave.CreateLeaveRequestRequest {
	return leave.CreateLeaveRequestRequest{
		EmployeeID:   "emp-1",
		LeaveType:    "sick",
		StartDate:    "2026-09-07",
		EndDate:      "2026-09-21",
		NumberOfDays: 15,
		WhereSpent:   "hospital",
	}
}

func TestCreateWithSufficientCredits(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true, Available: 15})

	created, warning, err := fix.service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Empty(t, warning)
	assert.False(t, created.WithoutPay)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestCreateInsufficientCreditsFallsBackToWithoutPay(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: false, Available: 12.0})

	created, warning, err := fix.service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.True(t, created.WithoutPay)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Contains(t, warning, "available: 12.000, requesting: 15")
}

func TestCreateNotifiesDepartmentAdmins(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true, Available: 15})

	_, _, err := fix.service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.Len(t, fix.notifier.sent, 1)
	assert.Equal(t, "admin-1", fix.notifier.sent[0].RecipientID)
}

func TestCreateValidationFailure(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true, Available: 15})

	req := validCreateRequest()
	req.LeaveType = "maternity"
	req.EndDate = "2026-09-01"

	_, _, err := fix.service.Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	details := verrs.ToMap()
	assert.Contains(t, details, "leave_type")
	assert.Contains(t, details, "end_date")
}

func seedRequest(fix *requestFixture, status leave.Status) leave.LeaveRequest {
	created, _ := fix.requestRepo.Create(context.Background(), leave.LeaveRequest{
		EmployeeID:   "emp-1",
		Category:     leave.CategoryVacation,
		StartDate:    time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 5,
		Status:       status,
	})
	return created
}

func TestCancelByOwner(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true})
	seeded := seedRequest(fix, leave.StatusPending)

	owner := auth.Actor{EmployeeID: "emp-1", Role: employee.RoleEmployee, DepartmentID: "dept-1"}
	cancelled, err := fix.service.Cancel(context.Background(), owner, seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancelByNonOwnerRejected(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true})
	seeded := seedRequest(fix, leave.StatusPending)

	other := auth.Actor{EmployeeID: "emp-2", Role: employee.RoleEmployee, DepartmentID: "dept-1"}
	_, err := fix.service.Cancel(context.Background(), other, seeded.ID)

	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestCancelTerminalStateRejected(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true})
	owner := auth.Actor{EmployeeID: "emp-1", Role: employee.RoleEmployee, DepartmentID: "dept-1"}

	for _, status := range []leave.Status{leave.StatusApproved, leave.StatusDisapproved, leave.StatusCancelled} {
		seeded := seedRequest(fix, status)
		_, err := fix.service.Cancel(context.Background(), owner, seeded.ID)
		assert.ErrorIs(t, err, leave.ErrNotCancellable, "status %s", status)
	}
}

func TestListScopesByRole(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true})
	seedRequest(fix, leave.StatusPending)

	cases := []struct {
		name       string
		actor      auth.Actor
		wantEmpID  *string
		wantDeptID *string
	}{
		{
			name:      "employee sees own",
			actor:     auth.Actor{EmployeeID: "emp-1", Role: employee.RoleEmployee, DepartmentID: "dept-1"},
			wantEmpID: strPtr("emp-1"),
		},
		{
			name:       "department admin sees department",
			actor:      auth.Actor{EmployeeID: "admin-1", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-1"},
			wantDeptID: strPtr("dept-1"),
		},
		{
			name:  "hr sees all",
			actor: auth.Actor{EmployeeID: "hr-1", Role: employee.RoleHR},
		},
		{
			name:  "mayor sees all",
			actor: auth.Actor{EmployeeID: "mayor-1", Role: employee.RoleMayor},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := fix.service.List(context.Background(), tc.actor, leave.Filter{})
			require.NoError(t, err)

			got := fix.requestRepo.lastFilter
			if tc.wantEmpID == nil {
				assert.Nil(t, got.EmployeeID)
			} else {
				require.NotNil(t, got.EmployeeID)
				assert.Equal(t, *tc.wantEmpID, *got.EmployeeID)
			}
			if tc.wantDeptID == nil {
				assert.Nil(t, got.DepartmentID)
			} else {
				require.NotNil(t, got.DepartmentID)
				assert.Equal(t, *tc.wantDeptID, *got.DepartmentID)
			}
		})
	}
}

func TestGetViewAuthorization(t *testing.T) {
	fix := newRequestFixture(ledger.CreditCheck{Sufficient: true})
	seeded := seedRequest(fix, leave.StatusPending)

	cases := []struct {
		name    string
		actor   auth.Actor
		wantErr error
	}{
		{"owner", auth.Actor{EmployeeID: "emp-1", Role: employee.RoleEmployee}, nil},
		{"hr", auth.Actor{EmployeeID: "hr-1", Role: employee.RoleHR}, nil},
		{"mayor", auth.Actor{EmployeeID: "mayor-1", Role: employee.RoleMayor}, nil},
		{"same department admin", auth.Actor{EmployeeID: "admin-1", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-1"}, nil},
		{"other department admin", auth.Actor{EmployeeID: "admin-2", Role: employee.RoleDepartmentAdmin, DepartmentID: "dept-2"}, leave.ErrWrongDepartment},
		{"unrelated employee", auth.Actor{EmployeeID: "emp-2", Role: employee.RoleEmployee}, leave.ErrRoleNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fix.service.Get(context.Background(), tc.actor, seeded.ID)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
