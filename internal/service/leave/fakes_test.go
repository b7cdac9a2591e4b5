package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/domain/notification"
)

// In-memory fakes for the repositories and collaborating services. They
// reproduce the same sentinel errors as the real pgx implementations.

type fakeRequestRepo struct {
	requests   map[string]*leave.LeaveRequest
	seq        int
	lastFilter leave.Filter
	// departments maps employee IDs to department IDs for the join fields.
	departments map[string]string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:    make(map[string]*leave.LeaveRequest),
		departments: make(map[string]string),
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.seq++
	request.ID = fmt.Sprintf("req-%d", f.seq)
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string, opts leave.QueryOptions) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	out := *request
	if opts.IncludeEmployee {
		if dept, ok := f.departments[out.EmployeeID]; ok {
			out.DepartmentID = &dept
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(_ context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	f.lastFilter = filter
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.EmployeeID != nil && request.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(request.Status) != *filter.Status {
			continue
		}
		out = append(out, *request)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) ApplyStage(_ context.Context, update leave.StageUpdate) error {
	request, ok := f.requests[update.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if update.ExpectedStatus != nil && request.Status != *update.ExpectedStatus {
		return leave.ErrInvalidTransition
	}

	request.Status = update.Status
	if update.RecommendedBy != nil {
		request.RecommendedBy = update.RecommendedBy
	}
	if update.RecommendedAt != nil {
		request.RecommendedAt = update.RecommendedAt
	}
	if update.RecommendNotes != nil {
		request.RecommendNotes = update.RecommendNotes
	}
	if update.HRDecidedBy != nil {
		request.HRDecidedBy = update.HRDecidedBy
	}
	if update.HRDecidedAt != nil {
		request.HRDecidedAt = update.HRDecidedAt
	}
	if update.HRNotes != nil {
		request.HRNotes = update.HRNotes
	}
	if update.MayorDecidedBy != nil {
		request.MayorDecidedBy = update.MayorDecidedBy
	}
	if update.MayorDecidedAt != nil {
		request.MayorDecidedAt = update.MayorDecidedAt
	}
	if update.MayorNotes != nil {
		request.MayorNotes = update.MayorNotes
	}
	if update.CancelledAt != nil {
		request.CancelledAt = update.CancelledAt
	}
	return nil
}

type fakeRecommendationRepo struct {
	recommendations []leave.Recommendation
	seen            map[string]bool
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{seen: make(map[string]bool)}
}

func (f *fakeRecommendationRepo) Create(_ context.Context, rec leave.Recommendation) (leave.Recommendation, error) {
	k := rec.LeaveRequestID + "|" + rec.DepartmentAdminID
	if f.seen[k] {
		return leave.Recommendation{}, leave.ErrDuplicateDecision
	}
	f.seen[k] = true
	rec.ID = fmt.Sprintf("rcm-%d", len(f.recommendations)+1)
	rec.CreatedAt = time.Now()
	f.recommendations = append(f.recommendations, rec)
	return rec, nil
}

func (f *fakeRecommendationRepo) GetByRequestID(_ context.Context, requestID string) ([]leave.Recommendation, error) {
	var out []leave.Recommendation
	for _, rec := range f.recommendations {
		if rec.LeaveRequestID == requestID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeApprovalRepo struct {
	approvals []leave.Approval
	seen      map[string]bool
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{seen: make(map[string]bool)}
}

func (f *fakeApprovalRepo) Create(_ context.Context, appr leave.Approval) (leave.Approval, error) {
	k := appr.LeaveRequestID + "|" + appr.HRManagerID
	if f.seen[k] {
		return leave.Approval{}, leave.ErrDuplicateDecision
	}
	f.seen[k] = true
	appr.ID = fmt.Sprintf("apr-%d", len(f.approvals)+1)
	appr.CreatedAt = time.Now()
	f.approvals = append(f.approvals, appr)
	return appr, nil
}

func (f *fakeApprovalRepo) GetByRequestID(_ context.Context, requestID string) ([]leave.Approval, error) {
	var out []leave.Approval
	for _, appr := range f.approvals {
		if appr.LeaveRequestID == requestID {
			out = append(out, appr)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		f.employees[emp.ID] = emp
	}
	return f
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, _ employee.QueryOptions) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByEmployeeNo(_ context.Context, no string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeNo == no {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if filter.Role != nil && emp.Role != *filter.Role {
			continue
		}
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) CountActiveByRole(_ context.Context, role employee.Role) (int64, error) {
	var n int64
	for _, emp := range f.employees {
		if emp.Role == role && emp.IsActive {
			n++
		}
	}
	return n, nil
}

type fakeLedgerService struct {
	check    ledger.CreditCheck
	recorded []leave.LeaveRequest
}

func (f *fakeLedgerService) CheckCredits(_ context.Context, _ string, _ leave.Category, _ float64) (ledger.CreditCheck, error) {
	return f.check, nil
}

func (f *fakeLedgerService) RecordApprovedLeave(_ context.Context, request leave.LeaveRequest) error {
	f.recorded = append(f.recorded, request)
	return nil
}

func (f *fakeLedgerService) AddUndertime(_ context.Context, _ ledger.AddUndertimeRequest) (ledger.Record, error) {
	return ledger.Record{}, nil
}

func (f *fakeLedgerService) CurrentRecord(_ context.Context, _ string) (ledger.Record, error) {
	return ledger.Record{}, nil
}

func (f *fakeLedgerService) ListRecords(_ context.Context, _ string) ([]ledger.Record, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []notification.PushRequest
}

func (f *fakeNotifier) Notify(req notification.PushRequest) {
	f.sent = append(f.sent, req)
}

func (f *fakeNotifier) List(_ context.Context, _ string, _, _ int, _ bool) ([]*notification.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) UnreadCount(_ context.Context, _ string) (int, error) { return 0, nil }

func (f *fakeNotifier) MarkRead(_ context.Context, _ []string, _ string) error { return nil }

func (f *fakeNotifier) MarkAllRead(_ context.Context, _ string) error { return nil }

func (f *fakeNotifier) Shutdown() {}

// passTx runs the function without a real transaction.
type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
