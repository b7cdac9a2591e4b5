package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedgerRepo struct {
	records map[string]ledger.Record
	seq     int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{records: make(map[string]ledger.Record)}
}

func key(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, year, month)
}

func (f *fakeLedgerRepo) Create(_ context.Context, rec ledger.Record) (ledger.Record, error) {
	k := key(rec.EmployeeID, rec.Month, rec.Year)
	if _, exists := f.records[k]; exists {
		return ledger.Record{}, ledger.ErrRecordExists
	}
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	f.records[k] = rec
	return rec, nil
}

func (f *fakeLedgerRepo) GetByEmployeeMonthYear(_ context.Context, employeeID string, month, year int) (ledger.Record, error) {
	rec, ok := f.records[key(employeeID, month, year)]
	if !ok {
		return ledger.Record{}, ledger.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeLedgerRepo) GetLatestByEmployee(_ context.Context, employeeID string) (ledger.Record, error) {
	var best ledger.Record
	found := false
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if !found || rec.Year*12+rec.Month > best.Year*12+best.Month {
			best = rec
			found = true
		}
	}
	if !found {
		return ledger.Record{}, ledger.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeLedgerRepo) GetLatestBefore(_ context.Context, employeeID string, month, year int) (ledger.Record, error) {
	var best ledger.Record
	found := false
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Year*12+rec.Month >= year*12+month {
			continue
		}
		if !found || rec.Year*12+rec.Month > best.Year*12+best.Month {
			best = rec
			found = true
		}
	}
	if !found {
		return ledger.Record{}, ledger.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeLedgerRepo) ListByEmployee(_ context.Context, employeeID string) ([]ledger.Record, error) {
	var out []ledger.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) Update(_ context.Context, rec ledger.Record) error {
	k := key(rec.EmployeeID, rec.Month, rec.Year)
	if _, ok := f.records[k]; !ok {
		return ledger.ErrRecordNotFound
	}
	f.records[k] = rec
	return nil
}

// passTx runs the function without a real transaction.
type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo ledger.Repository, now time.Time) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		repo:      repo,
		txManager: passTx{},
		now:       func() time.Time { return now },
	}
}

var august = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func assertInvariant(t *testing.T, rec ledger.Record) {
	t.Helper()
	assert.InDelta(t, rec.VacationEarned-rec.VacationUsed, rec.VacationBalance, 0.0005)
	assert.InDelta(t, rec.SickEarned-rec.SickUsed, rec.SickBalance, 0.0005)
}

func TestCurrentRecordOpensWithDefaultBalances(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	rec, err := svc.CurrentRecord(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, 8, rec.Month)
	assert.Equal(t, 2026, rec.Year)
	assert.Equal(t, 15.0, rec.VacationEarned)
	assert.Equal(t, 15.0, rec.VacationBalance)
	assert.Equal(t, 12.0, rec.SickEarned)
	assert.Equal(t, 12.0, rec.SickBalance)
	assert.Empty(t, rec.VacationEntries)
	assertInvariant(t, rec)
}

func TestCurrentRecordCarriesForwardWithAccrual(t *testing.T) {
	repo := newFakeLedgerRepo()
	_, err := repo.Create(context.Background(), ledger.Record{
		EmployeeID:      "emp-1",
		Month:           7,
		Year:            2026,
		VacationEarned:  15.0,
		VacationUsed:    4.5,
		VacationBalance: 10.5,
		SickEarned:      12.0,
		SickUsed:        1.0,
		SickBalance:     11.0,
	})
	require.NoError(t, err)

	svc := newTestService(repo, august)
	rec, err := svc.CurrentRecord(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, 11.75, rec.VacationEarned)
	assert.Equal(t, 11.75, rec.VacationBalance)
	assert.Equal(t, 12.25, rec.SickEarned)
	assert.Equal(t, 12.25, rec.SickBalance)
	assert.Zero(t, rec.VacationUsed)
	assertInvariant(t, rec)
}

func TestCheckCreditsInsufficient(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	// Fresh employee opens at 12.0 sick credits.
	check, err := svc.CheckCredits(context.Background(), "emp-1", leave.CategorySick, 15)
	require.NoError(t, err)

	assert.False(t, check.Sufficient)
	assert.Equal(t, 12.0, check.Available)

	check, err = svc.CheckCredits(context.Background(), "emp-1", leave.CategoryVacation, 15)
	require.NoError(t, err)
	assert.True(t, check.Sufficient)
	assert.Equal(t, 15.0, check.Available)
}

func TestCheckCreditsUnknownCategory(t *testing.T) {
	svc := newTestService(newFakeLedgerRepo(), august)

	_, err := svc.CheckCredits(context.Background(), "emp-1", leave.Category("maternity"), 1)
	assert.ErrorIs(t, err, ledger.ErrUnknownCategory)
}

func TestRecordApprovedLeaveDeductsPaidCurrentMonth(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	err := svc.RecordApprovedLeave(context.Background(), leave.LeaveRequest{
		ID:           "req-1",
		EmployeeID:   "emp-1",
		Category:     leave.CategoryVacation,
		StartDate:    time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 2,
	})
	require.NoError(t, err)

	rec, err := repo.GetByEmployeeMonthYear(context.Background(), "emp-1", 8, 2026)
	require.NoError(t, err)

	assert.Equal(t, 2.0, rec.VacationUsed)
	assert.Equal(t, 13.0, rec.VacationBalance)
	require.Len(t, rec.VacationEntries, 1)
	assert.Equal(t, "req-1", rec.VacationEntries[0].LeaveRequestID)
	assert.True(t, rec.VacationEntries[0].Paid)
	assertInvariant(t, rec)
}

func TestRecordApprovedLeaveWithoutPayAccumulatesLwop(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	err := svc.RecordApprovedLeave(context.Background(), leave.LeaveRequest{
		ID:           "req-1",
		EmployeeID:   "emp-1",
		Category:     leave.CategorySick,
		StartDate:    time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 15,
		WithoutPay:   true,
	})
	require.NoError(t, err)

	rec, err := repo.GetByEmployeeMonthYear(context.Background(), "emp-1", 8, 2026)
	require.NoError(t, err)

	assert.Equal(t, 15.0, rec.LwopDays)
	assert.Zero(t, rec.SickUsed)
	assert.Equal(t, 12.0, rec.SickBalance)
	require.Len(t, rec.SickEntries, 1)
	assert.False(t, rec.SickEntries[0].Paid)
	assertInvariant(t, rec)
}

func TestRecordApprovedLeaveLandsInStartMonth(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	err := svc.RecordApprovedLeave(context.Background(), leave.LeaveRequest{
		ID:           "req-1",
		EmployeeID:   "emp-1",
		Category:     leave.CategoryVacation,
		StartDate:    time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.October, 9, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 5,
	})
	require.NoError(t, err)

	// The entry lives on the October record, itemized but not yet deducted.
	rec, err := repo.GetByEmployeeMonthYear(context.Background(), "emp-1", 10, 2026)
	require.NoError(t, err)

	require.Len(t, rec.VacationEntries, 1)
	assert.Equal(t, "req-1", rec.VacationEntries[0].LeaveRequestID)
	assert.Zero(t, rec.VacationUsed)
	assert.Equal(t, 15.0, rec.VacationBalance)
	assert.Zero(t, rec.LwopDays)
	assertInvariant(t, rec)

	// No stray record for the month the approval happened in.
	_, err = repo.GetByEmployeeMonthYear(context.Background(), "emp-1", 8, 2026)
	assert.ErrorIs(t, err, ledger.ErrRecordNotFound)
}

func TestAddUndertimeChargesHoursToVacation(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc := newTestService(repo, august)

	req := ledger.AddUndertimeRequest{
		EmployeeID:     "emp-1",
		Month:          8,
		Year:           2026,
		UndertimeHours: 2.5,
	}

	_, err := svc.AddUndertime(context.Background(), req)
	require.NoError(t, err)
	rec, err := svc.AddUndertime(context.Background(), req)
	require.NoError(t, err)

	// Hours are charged one-for-one against the vacation balance.
	assert.Equal(t, 5.0, rec.UndertimeHours)
	assert.Equal(t, 5.0, rec.VacationUsed)
	assert.Equal(t, 10.0, rec.VacationBalance)
	assertInvariant(t, rec)
}

// countingTx passes the function through and counts invocations.
type countingTx struct {
	calls int
}

func (c *countingTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	c.calls++
	return fn(ctx)
}

func TestLedgerWritesRunInTransaction(t *testing.T) {
	repo := newFakeLedgerRepo()
	tx := &countingTx{}
	svc := &LedgerServiceImpl{
		repo:      repo,
		txManager: tx,
		now:       func() time.Time { return august },
	}

	err := svc.RecordApprovedLeave(context.Background(), leave.LeaveRequest{
		ID:           "req-1",
		EmployeeID:   "emp-1",
		Category:     leave.CategoryVacation,
		StartDate:    time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC),
		NumberOfDays: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	_, err = svc.AddUndertime(context.Background(), ledger.AddUndertimeRequest{
		EmployeeID: "emp-1", Month: 8, Year: 2026, UndertimeHours: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tx.calls)
}

func TestAddUndertimeRejectsInvalidInput(t *testing.T) {
	svc := newTestService(newFakeLedgerRepo(), august)

	_, err := svc.AddUndertime(context.Background(), ledger.AddUndertimeRequest{
		EmployeeID: "emp-1", Month: 8, Year: 2026, UndertimeHours: 0,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidHours)

	_, err = svc.AddUndertime(context.Background(), ledger.AddUndertimeRequest{
		EmployeeID: "emp-1", Month: 13, Year: 2026, UndertimeHours: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrInvalidPeriod)
}

func TestRound3(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.3125, 0.313},
		{1.0005, 1.001},
		{15.0, 15.0},
		{-0.3125, -0.313},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, round3(c.in), "round3(%v)", c.in)
	}
}
