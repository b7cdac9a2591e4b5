package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type LedgerServiceImpl struct {
	repo      ledger.Repository
	txManager database.TxManager
	now       func() time.Time
}

func NewLedgerService(repo ledger.Repository, txManager database.TxManager) ledger.Service {
	return &LedgerServiceImpl{
		repo:      repo,
		txManager: txManager,
		now:       time.Now,
	}
}

// round3 rounds to three decimal places, half away from zero.
func round3(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(3).Float64()
	return f
}

// getOrCreateRecord returns the (employee, month, year) record, creating it
// when absent. A new row opens from the latest prior row's balances plus the
// monthly accrual, or from the opening balances for a first-ever row.
func (s *LedgerServiceImpl) getOrCreateRecord(ctx context.Context, employeeID string, month, year int) (ledger.Record, error) {
	rec, err := s.repo.GetByEmployeeMonthYear(ctx, employeeID, month, year)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ledger.ErrRecordNotFound) {
		return ledger.Record{}, err
	}

	fresh := ledger.Record{
		EmployeeID:      employeeID,
		Month:           month,
		Year:            year,
		VacationEntries: ledger.Entries{},
		SickEntries:     ledger.Entries{},
	}

	prev, err := s.repo.GetLatestBefore(ctx, employeeID, month, year)
	switch {
	case err == nil:
		fresh.VacationEarned = round3(prev.VacationBalance + ledger.MonthlyVacationAccrual)
		fresh.SickEarned = round3(prev.SickBalance + ledger.MonthlySickAccrual)
	case errors.Is(err, ledger.ErrRecordNotFound):
		fresh.VacationEarned = ledger.OpeningVacationBalance
		fresh.SickEarned = ledger.OpeningSickBalance
	default:
		return ledger.Record{}, err
	}
	fresh.VacationBalance = fresh.VacationEarned
	fresh.SickBalance = fresh.SickEarned

	created, err := s.repo.Create(ctx, fresh)
	if err != nil {
		// Lost a concurrent create for the same month; the winner's row is
		// authoritative.
		if errors.Is(err, ledger.ErrRecordExists) {
			return s.repo.GetByEmployeeMonthYear(ctx, employeeID, month, year)
		}
		return ledger.Record{}, err
	}
	return created, nil
}

func (s *LedgerServiceImpl) CheckCredits(ctx context.Context, employeeID string, category leave.Category, days float64) (ledger.CreditCheck, error) {
	if !category.Valid() {
		return ledger.CreditCheck{}, ledger.ErrUnknownCategory
	}

	now := s.now()
	rec, err := s.getOrCreateRecord(ctx, employeeID, int(now.Month()), now.Year())
	if err != nil {
		return ledger.CreditCheck{}, err
	}

	available := rec.VacationBalance
	if category == leave.CategorySick {
		available = rec.SickBalance
	}

	return ledger.CreditCheck{
		Sufficient: available >= days,
		Available:  available,
	}, nil
}

func (s *LedgerServiceImpl) RecordApprovedLeave(ctx context.Context, request leave.LeaveRequest) error {
	if !request.Category.Valid() {
		return ledger.ErrUnknownCategory
	}

	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		// The entry belongs to the record of the month the leave starts in.
		rec, err := s.getOrCreateRecord(txCtx, request.EmployeeID,
			int(request.StartDate.Month()), request.StartDate.Year())
		if err != nil {
			return err
		}

		entry := ledger.Entry{
			LeaveRequestID: request.ID,
			StartDate:      request.StartDate.Format("2006-01-02"),
			EndDate:        request.EndDate.Format("2006-01-02"),
			Days:           request.NumberOfDays,
			Paid:           !request.WithoutPay,
		}

		if request.Category == leave.CategorySick {
			rec.SickEntries = append(rec.SickEntries, entry)
		} else {
			rec.VacationEntries = append(rec.VacationEntries, entry)
		}

		// Leave starting in a future month is itemized now; the deduction
		// applies only when the start month is the current month or earlier.
		now := s.now()
		startYM := request.StartDate.Year()*12 + int(request.StartDate.Month())
		nowYM := now.Year()*12 + int(now.Month())
		if startYM <= nowYM {
			switch {
			case request.WithoutPay:
				rec.LwopDays = round3(rec.LwopDays + request.NumberOfDays)
			case request.Category == leave.CategorySick:
				rec.SickUsed = round3(rec.SickUsed + request.NumberOfDays)
				rec.SickBalance = round3(rec.SickEarned - rec.SickUsed)
			default:
				rec.VacationUsed = round3(rec.VacationUsed + request.NumberOfDays)
				rec.VacationBalance = round3(rec.VacationEarned - rec.VacationUsed)
			}
		}

		return s.repo.Update(txCtx, rec)
	})
}

func (s *LedgerServiceImpl) AddUndertime(ctx context.Context, req ledger.AddUndertimeRequest) (ledger.Record, error) {
	if req.UndertimeHours <= 0 {
		return ledger.Record{}, ledger.ErrInvalidHours
	}
	if !validator.IsValidMonth(req.Month) || !validator.IsValidYear(req.Year) {
		return ledger.Record{}, ledger.ErrInvalidPeriod
	}

	var rec ledger.Record
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rec, err = s.getOrCreateRecord(txCtx, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return err
		}

		// The same hours accumulate on the counter and charge against
		// vacation credits.
		rec.UndertimeHours = round3(rec.UndertimeHours + req.UndertimeHours)
		rec.VacationUsed = round3(rec.VacationUsed + req.UndertimeHours)
		rec.VacationBalance = round3(rec.VacationEarned - rec.VacationUsed)

		return s.repo.Update(txCtx, rec)
	})
	if err != nil {
		return ledger.Record{}, err
	}
	return rec, nil
}

func (s *LedgerServiceImpl) CurrentRecord(ctx context.Context, employeeID string) (ledger.Record, error) {
	now := s.now()
	return s.getOrCreateRecord(ctx, employeeID, int(now.Month()), now.Year())
}

func (s *LedgerServiceImpl) ListRecords(ctx context.Context, employeeID string) ([]ledger.Record, error) {
	return s.repo.ListByEmployee(ctx, employeeID)
}
