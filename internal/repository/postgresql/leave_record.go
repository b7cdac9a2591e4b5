package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/ledger"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

type leaveRecordRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRecordRepository(db *database.DB) ledger.Repository {
	return &leaveRecordRepositoryImpl{db: db}
}

const leaveRecordColumns = `
	id, employee_id, month, year,
	vacation_earned, vacation_used, vacation_balance,
	sick_earned, sick_used, sick_balance,
	undertime_hours, lwop_days,
	vacation_entries, sick_entries,
	created_at, updated_at
`

func scanLeaveRecord(row pgx.Row, rec *ledger.Record) error {
	return row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year,
		&rec.VacationEarned, &rec.VacationUsed, &rec.VacationBalance,
		&rec.SickEarned, &rec.SickUsed, &rec.SickBalance,
		&rec.UndertimeHours, &rec.LwopDays,
		&rec.VacationEntries, &rec.SickEntries,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
}

func (r *leaveRecordRepositoryImpl) Create(ctx context.Context, record ledger.Record) (ledger.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO leave_records (
			id, employee_id, month, year,
			vacation_earned, vacation_used, vacation_balance,
			sick_earned, sick_used, sick_balance,
			undertime_hours, lwop_days,
			vacation_entries, sick_entries,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11,
			$12, $13,
			NOW(), NOW()
		) RETURNING %s
	`, leaveRecordColumns)

	var created ledger.Record
	err := scanLeaveRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year,
		record.VacationEarned, record.VacationUsed, record.VacationBalance,
		record.SickEarned, record.SickUsed, record.SickBalance,
		record.UndertimeHours, record.LwopDays,
		record.VacationEntries, record.SickEntries,
	), &created)

	if err != nil {
		if isUniqueViolation(err) {
			return ledger.Record{}, ledger.ErrRecordExists
		}
		return ledger.Record{}, err
	}

	return created, nil
}

func (r *leaveRecordRepositoryImpl) GetByEmployeeMonthYear(ctx context.Context, employeeID string, month, year int) (ledger.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_records
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`, leaveRecordColumns)

	// Inside a transaction the row is locked, so concurrent read-modify-write
	// updates to the same record serialize instead of overwriting each other.
	if _, inTx := database.TxFromContext(ctx); inTx {
		query += " FOR UPDATE"
	}

	var rec ledger.Record
	if err := scanLeaveRecord(q.QueryRow(ctx, query, employeeID, month, year), &rec); err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Record{}, ledger.ErrRecordNotFound
		}
		return ledger.Record{}, err
	}
	return rec, nil
}

func (r *leaveRecordRepositoryImpl) GetLatestByEmployee(ctx context.Context, employeeID string) (ledger.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_records
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC
		LIMIT 1
	`, leaveRecordColumns)

	var rec ledger.Record
	if err := scanLeaveRecord(q.QueryRow(ctx, query, employeeID), &rec); err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Record{}, ledger.ErrRecordNotFound
		}
		return ledger.Record{}, err
	}
	return rec, nil
}

func (r *leaveRecordRepositoryImpl) GetLatestBefore(ctx context.Context, employeeID string, month, year int) (ledger.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_records
		WHERE employee_id = $1 AND (year < $2 OR (year = $2 AND month < $3))
		ORDER BY year DESC, month DESC
		LIMIT 1
	`, leaveRecordColumns)

	var rec ledger.Record
	if err := scanLeaveRecord(q.QueryRow(ctx, query, employeeID, year, month), &rec); err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Record{}, ledger.ErrRecordNotFound
		}
		return ledger.Record{}, err
	}
	return rec, nil
}

func (r *leaveRecordRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]ledger.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM leave_records
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC
	`, leaveRecordColumns)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ledger.Record
	for rows.Next() {
		var rec ledger.Record
		if err := scanLeaveRecord(rows, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *leaveRecordRepositoryImpl) Update(ctx context.Context, record ledger.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_records SET
			vacation_earned = $1, vacation_used = $2, vacation_balance = $3,
			sick_earned = $4, sick_used = $5, sick_balance = $6,
			undertime_hours = $7, lwop_days = $8,
			vacation_entries = $9, sick_entries = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.VacationEarned, record.VacationUsed, record.VacationBalance,
		record.SickEarned, record.SickUsed, record.SickBalance,
		record.UndertimeHours, record.LwopDays,
		record.VacationEntries, record.SickEntries,
		record.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update leave record %s: %w", record.ID, err)
	}
	return nil
}
