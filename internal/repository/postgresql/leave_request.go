package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.category, lr.subtype,
	lr.start_date, lr.end_date, lr.number_of_days,
	lr.where_spent, lr.location_note, lr.commutation, lr.without_pay,
	lr.status,
	lr.recommended_by, lr.recommended_at, lr.recommend_notes,
	lr.hr_decided_by, lr.hr_decided_at, lr.hr_notes,
	lr.mayor_decided_by, lr.mayor_decided_at, lr.mayor_notes,
	lr.cancelled_at, lr.created_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row, req *leave.LeaveRequest, withEmployee bool) error {
	dest := []interface{}{
		&req.ID, &req.EmployeeID, &req.Category, &req.Subtype,
		&req.StartDate, &req.EndDate, &req.NumberOfDays,
		&req.WhereSpent, &req.LocationNote, &req.Commutation, &req.WithoutPay,
		&req.Status,
		&req.RecommendedBy, &req.RecommendedAt, &req.RecommendNotes,
		&req.HRDecidedBy, &req.HRDecidedAt, &req.HRNotes,
		&req.MayorDecidedBy, &req.MayorDecidedAt, &req.MayorNotes,
		&req.CancelledAt, &req.CreatedAt, &req.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &req.EmployeeName, &req.DepartmentID, &req.DepartmentName)
	}
	return row.Scan(dest...)
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, category, subtype,
			start_date, end_date, number_of_days,
			where_spent, location_note, commutation, without_pay,
			status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6,
			$7, $8, $9, $10,
			$11, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Category, request.Subtype,
		request.StartDate, request.EndDate, request.NumberOfDays,
		request.WhereSpent, request.LocationNote, request.Commutation, request.WithoutPay,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, opts leave.QueryOptions) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	var req leave.LeaveRequest
	var err error

	if opts.IncludeEmployee {
		query := fmt.Sprintf(`
			SELECT %s,
				   e.full_name AS employee_name,
				   e.department_id,
				   d.name AS department_name
			FROM leave_requests lr
			JOIN employees e ON lr.employee_id = e.id
			JOIN departments d ON e.department_id = d.id
			WHERE lr.id = $1
		`, leaveRequestColumns)
		err = scanLeaveRequest(q.QueryRow(ctx, query, id), &req, true)
	} else {
		query := fmt.Sprintf(`SELECT %s FROM leave_requests lr WHERE lr.id = $1`, leaveRequestColumns)
		err = scanLeaveRequest(q.QueryRow(ctx, query, id), &req, false)
	}

	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Category != nil && *filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE %s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s,
			   e.full_name AS employee_name,
			   e.department_id,
			   d.name AS department_name
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		JOIN departments d ON e.department_id = d.id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		if err := scanLeaveRequest(rows, &req, true); err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

// ApplyStage writes one stage transition. Only fields set on the update are
// touched, so each stage's metadata stays immutable once written.
func (r *leaveRequestRepositoryImpl) ApplyStage(ctx context.Context, update leave.StageUpdate) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{"status = $1"}
	args := []interface{}{string(update.Status)}
	argIdx := 2

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if update.RecommendedBy != nil {
		set("recommended_by", *update.RecommendedBy)
	}
	if update.RecommendedAt != nil {
		set("recommended_at", *update.RecommendedAt)
	}
	if update.RecommendNotes != nil {
		set("recommend_notes", *update.RecommendNotes)
	}
	if update.HRDecidedBy != nil {
		set("hr_decided_by", *update.HRDecidedBy)
	}
	if update.HRDecidedAt != nil {
		set("hr_decided_at", *update.HRDecidedAt)
	}
	if update.HRNotes != nil {
		set("hr_notes", *update.HRNotes)
	}
	if update.MayorDecidedBy != nil {
		set("mayor_decided_by", *update.MayorDecidedBy)
	}
	if update.MayorDecidedAt != nil {
		set("mayor_decided_at", *update.MayorDecidedAt)
	}
	if update.MayorNotes != nil {
		set("mayor_notes", *update.MayorNotes)
	}
	if update.CancelledAt != nil {
		set("cancelled_at", *update.CancelledAt)
	}

	set("updated_at", time.Now())

	args = append(args, update.ID)
	sql := "UPDATE leave_requests SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d", argIdx)
	argIdx++

	if update.ExpectedStatus != nil {
		sql += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*update.ExpectedStatus))
	}
	sql += " RETURNING id"

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			if update.ExpectedStatus != nil {
				return leave.ErrInvalidTransition
			}
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to apply stage update to leave request %s: %w", update.ID, err)
	}
	return nil
}
