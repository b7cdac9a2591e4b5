package postgresql

import (
	"context"

	"github.com/lgu-hris/leave-backend-go/internal/domain/leave"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

// Audit-trail repositories. Both tables carry a UNIQUE (leave_request_id,
// approver) constraint; a losing concurrent writer gets ErrDuplicateDecision
// instead of silently overwriting the winner.

type recommendationRepositoryImpl struct {
	db *database.DB
}

func NewRecommendationRepository(db *database.DB) leave.RecommendationRepository {
	return &recommendationRepositoryImpl{db: db}
}

func (r *recommendationRepositoryImpl) Create(ctx context.Context, rec leave.Recommendation) (leave.Recommendation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_recommendations (
			id, leave_request_id, department_admin_id, decision, remarks, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rec.LeaveRequestID, rec.DepartmentAdminID, rec.Decision, rec.Remarks,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.Recommendation{}, leave.ErrDuplicateDecision
		}
		return leave.Recommendation{}, err
	}

	return rec, nil
}

func (r *recommendationRepositoryImpl) GetByRequestID(ctx context.Context, requestID string) ([]leave.Recommendation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT rec.id, rec.leave_request_id, rec.department_admin_id,
			   rec.decision, rec.remarks, rec.created_at,
			   e.full_name AS admin_name
		FROM leave_recommendations rec
		JOIN employees e ON rec.department_admin_id = e.id
		WHERE rec.leave_request_id = $1
		ORDER BY rec.created_at
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []leave.Recommendation
	for rows.Next() {
		var rec leave.Recommendation
		if err := rows.Scan(
			&rec.ID, &rec.LeaveRequestID, &rec.DepartmentAdminID,
			&rec.Decision, &rec.Remarks, &rec.CreatedAt,
			&rec.AdminName,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

type approvalRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) leave.ApprovalRepository {
	return &approvalRepositoryImpl{db: db}
}

func (r *approvalRepositoryImpl) Create(ctx context.Context, appr leave.Approval) (leave.Approval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_approvals (
			id, leave_request_id, hr_manager_id, decision, remarks, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		appr.LeaveRequestID, appr.HRManagerID, appr.Decision, appr.Remarks,
	).Scan(&appr.ID, &appr.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.Approval{}, leave.ErrDuplicateDecision
		}
		return leave.Approval{}, err
	}

	return appr, nil
}

func (r *approvalRepositoryImpl) GetByRequestID(ctx context.Context, requestID string) ([]leave.Approval, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT ap.id, ap.leave_request_id, ap.hr_manager_id,
			   ap.decision, ap.remarks, ap.created_at,
			   e.full_name AS manager_name
		FROM leave_approvals ap
		JOIN employees e ON ap.hr_manager_id = e.id
		WHERE ap.leave_request_id = $1
		ORDER BY ap.created_at
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var approvals []leave.Approval
	for rows.Next() {
		var appr leave.Approval
		if err := rows.Scan(
			&appr.ID, &appr.LeaveRequestID, &appr.HRManagerID,
			&appr.Decision, &appr.Remarks, &appr.CreatedAt,
			&appr.ManagerName,
		); err != nil {
			return nil, err
		}
		approvals = append(approvals, appr)
	}

	return approvals, rows.Err()
}
