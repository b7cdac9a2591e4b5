package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) employee.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, dept employee.Department) (employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, code, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, dept.Name, dept.Code).
		Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		return employee.Department{}, err
	}

	return dept, nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var dept employee.Department
	err := q.QueryRow(ctx, query, id).
		Scan(&dept.ID, &dept.Name, &dept.Code, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Department{}, employee.ErrDepartmentNotFound
		}
		return employee.Department{}, err
	}

	return dept, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []employee.Department
	for rows.Next() {
		var dept employee.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Code, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}

	return departments, rows.Err()
}
