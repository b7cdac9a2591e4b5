package postgresql

import (
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/leave-backend-go/internal/domain/employee"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.employee_no, e.full_name, e.email, e.password_hash,
	e.role, e.department_id, e.position, e.avatar_url, e.is_active,
	e.created_at, e.updated_at
`

func scanEmployee(row pgx.Row, emp *employee.Employee, deptName **string) error {
	dest := []interface{}{
		&emp.ID, &emp.EmployeeNo, &emp.FullName, &emp.Email, &emp.PasswordHash,
		&emp.Role, &emp.DepartmentID, &emp.Position, &emp.AvatarURL, &emp.IsActive,
		&emp.CreatedAt, &emp.UpdatedAt,
	}
	if deptName != nil {
		dest = append(dest, deptName)
	}
	return row.Scan(dest...)
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, employee_no, full_name, email, password_hash,
			role, department_id, position, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5, $6, $7, TRUE,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EmployeeNo, emp.FullName, emp.Email, emp.PasswordHash,
		emp.Role, emp.DepartmentID, emp.Position,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeNoExists
		}
		return employee.Employee{}, err
	}

	emp.IsActive = true
	return emp, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, opts employee.QueryOptions) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var emp employee.Employee
	var err error

	if opts.IncludeDepartment {
		query := fmt.Sprintf(`
			SELECT %s, d.name AS department_name
			FROM employees e
			JOIN departments d ON e.department_id = d.id
			WHERE e.id = $1
		`, employeeColumns)
		var deptName *string
		err = scanEmployee(q.QueryRow(ctx, query, id), &emp, &deptName)
		emp.DepartmentName = deptName
	} else {
		query := fmt.Sprintf(`SELECT %s FROM employees e WHERE e.id = $1`, employeeColumns)
		err = scanEmployee(q.QueryRow(ctx, query, id), &emp, nil)
	}

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

func (r *employeeRepositoryImpl) GetByEmployeeNo(ctx context.Context, employeeNo string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees e WHERE e.employee_no = $1`, employeeColumns)

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, employeeNo), &emp, nil); err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees e WHERE e.email = $1`, employeeColumns)

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, email), &emp, nil); err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	if filter.Role != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("e.role = $%d", argIdx))
		args = append(args, string(*filter.Role))
		argIdx++
	}

	if filter.Search != nil && *filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(e.full_name ILIKE $%d OR e.employee_no ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees e WHERE %s`, whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s, d.name AS department_name
		FROM employees e
		JOIN departments d ON e.department_id = d.id
		WHERE %s
		ORDER BY e.full_name
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		var deptName *string
		if err := scanEmployee(rows, &emp, &deptName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		emp.DepartmentName = deptName
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, total, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *req.Email)
		argIdx++
	}
	if req.Role != nil {
		updates = append(updates, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *req.Role)
		argIdx++
	}
	if req.DepartmentID != nil {
		updates = append(updates, fmt.Sprintf("department_id = $%d", argIdx))
		args = append(args, *req.DepartmentID)
		argIdx++
	}
	if req.Position != nil {
		updates = append(updates, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *req.Position)
		argIdx++
	}
	if req.AvatarURL != nil {
		updates = append(updates, fmt.Sprintf("avatar_url = $%d", argIdx))
		args = append(args, *req.AvatarURL)
		argIdx++
	}
	if req.IsActive != nil {
		updates = append(updates, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for employee update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)
	sql := "UPDATE employees SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee %s: %w", req.ID, err)
	}
	return nil
}

// Delete removes the employee; leave requests, audit rows and ledger rows go
// with it via ON DELETE CASCADE.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) CountActiveByRole(ctx context.Context, role employee.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE role = $1 AND is_active`,
		string(role),
	).Scan(&count)
	return count, err
}
