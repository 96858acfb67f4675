package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/core/failure"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	integrityViolationClass = "23"

	employeesEmailKey          = "employees_email_key"
	employeesDepartmentFkeyKey = "employees_department_id_fkey"
)

const employeeColumns = `id, given_name, last_name, email, department_id, created_at, updated_at`

const (
	findEmployeeByIDQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE id = $1
         LIMIT 1
    `
	findEmployeeByEmailQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         WHERE email = $1
         LIMIT 1
    `
	listEmployeesQuery = `
        SELECT ` + employeeColumns + `
          FROM employees
         ORDER BY last_name, given_name, id
    `
	countEmployeesQuery           = `SELECT COUNT(*) FROM employees`
	countEmployeesByLastNameQuery = `SELECT COUNT(*) FROM employees WHERE last_name = $1`
	deleteEmployeeQuery           = `DELETE FROM employees WHERE id = $1`
	insertEmployeeQuery           = `
        INSERT INTO employees (id, given_name, last_name, email, department_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + employeeColumns + `
    `
	updateEmployeeQuery = `
        UPDATE employees
           SET given_name = $1,
               last_name = $2,
               email = $3,
               department_id = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING ` + employeeColumns + `
    `
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanEmployee(exec.QueryRow(ctx, findEmployeeByIDQuery, id))
	if err != nil {
		return nil, translateEmployeePgError(err, id, "")
	}
	return found, nil
}

// FindByEmail はメールアドレスで社員を取得します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanEmployee(exec.QueryRow(ctx, findEmployeeByEmailQuery, email))
	if err != nil {
		return nil, translateEmployeePgError(err, email, "")
	}
	return found, nil
}

// List は全社員を氏名順で取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, translateEmployeePgError(err, "", "")
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err, "", "")
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err, "", "")
	}

	return employees, nil
}

// Count は全社員数を返します。
func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, countEmployeesQuery)
}

// CountByLastName は姓が一致する社員数を返します。
func (r *EmployeeRepository) CountByLastName(ctx context.Context, lastName string) (int64, error) {
	return r.count(ctx, countEmployeesByLastNameQuery, lastName)
}

func (r *EmployeeRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var n int64
	if err := exec.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, translateEmployeePgError(err, "", "")
	}
	return n, nil
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertEmployeeQuery,
		e.ID,
		e.GivenName,
		e.LastName,
		e.Email,
		e.DepartmentID,
		e.CreatedAt,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err, e.ID, e.DepartmentID)
	}
	return created, nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, updateEmployeeQuery,
		e.GivenName,
		e.LastName,
		e.Email,
		e.DepartmentID,
		e.UpdatedAt,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err, e.ID, e.DepartmentID)
	}
	return updated, nil
}

// Delete は社員を削除します。対象が存在しない場合は false を返します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, deleteEmployeeQuery, id)
	if err != nil {
		return false, translateEmployeePgError(err, id, "")
	}
	return tag.RowsAffected() > 0, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		emp                  employee.Employee
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(
		&emp.ID,
		&emp.GivenName,
		&emp.LastName,
		&emp.Email,
		&emp.DepartmentID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	emp.CreatedAt = createdAt.UTC()
	emp.UpdatedAt = updatedAt.UTC()
	return &emp, nil
}

// translateEmployeePgError は pgx のエラーをドメイン失敗へ分類します。
// key は NotFound の対象、departmentID は外部キー違反時の参照先です。
func translateEmployeePgError(err error, key, departmentID string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.NotFound(key)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == employeesEmailKey:
			return employee.ErrEmailAlreadyExists
		case pgErr.Code == foreignKeyViolationCode && pgErr.ConstraintName == employeesDepartmentFkeyKey:
			return department.NotFound(departmentID)
		case strings.HasPrefix(pgErr.Code, integrityViolationClass):
			return failure.ConstraintViolation(err)
		}
	}

	return err
}
