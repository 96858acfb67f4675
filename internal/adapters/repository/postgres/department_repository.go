package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const (
	findDepartmentByNameQuery = `
        SELECT name, description, company
          FROM departments
         WHERE name = $1
         LIMIT 1
    `
	listDepartmentsQuery = `
        SELECT name, description, company
          FROM departments
         ORDER BY name
    `
)

// DepartmentRepository は PostgreSQL を利用した部署参照の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// FindByName は名前で部署を取得します。
func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var d department.Department
	if err := exec.QueryRow(ctx, findDepartmentByNameQuery, name).Scan(&d.Name, &d.Description, &d.Company); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.NotFound(name)
		}
		return nil, err
	}
	return &d, nil
}

// List は全部署を名前順で取得します。
func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listDepartmentsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.Name, &d.Description, &d.Company); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}
