package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/core/failure"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var employeeColumnNames = []string{"id", "given_name", "last_name", "email", "department_id", "created_at", "updated_at"}

type stubEmployeeRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubEmployeeRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("JST", 9*60*60)
	createdAt := time.Date(2025, 1, 1, 9, 0, 0, 0, loc)

	row := stubEmployeeRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 7 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "emp-1"
		*(dest[1].(*string)) = "Ada"
		*(dest[2].(*string)) = "Lovelace"
		*(dest[3].(*string)) = "ada@x.io"
		*(dest[4].(*string)) = "Engineering"
		*(dest[5].(*time.Time)) = createdAt
		*(dest[6].(*time.Time)) = createdAt
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}

	if emp.ID != "emp-1" || emp.DepartmentID != "Engineering" {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	if emp.CreatedAt.Location() != time.UTC || !emp.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected UTC timestamp, got %v", emp.CreatedAt)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateEmployeePgError(pgx.ErrNoRows, "emp-1", ""), &failure.Error{Kind: failure.KindNotFound, Entity: employee.EntityName, Key: "emp-1"}) {
		t.Fatalf("expected no rows to map to employee NotFound")
	}

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeesEmailKey}
	if !errors.Is(translateEmployeePgError(uniqueErr, "", ""), employee.ErrEmailAlreadyExists) {
		t.Fatalf("expected unique violation to map to ErrEmailAlreadyExists")
	}

	fkErr := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: employeesDepartmentFkeyKey}
	if !errors.Is(translateEmployeePgError(fkErr, "emp-1", "Ghost"), &failure.Error{Kind: failure.KindNotFound, Entity: department.EntityName, Key: "Ghost"}) {
		t.Fatalf("expected fk violation to map to department NotFound")
	}

	checkErr := &pgconn.PgError{Code: "23514", ConstraintName: "employees_email_check"}
	if failure.OutcomeOf(translateEmployeePgError(checkErr, "", "")) != failure.OutcomeConflict {
		t.Fatalf("expected other integrity violations to map to conflict")
	}

	other := errors.New("other")
	if translateEmployeePgError(other, "", "") != other {
		t.Fatalf("unexpected translation for generic error")
	}
	if failure.OutcomeOf(translateEmployeePgError(&pgconn.PgError{Code: "57014"}, "", "")) != failure.OutcomeInternal {
		t.Fatalf("expected query cancellation to stay unclassified")
	}
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *EmployeeRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock, NewEmployeeRepository(mock)
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(findEmployeeByIDQuery)).
		WithArgs("emp-1").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).
			AddRow("emp-1", "Ada", "Lovelace", "ada@x.io", "Engineering", now, now))

	emp, err := repo.FindByID(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if emp.Email != "ada@x.io" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_FindByEmail_NotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(findEmployeeByEmailQuery)).
		WithArgs("nobody@x.io").
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	_, err := repo.FindByEmail(context.Background(), "nobody@x.io")
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(listEmployeesQuery)).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames).
			AddRow("emp-2", "Charles", "Babbage", "charles@x.io", "Engineering", now, now).
			AddRow("emp-1", "Ada", "Lovelace", "ada@x.io", "Engineering", now, now))

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(employees) != 2 || employees[0].LastName != "Babbage" {
		t.Fatalf("unexpected employees: %+v", employees)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Count(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(countEmployeesQuery)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(countEmployeesByLastNameQuery)).
		WithArgs("Lovelace").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	total, err := repo.Count(context.Background())
	if err != nil || total != 3 {
		t.Fatalf("expected 3, got %d (%v)", total, err)
	}

	filtered, err := repo.CountByLastName(context.Background(), "Lovelace")
	if err != nil || filtered != 2 {
		t.Fatalf("expected 2, got %d (%v)", filtered, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	now := time.Now().UTC()
	emp := &employee.Employee{
		ID: "emp-1", GivenName: "Ada", LastName: "Lovelace", Email: "ada@x.io", DepartmentID: "Engineering",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(emp.ID, emp.GivenName, emp.LastName, emp.Email, emp.DepartmentID, emp.CreatedAt, emp.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeesEmailKey})

	_, err := repo.Create(context.Background(), emp)
	if !errors.Is(err, employee.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Update_Missing(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	now := time.Now().UTC()
	emp := &employee.Employee{
		ID: "missing", GivenName: "Ada", LastName: "Lovelace", Email: "ada@x.io", DepartmentID: "Engineering", UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(updateEmployeeQuery)).
		WithArgs(emp.GivenName, emp.LastName, emp.Email, emp.DepartmentID, emp.UpdatedAt, emp.ID).
		WillReturnRows(pgxmock.NewRows(employeeColumnNames))

	_, err := repo.Update(context.Background(), emp)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Delete(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), "emp-1")
	if err != nil || !deleted {
		t.Fatalf("expected first delete to remove a row, got %t (%v)", deleted, err)
	}

	deleted, err = repo.Delete(context.Background(), "emp-1")
	if err != nil || deleted {
		t.Fatalf("expected second delete to be a no-op, got %t (%v)", deleted, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
