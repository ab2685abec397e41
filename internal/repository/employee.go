package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/employee-api/internal/model"
)

const employeeColumns = `id, name, email, married, age, address, salary, years_in_company`

// EmployeeRepository persists employees in the employees table.
// Lists are ordered by id.
type EmployeeRepository struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]model.Employee, error) {
	return r.list(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, error) {
	return r.one(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
}

// FindByEmail returns the lowest-id employee with the given address.
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (model.Employee, error) {
	return r.one(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1 ORDER BY id LIMIT 1`, email)
}

func (r *EmployeeRepository) FindByMarried(ctx context.Context, married bool) ([]model.Employee, error) {
	return r.list(ctx, `SELECT `+employeeColumns+` FROM employees WHERE married = $1 ORDER BY id`, married)
}

// FindAllByAgeAfter returns employees strictly older than age.
func (r *EmployeeRepository) FindAllByAgeAfter(ctx context.Context, age int) ([]model.Employee, error) {
	return r.list(ctx, `SELECT `+employeeColumns+` FROM employees WHERE age > $1 ORDER BY id`, age)
}

func (r *EmployeeRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists employee %d: %w", id, err)
	}
	return exists, nil
}

// Save inserts e when it has no id and upserts it otherwise. The stored
// record is returned with its id set.
func (r *EmployeeRepository) Save(ctx context.Context, e model.Employee) (model.Employee, error) {
	if !e.HasID() {
		row := r.db.QueryRow(ctx, `
			INSERT INTO employees (name, email, married, age, address, salary, years_in_company)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+employeeColumns,
			e.Name, e.Email, e.Married, e.Age, e.Address, e.Salary, e.YearsInCompany,
		)
		saved, err := scanEmployee(row)
		if err != nil {
			return model.Employee{}, fmt.Errorf("insert employee: %w", err)
		}
		return saved, nil
	}

	var (
		saved    model.Employee
		inserted bool
	)
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees (id, name, email, married, age, address, salary, years_in_company)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name             = EXCLUDED.name,
			email            = EXCLUDED.email,
			married          = EXCLUDED.married,
			age              = EXCLUDED.age,
			address          = EXCLUDED.address,
			salary           = EXCLUDED.salary,
			years_in_company = EXCLUDED.years_in_company,
			updated_at       = now()
		RETURNING `+employeeColumns+`, (xmax = 0)`,
		*e.ID, e.Name, e.Email, e.Married, e.Age, e.Address, e.Salary, e.YearsInCompany,
	).Scan(employeeDest(&saved, &inserted)...)
	if err != nil {
		return model.Employee{}, fmt.Errorf("upsert employee %d: %w", *e.ID, err)
	}

	// Rows inserted with an explicit id do not advance the identity sequence.
	if inserted {
		_, err = r.db.Exec(ctx, `
			SELECT setval(pg_get_serial_sequence('employees', 'id'),
			              GREATEST((SELECT MAX(id) FROM employees), 1))`)
		if err != nil {
			return model.Employee{}, fmt.Errorf("sync employee id sequence: %w", err)
		}
	}

	return saved, nil
}

// DeleteByID reports ErrNotFound when no row was removed.
func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("delete all employees: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) one(ctx context.Context, query string, args ...any) (model.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Employee{}, ErrNotFound
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("query employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) list(ctx context.Context, query string, args ...any) ([]model.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(row pgx.Row) (model.Employee, error) {
	var e model.Employee
	err := row.Scan(employeeDest(&e)...)
	return e, err
}

func employeeDest(e *model.Employee, extra ...any) []any {
	e.ID = new(int64)
	dest := []any{e.ID, &e.Name, &e.Email, &e.Married, &e.Age, &e.Address, &e.Salary, &e.YearsInCompany}
	return append(dest, extra...)
}
