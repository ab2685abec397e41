package service

import (
	"context"
	"errors"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/employee-api/internal/errs"
	loggerPkg "github.com/deppfellow/employee-api/internal/logger"
	"github.com/deppfellow/employee-api/internal/model"
	"github.com/deppfellow/employee-api/internal/repository"
	"github.com/deppfellow/employee-api/internal/sqlerr"
)

// EmployeeStore is the persistence the service needs.
// repository.EmployeeRepository satisfies it.
type EmployeeStore interface {
	FindAll(ctx context.Context) ([]model.Employee, error)
	FindByID(ctx context.Context, id int64) (model.Employee, error)
	FindByEmail(ctx context.Context, email string) (model.Employee, error)
	FindByMarried(ctx context.Context, married bool) ([]model.Employee, error)
	FindAllByAgeAfter(ctx context.Context, age int) ([]model.Employee, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, e model.Employee) (model.Employee, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// EmployeeNotifier is told about writes that should reach the employee.
type EmployeeNotifier interface {
	NotifyEmployeeCreated(ctx context.Context, e model.Employee) error
	NotifySalaryCalculated(ctx context.Context, e model.Employee) error
}

type EmployeeService struct {
	logger   *zerolog.Logger
	store    EmployeeStore
	notifier EmployeeNotifier
}

// NewEmployeeService builds the service. notifier may be nil.
func NewEmployeeService(logger *zerolog.Logger, store EmployeeStore, notifier EmployeeNotifier) *EmployeeService {
	return &EmployeeService{
		logger:   logger,
		store:    store,
		notifier: notifier,
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, s.storeError(ctx, err, "list employees")
	}
	return employees, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (model.Employee, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "get employee")
	}
	return e, nil
}

func (s *EmployeeService) GetByEmail(ctx context.Context, email string) (model.Employee, error) {
	e, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "get employee by email")
	}
	return e, nil
}

// ListByMarried answers 404 when nobody matches.
func (s *EmployeeService) ListByMarried(ctx context.Context, married bool) ([]model.Employee, error) {
	employees, err := s.store.FindByMarried(ctx, married)
	if err != nil {
		return nil, s.storeError(ctx, err, "filter employees by married")
	}
	if len(employees) == 0 {
		return nil, noMatches()
	}
	return employees, nil
}

// ListOlderThan returns employees with age strictly greater than age,
// answering 404 when nobody matches.
func (s *EmployeeService) ListOlderThan(ctx context.Context, age int) ([]model.Employee, error) {
	employees, err := s.store.FindAllByAgeAfter(ctx, age)
	if err != nil {
		return nil, s.storeError(ctx, err, "filter employees by age")
	}
	if len(employees) == 0 {
		return nil, noMatches()
	}
	return employees, nil
}

// CalculateSalary assigns the salary tier for the employee's years in the
// company and saves it. Employees without years are returned unchanged
// and nothing is written.
func (s *EmployeeService) CalculateSalary(ctx context.Context, id int64) (model.Employee, error) {
	defer newrelic.FromContext(ctx).StartSegment("employee.calculate_salary").End()

	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "get employee for salary")
	}

	if !e.ApplySalaryTier() {
		return e, nil
	}

	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "save calculated salary")
	}

	loggerPkg.FromContext(ctx, s.logger).Info().
		Int64("employee_id", id).
		Int("years_in_company", *saved.YearsInCompany).
		Float64("salary", *saved.Salary).
		Msg("salary calculated")

	if s.notifier != nil {
		if err := s.notifier.NotifySalaryCalculated(ctx, saved); err != nil {
			s.notifyFailed(ctx, err, id)
		}
	}

	return saved, nil
}

// Create stores a new employee. A client-supplied id is rejected.
func (s *EmployeeService) Create(ctx context.Context, e model.Employee) (model.Employee, error) {
	if e.HasID() {
		return model.Employee{}, errs.NewBadRequestError("A new employee cannot already have an id", true,
			errs.Code(errs.CodeEmployeeIDPresent), []errs.FieldError{{Field: "id", Error: "must be empty"}}, nil)
	}

	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "create employee")
	}

	loggerPkg.FromContext(ctx, s.logger).Info().Int64("employee_id", *saved.ID).Msg("employee created")

	if s.notifier != nil {
		if err := s.notifier.NotifyEmployeeCreated(ctx, saved); err != nil {
			s.notifyFailed(ctx, err, *saved.ID)
		}
	}

	return saved, nil
}

// Update overwrites the employee with e.ID. An unknown id is inserted.
func (s *EmployeeService) Update(ctx context.Context, e model.Employee) (model.Employee, error) {
	if !e.HasID() {
		return model.Employee{}, errs.NewBadRequestError("Invalid id", true,
			errs.Code(errs.CodeEmployeeIDMissing), []errs.FieldError{{Field: "id", Error: "is required"}}, nil)
	}

	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return model.Employee{}, s.storeError(ctx, err, "update employee")
	}
	return saved, nil
}

// Delete removes one employee, answering 404 for unknown ids.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return s.storeError(ctx, err, "check employee")
	}
	if !exists {
		return employeeNotFound()
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return s.storeError(ctx, err, "delete employee")
	}

	loggerPkg.FromContext(ctx, s.logger).Info().Int64("employee_id", id).Msg("employee deleted")
	return nil
}

func (s *EmployeeService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return s.storeError(ctx, err, "delete all employees")
	}

	loggerPkg.FromContext(ctx, s.logger).Warn().Msg("all employees deleted")
	return nil
}

// SeedSampleEmployee stores the demo record. It runs once at start-up
// and does not notify.
func (s *EmployeeService) SeedSampleEmployee(ctx context.Context) (model.Employee, error) {
	saved, err := s.store.Save(ctx, model.SampleEmployee())
	if err != nil {
		return model.Employee{}, err
	}

	s.logger.Info().Int64("employee_id", *saved.ID).Str("email", saved.Email).Msg("sample employee saved")
	return saved, nil
}

func (s *EmployeeService) storeError(ctx context.Context, err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return employeeNotFound()
	}

	loggerPkg.FromContext(ctx, s.logger).Error().Err(err).Str("operation", op).Msg("employee store failed")
	return sqlerr.HandleError(err)
}

func (s *EmployeeService) notifyFailed(ctx context.Context, err error, id int64) {
	loggerPkg.FromContext(ctx, s.logger).Warn().Err(err).Int64("employee_id", id).Msg("failed to enqueue employee notification")
}

func employeeNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Employee not found", true, errs.Code(errs.CodeEmployeeNotFound))
}

func noMatches() *errs.HTTPError {
	return errs.NewNotFoundError("No employees match the filter", true, errs.Code(errs.CodeEmployeesNotMatched))
}
