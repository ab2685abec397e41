package service

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/employee-api/internal/errs"
	"github.com/deppfellow/employee-api/internal/model"
	"github.com/deppfellow/employee-api/internal/repository"
)

type memoryStore struct {
	nextID  int64
	rows    map[int64]model.Employee
	saves   int
	deletes int
	err     error
}

func newMemoryStore(seed ...model.Employee) *memoryStore {
	m := &memoryStore{nextID: 1, rows: map[int64]model.Employee{}}
	for _, e := range seed {
		_, _ = m.Save(context.Background(), e)
	}
	m.saves = 0
	return m
}

func (m *memoryStore) sorted(keep func(model.Employee) bool) []model.Employee {
	out := []model.Employee{}
	for _, e := range m.rows {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out
}

func (m *memoryStore) FindAll(context.Context) ([]model.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(model.Employee) bool { return true }), nil
}

func (m *memoryStore) FindByID(_ context.Context, id int64) (model.Employee, error) {
	if m.err != nil {
		return model.Employee{}, m.err
	}
	e, ok := m.rows[id]
	if !ok {
		return model.Employee{}, repository.ErrNotFound
	}
	return e, nil
}

func (m *memoryStore) FindByEmail(_ context.Context, email string) (model.Employee, error) {
	matches := m.sorted(func(e model.Employee) bool { return e.Email == email })
	if len(matches) == 0 {
		return model.Employee{}, repository.ErrNotFound
	}
	return matches[0], nil
}

func (m *memoryStore) FindByMarried(_ context.Context, married bool) ([]model.Employee, error) {
	return m.sorted(func(e model.Employee) bool { return e.Married == married }), nil
}

func (m *memoryStore) FindAllByAgeAfter(_ context.Context, age int) ([]model.Employee, error) {
	return m.sorted(func(e model.Employee) bool { return e.Age > age }), nil
}

func (m *memoryStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memoryStore) Save(_ context.Context, e model.Employee) (model.Employee, error) {
	if m.err != nil {
		return model.Employee{}, m.err
	}
	m.saves++
	if e.ID == nil {
		id := m.nextID
		e.ID = &id
	}
	if *e.ID >= m.nextID {
		m.nextID = *e.ID + 1
	}
	m.rows[*e.ID] = e
	return e, nil
}

func (m *memoryStore) DeleteByID(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	m.deletes++
	delete(m.rows, id)
	return nil
}

func (m *memoryStore) DeleteAll(context.Context) error {
	m.deletes += len(m.rows)
	m.rows = map[int64]model.Employee{}
	return nil
}

type recordingNotifier struct {
	created    []int64
	calculated []int64
	err        error
}

func (r *recordingNotifier) NotifyEmployeeCreated(_ context.Context, e model.Employee) error {
	r.created = append(r.created, *e.ID)
	return r.err
}

func (r *recordingNotifier) NotifySalaryCalculated(_ context.Context, e model.Employee) error {
	r.calculated = append(r.calculated, *e.ID)
	return r.err
}

func ptr[T any](v T) *T { return &v }

func newTestService(store EmployeeStore, notifier EmployeeNotifier) *EmployeeService {
	log := zerolog.Nop()
	return NewEmployeeService(&log, store, notifier)
}

func requireHTTPError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	if code != "" {
		assert.Equal(t, code, httpErr.Code)
	}
}

func TestCalculateSalaryTiers(t *testing.T) {
	tests := []struct {
		desc   string
		years  *int
		salary *float64
	}{
		{"no years leaves salary untouched", nil, ptr(50000.0)},
		{"zero years", ptr(0), ptr(model.SalaryJunior)},
		{"four years", ptr(4), ptr(model.SalaryJunior)},
		{"exactly five years", ptr(5), ptr(model.SalarySenior)},
		{"six years", ptr(6), ptr(model.SalaryMiddle)},
		{"nineteen years", ptr(19), ptr(model.SalaryMiddle)},
		{"twenty years", ptr(20), ptr(model.SalarySenior)},
		{"thirty years", ptr(30), ptr(model.SalarySenior)},
	}

	for i, tc := range tests {
		seed := model.SampleEmployee()
		seed.YearsInCompany = tc.years
		store := newMemoryStore(seed)
		notifier := &recordingNotifier{}

		got, err := newTestService(store, notifier).CalculateSalary(context.Background(), 1)
		require.NoError(t, err, "TEST[%d], failed.\n%s", i, tc.desc)

		assert.Equal(t, tc.salary, got.Salary, "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Equal(t, tc.salary, store.rows[1].Salary, "TEST[%d], failed.\n%s", i, tc.desc)

		wantSaves := 1
		if tc.years == nil {
			wantSaves = 0
		}
		assert.Equal(t, wantSaves, store.saves, "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Len(t, notifier.calculated, wantSaves, "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestCalculateSalaryUnknownEmployee(t *testing.T) {
	_, err := newTestService(newMemoryStore(), nil).CalculateSalary(context.Background(), 42)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeeNotFound)
}

func TestCreate(t *testing.T) {
	store := newMemoryStore()
	notifier := &recordingNotifier{}
	svc := newTestService(store, notifier)

	created, err := svc.Create(context.Background(), model.Employee{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, []int64{*created.ID}, notifier.created)

	_, err = svc.Create(context.Background(), model.Employee{ID: ptr(int64(7)), Name: "Nope"})
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeEmployeeIDPresent)
	assert.Equal(t, 1, store.saves)
}

func TestCreateNotificationFailureIsNotFatal(t *testing.T) {
	svc := newTestService(newMemoryStore(), &recordingNotifier{err: errors.New("redis down")})

	created, err := svc.Create(context.Background(), model.Employee{Name: "Ana"})
	require.NoError(t, err)
	assert.NotNil(t, created.ID)
}

func TestUpdate(t *testing.T) {
	store := newMemoryStore(model.SampleEmployee())
	svc := newTestService(store, nil)

	_, err := svc.Update(context.Background(), model.Employee{Name: "No id"})
	requireHTTPError(t, err, http.StatusBadRequest, errs.CodeEmployeeIDMissing)
	assert.Equal(t, 0, store.saves)

	updated, err := svc.Update(context.Background(), model.Employee{ID: ptr(int64(1)), Name: "Bob", Age: 24})
	require.NoError(t, err)
	assert.Equal(t, 24, updated.Age)
	assert.Equal(t, "Bob", store.rows[1].Name)

	inserted, err := svc.Update(context.Background(), model.Employee{ID: ptr(int64(99)), Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), *inserted.ID)
}

func TestDelete(t *testing.T) {
	store := newMemoryStore(model.SampleEmployee())
	svc := newTestService(store, nil)

	err := svc.Delete(context.Background(), 5)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeeNotFound)
	assert.Equal(t, 0, store.deletes)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, store.rows)
}

func TestDeleteAll(t *testing.T) {
	store := newMemoryStore(model.SampleEmployee(), model.Employee{Name: "Ana"})

	require.NoError(t, newTestService(store, nil).DeleteAll(context.Background()))
	assert.Empty(t, store.rows)
}

func TestFilters(t *testing.T) {
	store := newMemoryStore(
		model.Employee{Name: "A", Age: 20, Married: true},
		model.Employee{Name: "B", Age: 30},
		model.Employee{Name: "C", Age: 40, Married: true},
	)
	svc := newTestService(store, nil)
	ctx := context.Background()

	married, err := svc.ListByMarried(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, names(married))

	older, err := svc.ListOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, names(older))

	_, err = svc.ListOlderThan(ctx, 40)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeesNotMatched)

	require.NoError(t, svc.DeleteAll(ctx))
	_, err = svc.ListByMarried(ctx, false)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeesNotMatched)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetters(t *testing.T) {
	store := newMemoryStore(model.SampleEmployee(), model.Employee{Name: "Twin", Email: "bob@crustaceo.com"})
	svc := newTestService(store, nil)
	ctx := context.Background()

	e, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Twin", e.Name)

	e, err = svc.GetByEmail(ctx, "bob@crustaceo.com")
	require.NoError(t, err)
	assert.Equal(t, "Bob Esponja", e.Name)

	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeeNotFound)

	_, err = svc.GetByID(ctx, 3)
	requireHTTPError(t, err, http.StatusNotFound, errs.CodeEmployeeNotFound)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")

	_, err := newTestService(store, nil).List(context.Background())
	requireHTTPError(t, err, http.StatusInternalServerError, "")
}

func TestSeedSampleEmployee(t *testing.T) {
	store := newMemoryStore()
	notifier := &recordingNotifier{}

	saved, err := newTestService(store, notifier).SeedSampleEmployee(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bob Esponja", saved.Name)
	assert.Equal(t, ptr(50000.0), saved.Salary)
	assert.Empty(t, notifier.created)
}

func names(employees []model.Employee) []string {
	out := make([]string, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.Name)
	}
	return out
}
