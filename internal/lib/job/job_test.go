package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/employee-api/internal/model"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeMailer struct {
	welcome []string
	salary  []float64
	err     error
}

func (f *fakeMailer) SendWelcomeEmail(to, _ string) error {
	f.welcome = append(f.welcome, to)
	return f.err
}

func (f *fakeMailer) SendSalaryUpdatedEmail(_, _ string, salary float64, _ int) error {
	f.salary = append(f.salary, salary)
	return f.err
}

func newTestService(enq Enqueuer, m mailer) *JobService {
	log := zerolog.Nop()
	j := &JobService{Client: enq, logger: &log}
	if m != nil {
		j.mailer = m
	}
	return j
}

func employee(id int64, email string) model.Employee {
	salary := 40000.0
	years := 7
	return model.Employee{ID: &id, Name: "Bob", Email: email, Salary: &salary, YearsInCompany: &years}
}

func TestNotifyEmployeeCreated(t *testing.T) {
	tests := []struct {
		desc     string
		employee model.Employee
		queued   int
	}{
		{"enqueues welcome task", employee(1, "bob@crustaceo.com"), 1},
		{"skips empty email", employee(2, ""), 0},
		{"skips unsaved employee", model.Employee{Email: "x@y.z"}, 0},
	}

	for i, tc := range tests {
		enq := &fakeEnqueuer{}
		err := newTestService(enq, nil).NotifyEmployeeCreated(context.Background(), tc.employee)

		require.NoError(t, err, "TEST[%d], failed.\n%s", i, tc.desc)
		assert.Len(t, enq.tasks, tc.queued, "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestNotifyEmployeeCreatedPayload(t *testing.T) {
	enq := &fakeEnqueuer{}
	require.NoError(t, newTestService(enq, nil).NotifyEmployeeCreated(context.Background(), employee(9, "bob@crustaceo.com")))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskEmployeeWelcome, enq.tasks[0].Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{EmployeeID: 9, To: "bob@crustaceo.com", Name: "Bob"}, p)
}

func TestNotifySalaryCalculated(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := newTestService(enq, nil)

	require.NoError(t, svc.NotifySalaryCalculated(context.Background(), employee(3, "bob@crustaceo.com")))
	require.NoError(t, svc.NotifySalaryCalculated(context.Background(), model.Employee{Email: "bob@crustaceo.com"}))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskEmployeeSalaryUpdated, enq.tasks[0].Type())
}

func TestNotifyEnqueueError(t *testing.T) {
	svc := newTestService(&fakeEnqueuer{err: errors.New("redis down")}, nil)

	err := svc.NotifyEmployeeCreated(context.Background(), employee(1, "bob@crustaceo.com"))
	assert.ErrorContains(t, err, "redis down")
}

func TestHandlers(t *testing.T) {
	welcome, err := NewWelcomeEmailTask(WelcomeEmailPayload{EmployeeID: 1, To: "bob@crustaceo.com", Name: "Bob"})
	require.NoError(t, err)
	salary, err := NewSalaryUpdatedTask(SalaryUpdatedPayload{EmployeeID: 1, To: "bob@crustaceo.com", Salary: 60000, YearsInCompany: 20})
	require.NoError(t, err)

	m := &fakeMailer{}
	svc := newTestService(&fakeEnqueuer{}, m)

	require.NoError(t, svc.handleWelcomeEmailTask(context.Background(), welcome))
	require.NoError(t, svc.handleSalaryUpdatedTask(context.Background(), salary))

	assert.Equal(t, []string{"bob@crustaceo.com"}, m.welcome)
	assert.Equal(t, []float64{60000}, m.salary)
}

func TestHandlersWithoutMailerDropTasks(t *testing.T) {
	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{EmployeeID: 1, To: "bob@crustaceo.com"})
	require.NoError(t, err)

	assert.NoError(t, newTestService(&fakeEnqueuer{}, nil).handleWelcomeEmailTask(context.Background(), task))
}

func TestHandlerErrors(t *testing.T) {
	m := &fakeMailer{err: errors.New("provider down")}
	svc := newTestService(&fakeEnqueuer{}, m)

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{EmployeeID: 1, To: "bob@crustaceo.com"})
	require.NoError(t, err)
	assert.ErrorContains(t, svc.handleWelcomeEmailTask(context.Background(), task), "provider down")

	bad := asynq.NewTask(TaskEmployeeSalaryUpdated, []byte("{"))
	assert.ErrorIs(t, svc.handleSalaryUpdatedTask(context.Background(), bad), asynq.SkipRetry)
}
