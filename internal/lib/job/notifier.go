package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/employee-api/internal/model"
)

// NotifyEmployeeCreated enqueues a welcome e-mail. Employees without an
// e-mail address or id are skipped.
func (j *JobService) NotifyEmployeeCreated(ctx context.Context, e model.Employee) error {
	if e.Email == "" || e.ID == nil {
		return nil
	}

	task, err := NewWelcomeEmailTask(WelcomeEmailPayload{
		EmployeeID: *e.ID,
		To:         e.Email,
		Name:       e.Name,
	})
	if err != nil {
		return err
	}

	return j.enqueue(ctx, task)
}

// NotifySalaryCalculated enqueues a salary e-mail after a recalculation.
func (j *JobService) NotifySalaryCalculated(ctx context.Context, e model.Employee) error {
	if e.Email == "" || e.ID == nil || e.Salary == nil || e.YearsInCompany == nil {
		return nil
	}

	task, err := NewSalaryUpdatedTask(SalaryUpdatedPayload{
		EmployeeID:     *e.ID,
		To:             e.Email,
		Name:           e.Name,
		Salary:         *e.Salary,
		YearsInCompany: *e.YearsInCompany,
	})
	if err != nil {
		return err
	}

	return j.enqueue(ctx, task)
}

func (j *JobService) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}

	j.logger.Debug().
		Str("type", task.Type()).
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("task enqueued")
	return nil
}
