package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names routed by the worker mux.
const (
	TaskEmployeeWelcome       = "employee:welcome"
	TaskEmployeeSalaryUpdated = "employee:salary_updated"
)

type WelcomeEmailPayload struct {
	EmployeeID int64  `json:"employee_id"`
	To         string `json:"to"`
	Name       string `json:"name"`
}

type SalaryUpdatedPayload struct {
	EmployeeID     int64   `json:"employee_id"`
	To             string  `json:"to"`
	Name           string  `json:"name"`
	Salary         float64 `json:"salary"`
	YearsInCompany int     `json:"years_in_company"`
}

// NewWelcomeEmailTask builds a task that retries 3 times on the default queue.
func NewWelcomeEmailTask(p WelcomeEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEmployeeWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewSalaryUpdatedTask builds a low priority notification task.
func NewSalaryUpdatedTask(p SalaryUpdatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEmployeeSalaryUpdated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
