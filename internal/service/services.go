package service

import (
	"github.com/deppfellow/employee-api/internal/lib/job"
	"github.com/deppfellow/employee-api/internal/repository"
	"github.com/deppfellow/employee-api/internal/server"
)

type Services struct {
	Employee *EmployeeService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier EmployeeNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Employee: NewEmployeeService(s.Logger, repos.Employee, notifier),
		Job:      s.Job,
	}, nil
}
