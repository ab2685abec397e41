package repository

import (
	"github.com/deppfellow/employee-api/internal/server"
)

// Repositories groups every store built on the shared pool.
type Repositories struct {
	Employee *EmployeeRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Employee: NewEmployeeRepository(s.DB.Pool),
	}
}
