package model

import (
	"github.com/deppfellow/employee-api/internal/validation"
)

type ListEmployeesRequest struct{}

func (r *ListEmployeesRequest) Validate() error { return nil }

// EmployeeIDRequest carries the {id} path parameter.
type EmployeeIDRequest struct {
	ID int64 `param:"id" json:"-"`
}

func (r *EmployeeIDRequest) Validate() error { return nil }

type GetEmployeeByEmailRequest struct {
	Email string `param:"email" json:"-" validate:"required"`
}

func (r *GetEmployeeByEmailRequest) Validate() error {
	return validation.Struct(r)
}

type FilterByMarriedRequest struct {
	Married bool `param:"married" json:"-"`
}

func (r *FilterByMarriedRequest) Validate() error { return nil }

type FilterByAgeRequest struct {
	Age int `param:"age" json:"-"`
}

func (r *FilterByAgeRequest) Validate() error { return nil }

// CreateEmployeeRequest is the POST body. The id is assigned by the
// store and must be absent.
type CreateEmployeeRequest struct {
	Employee
}

func (r *CreateEmployeeRequest) Validate() error {
	if r.HasID() {
		return validation.CustomValidationErrors{{
			Field:   "id",
			Message: "must not be set when creating an employee",
		}}
	}
	return nil
}

// UpdateEmployeeRequest is the PUT body. It must name the employee by id.
type UpdateEmployeeRequest struct {
	Employee
}

func (r *UpdateEmployeeRequest) Validate() error {
	if !r.HasID() {
		return validation.CustomValidationErrors{{
			Field:   "id",
			Message: "is required",
		}}
	}
	return nil
}

type DeleteAllEmployeesRequest struct{}

func (r *DeleteAllEmployeesRequest) Validate() error { return nil }
