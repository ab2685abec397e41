package handler

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/employee-api/internal/model"
	"github.com/deppfellow/employee-api/internal/server"
	"github.com/deppfellow/employee-api/internal/service"
)

// EmployeeLocationPrefix is the path returned in the Location header
// after a create.
const EmployeeLocationPrefix = "/api/employees/"

type EmployeeHandler struct {
	Handler
	employees *service.EmployeeService
}

func NewEmployeeHandler(s *server.Server, employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		Handler:   NewHandler(s),
		employees: employees,
	}
}

func (h *EmployeeHandler) List(c echo.Context, _ *model.ListEmployeesRequest) ([]model.Employee, error) {
	return h.employees.List(c.Request().Context())
}

func (h *EmployeeHandler) Get(c echo.Context, req *model.EmployeeIDRequest) (model.Employee, error) {
	return h.employees.GetByID(c.Request().Context(), req.ID)
}

func (h *EmployeeHandler) GetByEmail(c echo.Context, req *model.GetEmployeeByEmailRequest) (model.Employee, error) {
	email, err := url.PathUnescape(req.Email)
	if err != nil {
		email = req.Email
	}
	return h.employees.GetByEmail(c.Request().Context(), email)
}

func (h *EmployeeHandler) FilterByMarried(c echo.Context, req *model.FilterByMarriedRequest) ([]model.Employee, error) {
	return h.employees.ListByMarried(c.Request().Context(), req.Married)
}

func (h *EmployeeHandler) FilterByAge(c echo.Context, req *model.FilterByAgeRequest) ([]model.Employee, error) {
	return h.employees.ListOlderThan(c.Request().Context(), req.Age)
}

func (h *EmployeeHandler) CalculateSalary(c echo.Context, req *model.EmployeeIDRequest) (model.Employee, error) {
	return h.employees.CalculateSalary(c.Request().Context(), req.ID)
}

// Create answers 201 with the stored employee and its Location.
func (h *EmployeeHandler) Create(c echo.Context, req *model.CreateEmployeeRequest) (model.Employee, error) {
	created, err := h.employees.Create(c.Request().Context(), req.Employee)
	if err != nil {
		return model.Employee{}, err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s%d", EmployeeLocationPrefix, *created.ID))
	return created, nil
}

func (h *EmployeeHandler) Update(c echo.Context, req *model.UpdateEmployeeRequest) (model.Employee, error) {
	return h.employees.Update(c.Request().Context(), req.Employee)
}

func (h *EmployeeHandler) Delete(c echo.Context, req *model.EmployeeIDRequest) error {
	return h.employees.Delete(c.Request().Context(), req.ID)
}

func (h *EmployeeHandler) DeleteAll(c echo.Context, _ *model.DeleteAllEmployeesRequest) error {
	return h.employees.DeleteAll(c.Request().Context())
}
