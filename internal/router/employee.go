package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/employee-api/internal/handler"
	"github.com/deppfellow/employee-api/internal/model"
)

func registerEmployeeRoutes(api *echo.Group, h *handler.Handlers) {
	eh := h.Employee
	employees := api.Group("/employees")

	employees.GET("", handler.Handle(eh.Handler, eh.List, http.StatusOK, &model.ListEmployeesRequest{}))
	employees.GET("/:id", handler.Handle(eh.Handler, eh.Get, http.StatusOK, &model.EmployeeIDRequest{}))
	employees.GET("/email/:email", handler.Handle(eh.Handler, eh.GetByEmail, http.StatusOK, &model.GetEmployeeByEmailRequest{}))
	employees.GET("/married/:married", handler.Handle(eh.Handler, eh.FilterByMarried, http.StatusOK, &model.FilterByMarriedRequest{}))
	employees.GET("/age-greater/:age", handler.Handle(eh.Handler, eh.FilterByAge, http.StatusOK, &model.FilterByAgeRequest{}))
	employees.GET("/calculate-salary/:id", handler.Handle(eh.Handler, eh.CalculateSalary, http.StatusOK, &model.EmployeeIDRequest{}))

	employees.POST("", handler.Handle(eh.Handler, eh.Create, http.StatusCreated, &model.CreateEmployeeRequest{}))
	employees.PUT("", handler.Handle(eh.Handler, eh.Update, http.StatusOK, &model.UpdateEmployeeRequest{}))

	employees.DELETE("/:id", handler.HandleNoContent(eh.Handler, eh.Delete, http.StatusNoContent, &model.EmployeeIDRequest{}))
	employees.DELETE("", handler.HandleNoContent(eh.Handler, eh.DeleteAll, http.StatusNoContent, &model.DeleteAllEmployeesRequest{}))
}
