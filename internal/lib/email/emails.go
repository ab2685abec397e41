package email

import (
	"strconv"
)

// SendWelcomeEmail greets a newly created employee.
func (c *Client) SendWelcomeEmail(to, name string) error {
	return c.SendEmail(to, "Welcome to the team!", TemplateWelcome, map[string]string{
		"EmployeeName": name,
		"Email":        to,
	})
}

// SendSalaryUpdatedEmail tells an employee about a recalculated salary.
func (c *Client) SendSalaryUpdatedEmail(to, name string, salary float64, yearsInCompany int) error {
	return c.SendEmail(to, "Your salary has been updated", TemplateSalaryUpdated, map[string]string{
		"EmployeeName":   name,
		"Salary":         strconv.FormatFloat(salary, 'f', 2, 64),
		"YearsInCompany": strconv.Itoa(yearsInCompany),
	})
}
