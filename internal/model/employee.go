// Package model holds the domain entities shared by the repository,
// service and handler layers.
package model

// Salary tiers assigned by CalculateSalary.
const (
	SalaryJunior float64 = 24000
	SalaryMiddle float64 = 40000
	SalarySenior float64 = 60000
)

// Employee is the only entity exposed by the API.
//
// ID is nil until the record store assigns one. Salary and YearsInCompany
// are nullable columns and stay nil when unknown.
type Employee struct {
	ID             *int64   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Married        bool     `json:"married"`
	Age            int      `json:"age"`
	Address        string   `json:"address"`
	Salary         *float64 `json:"salary"`
	YearsInCompany *int     `json:"yearsInCompany"`
}

// HasID reports whether the employee has already been persisted.
func (e *Employee) HasID() bool {
	return e.ID != nil
}

// SalaryForYears returns the salary tier for the given seniority.
//
// Exactly 5 years falls into the senior tier: the middle tier only
// starts strictly above 5.
func SalaryForYears(years int) float64 {
	switch {
	case years < 5:
		return SalaryJunior
	case years > 5 && years < 20:
		return SalaryMiddle
	default:
		return SalarySenior
	}
}

// ApplySalaryTier sets Salary from YearsInCompany.
// It returns false and leaves the employee untouched when YearsInCompany is nil.
func (e *Employee) ApplySalaryTier() bool {
	if e.YearsInCompany == nil {
		return false
	}

	salary := SalaryForYears(*e.YearsInCompany)
	e.Salary = &salary
	return true
}

// SampleEmployee is the demo record saved at startup.
func SampleEmployee() Employee {
	salary := 50000.0
	return Employee{
		Name:    "Bob Esponja",
		Email:   "bob@crustaceo.com",
		Married: false,
		Age:     23,
		Address: "Fondo de Bikini",
		Salary:  &salary,
	}
}
