package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"EmployeeName": "Bob Esponja",
		"Email":        "bob@crustaceo.com",
	},
	TemplateSalaryUpdated: {
		"EmployeeName":   "Bob Esponja",
		"Salary":         "40000.00",
		"YearsInCompany": "7",
	},
}
