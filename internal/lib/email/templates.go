package email

import (
	"embed"
	"html/template"
)

// Template names an embedded HTML template under templates/.
type Template string

const (
	TemplateWelcome       Template = "welcome"
	TemplateSalaryUpdated  Template = "salary_updated"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (t Template) file() string {
	return string(t) + ".html"
}
