package api

import (
	"html/template"
	"net/http"

	"log/slog"

	"github.com/taskify/intake/internal/params"
	"github.com/taskify/intake/pkg/models"
	"github.com/taskify/intake/web"
)

// parseTemplates loads the embedded page templates.
func parseTemplates() (*template.Template, error) {
	return template.ParseFS(web.Templates, "templates/*.html")
}

// pageData is the context handed to every rendered page.
type pageData struct {
	Query       []params.Param
	QueryParams map[string]string
	Flashes     []Flash
	Applicants  []models.Applicant
	FormAction  string
}

func newPageData(r *http.Request, flashes []Flash) pageData {
	q := params.FromRequest(r)
	return pageData{
		Query:       q,
		QueryParams: params.Map(q),
		Flashes:     flashes,
		FormAction:  params.BuildURL("/", q, nil),
	}
}

// Link builds an internal URL with the preserved parameters attached.
func (d pageData) Link(base string) string {
	return params.BuildURL(base, d.Query, nil)
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("render template", slog.String("template", name), slog.Any("err", err))
	}
}
