package api

import (
	"html/template"
	"net/http"
)

// PagesHandler serves the informational pages. Each one gets the preserved
// campaign parameters in its template context so links keep carrying them.
type PagesHandler struct {
	tmpl *template.Template
}

func NewPagesHandler(tmpl *template.Template) *PagesHandler {
	return &PagesHandler{tmpl: tmpl}
}

func (h *PagesHandler) TermsDataCollection(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.tmpl, "terms_data_collection.html", newPageData(r, nil))
}

func (h *PagesHandler) TermsCommunication(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.tmpl, "terms_communication.html", newPageData(r, nil))
}

func (h *PagesHandler) TermsRecruitment(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.tmpl, "terms_recruitment.html", newPageData(r, nil))
}

func (h *PagesHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.tmpl, "privacy.html", newPageData(r, nil))
}

func (h *PagesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.tmpl, "submit.html", newPageData(r, nil))
}
