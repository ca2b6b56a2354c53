package api

import (
	"html/template"
	"net/http"

	"log/slog"

	"github.com/taskify/intake/pkg/models"
	"github.com/taskify/intake/pkg/repository"
)

// ApplicationsHandler renders the full submissions list, newest first.
type ApplicationsHandler struct {
	repo repository.ApplicantRepo
	tmpl *template.Template
}

func NewApplicationsHandler(repo repository.ApplicantRepo, tmpl *template.Template) *ApplicationsHandler {
	return &ApplicationsHandler{repo: repo, tmpl: tmpl}
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.repo.ListApplicants(r.Context())
	if err != nil {
		logger.Error("list applicants", slog.Any("err", err), slog.String("request_id", requestID(r)))
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}
	if applicants == nil {
		applicants = []models.Applicant{}
	}

	logger.Info("applications page accessed", slog.Int("total", len(applicants)))

	data := newPageData(r, nil)
	data.Applicants = applicants
	renderPage(w, h.tmpl, "applications.html", data)
}
