package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"log/slog"

	"github.com/taskify/intake/internal/upload"
	"github.com/taskify/intake/pkg/models"
	"github.com/taskify/intake/pkg/repository"
)

// SystemHandler exposes the status, debug, health and version endpoints.
type SystemHandler struct {
	repo    repository.ApplicantRepo
	uploads *upload.Store
	dbPath  string
}

func NewSystemHandler(repo repository.ApplicantRepo, uploads *upload.Store, dbPath string) *SystemHandler {
	return &SystemHandler{repo: repo, uploads: uploads, dbPath: dbPath}
}

type statusResponse struct {
	TotalApplications int64  `json:"total_applications"`
	BotSubmissions    int64  `json:"bot_submissions"`
	DirectSubmissions int64  `json:"direct_submissions"`
	DatabasePath      string `json:"database_path"`
	DatabaseExists    bool   `json:"database_exists"`
	Timestamp         string `json:"timestamp"`
}

func (h *SystemHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.repo.CountApplicants(ctx, "")
	if err != nil {
		logger.Error("count applicants", slog.Any("err", err))
		http.Error(w, "failed to read status", http.StatusInternalServerError)
		return
	}
	bots, err := h.repo.CountApplicants(ctx, models.SourceBot)
	if err != nil {
		http.Error(w, "failed to read status", http.StatusInternalServerError)
		return
	}
	direct, err := h.repo.CountApplicants(ctx, models.SourceDirect)
	if err != nil {
		http.Error(w, "failed to read status", http.StatusInternalServerError)
		return
	}

	_, statErr := os.Stat(h.dbPath)

	writeJSON(w, statusResponse{
		TotalApplications: total,
		BotSubmissions:    bots,
		DirectSubmissions: direct,
		DatabasePath:      h.dbPath,
		DatabaseExists:    statErr == nil,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

type debugSubmission struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Source      string `json:"source"`
	SubmittedAt string `json:"submitted_at"`
	Resume      bool   `json:"resume"`
}

func (h *SystemHandler) DebugHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recent, err := h.repo.RecentApplicants(ctx, 10)
	if err != nil {
		logger.Error("recent applicants", slog.Any("err", err))
		http.Error(w, "failed to read submissions", http.StatusInternalServerError)
		return
	}
	total, err := h.repo.CountApplicants(ctx, "")
	if err != nil {
		http.Error(w, "failed to count submissions", http.StatusInternalServerError)
		return
	}

	// public-safe fields only: no phone, address or IP in the debug view
	subs := make([]debugSubmission, 0, len(recent))
	for _, a := range recent {
		subs = append(subs, debugSubmission{
			ID:          a.ID,
			FirstName:   a.FirstName,
			LastName:    a.LastName,
			Email:       a.Email,
			Source:      string(a.Source),
			SubmittedAt: time.UnixMilli(a.SubmittedAt).UTC().Format(time.RFC3339),
			Resume:      a.ResumeFilename != "",
		})
	}

	writeJSON(w, map[string]any{
		"recent_submissions": subs,
		"total_count":        total,
	}, http.StatusOK)
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	database := "healthy"
	if err := h.repo.Ping(r.Context()); err != nil {
		database = fmt.Sprintf("error: %v", err)
	}

	writeJSON(w, map[string]any{
		"status":        "ok",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"database":      database,
		"upload_folder": h.uploads.Exists(),
	}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":%q,"buildTime":%q}`, version, buildTime)
	}
}
