package api

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/taskify/intake/pkg/repository"
)

// ExportHandler writes every stored application as CSV, newest first.
type ExportHandler struct {
	repo repository.ApplicantRepo
}

func NewExportHandler(repo repository.ApplicantRepo) *ExportHandler {
	return &ExportHandler{repo: repo}
}

func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.repo.ListApplicants(r.Context())
	if err != nil {
		logger.Error("list applicants", slog.Any("err", err), slog.String("request_id", requestID(r)))
		http.Error(w, "failed to export applications", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.csv"`)

	cw := csv.NewWriter(w)
	header := []string{"id", "first_name", "last_name", "email", "phone", "country", "city", "address", "position", "additional_info", "resume_filename", "submitted_at", "source", "ip_address"}
	if err := cw.Write(header); err != nil {
		logger.Error("write csv header", slog.Any("err", err))
		return
	}

	for _, a := range applicants {
		row := []string{
			strconv.FormatInt(a.ID, 10),
			a.FirstName,
			a.LastName,
			a.Email,
			a.Phone,
			a.Country,
			a.City,
			a.Address,
			a.Position,
			a.AdditionalInfo,
			a.ResumeFilename,
			time.UnixMilli(a.SubmittedAt).UTC().Format(time.RFC3339),
			string(a.Source),
			a.IPAddress,
		}
		if err := cw.Write(row); err != nil {
			logger.Error("write csv row", slog.Any("err", err), slog.Int64("id", a.ID))
			return
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error("flush csv", slog.Any("err", err))
	}
}
