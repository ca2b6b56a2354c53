package api

import (
	"errors"
	"html/template"
	"net"
	"net/http"
	"strings"

	"log/slog"

	"github.com/taskify/intake/internal/params"
	"github.com/taskify/intake/internal/upload"
	"github.com/taskify/intake/pkg/models"
	"github.com/taskify/intake/pkg/repository"
)

// multipart parts up to this size stay in memory; larger ones spill to disk.
const maxMultipartMemory = 10 << 20

var requiredFields = []string{"first_name", "last_name", "email"}

// FormHandler renders the application form and runs the submission pipeline:
// validate, store the optional resume, classify the source, persist, redirect.
type FormHandler struct {
	repo            repository.ApplicantRepo
	uploads         *upload.Store
	flashes         *FlashStore
	tmpl            *template.Template
	redirectBaseURL string
}

func NewFormHandler(repo repository.ApplicantRepo, uploads *upload.Store, flashes *FlashStore, tmpl *template.Template, redirectBaseURL string) *FormHandler {
	return &FormHandler{
		repo:            repo,
		uploads:         uploads,
		flashes:         flashes,
		tmpl:            tmpl,
		redirectBaseURL: redirectBaseURL,
	}
}

// Show renders the form page with any pending flash messages and the
// preserved campaign parameters embedded in links and the form action.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r, h.flashes.Pop(w, r))
	renderPage(w, h.tmpl, "index.html", data)
}

// Submit processes one application. Every failure path redirects back to the
// form with the campaign parameters re-attached and persists nothing; the
// success path persists exactly one row and redirects to the downstream
// tracking URL with the same parameters.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	preserved := params.FromRequest(r)
	formURL := params.BuildURL("/", preserved, nil)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.flashes.Add(w, r, "error", "File too large. Maximum size is 16MB.")
			http.Redirect(w, r, formURL, http.StatusFound)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			logger.Error("parse form", slog.Any("err", err), slog.String("request_id", requestID(r)))
			h.flashes.Add(w, r, "error", "Error submitting application. Please try again.")
			http.Redirect(w, r, formURL, http.StatusFound)
			return
		}
		// plain form posts without a file part are still acceptable
		if err := r.ParseForm(); err != nil {
			h.flashes.Add(w, r, "error", "Error submitting application. Please try again.")
			http.Redirect(w, r, formURL, http.StatusFound)
			return
		}
	}

	for _, field := range requiredFields {
		if strings.TrimSpace(r.FormValue(field)) == "" {
			h.flashes.Add(w, r, "error", "Missing required field: "+humanizeField(field))
			http.Redirect(w, r, formURL, http.StatusFound)
			return
		}
	}

	var resumeFilename string
	if r.MultipartForm != nil {
		if headers := r.MultipartForm.File["resume"]; len(headers) > 0 {
			fh := headers[0]
			if fh.Filename == "" {
				h.flashes.Add(w, r, "error", "No selected file")
				http.Redirect(w, r, formURL, http.StatusFound)
				return
			}

			part, err := fh.Open()
			if err == nil {
				resumeFilename, err = h.uploads.Save(fh.Filename, part)
				part.Close()
			}
			if err != nil {
				logger.Error("store resume", slog.Any("err", err), slog.String("request_id", requestID(r)))
				h.flashes.Add(w, r, "error", "Error submitting application. Please try again.")
				http.Redirect(w, r, formURL, http.StatusFound)
				return
			}
		} else if vs := r.MultipartForm.Value["resume"]; len(vs) > 0 {
			// a file input left empty arrives as a bare part with no filename,
			// which the multipart parser files under Value rather than File
			h.flashes.Add(w, r, "error", "No selected file")
			http.Redirect(w, r, formURL, http.StatusFound)
			return
		}
	}

	applicant := &models.Applicant{
		FirstName:      r.FormValue("first_name"),
		LastName:       r.FormValue("last_name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Country:        r.FormValue("country"),
		City:           r.FormValue("city"),
		Address:        r.FormValue("address"),
		Position:       r.FormValue("position"),
		AdditionalInfo: r.FormValue("additional_info"),
		ResumeFilename: resumeFilename,
		Source:         classifySource(r.UserAgent()),
		IPAddress:      clientIP(r),
	}

	id, err := h.repo.CreateApplicant(r.Context(), applicant)
	if err != nil {
		logger.Error("save applicant", slog.Any("err", err), slog.String("request_id", requestID(r)))
		h.flashes.Add(w, r, "error", "Error submitting application. Please try again.")
		http.Redirect(w, r, formURL, http.StatusFound)
		return
	}

	logger.Info("application submitted",
		slog.Int64("id", id),
		slog.String("source", string(applicant.Source)),
		slog.String("request_id", requestID(r)),
	)

	h.flashes.Add(w, r, "success", "Application submitted successfully!")
	http.Redirect(w, r, params.BuildURL(h.redirectBaseURL, preserved, nil), http.StatusFound)
}

// classifySource applies the User-Agent heuristic: anything mentioning
// "python" or "requests" counts as a bot. Analytics only, not a security
// control, and trivially spoofable.
func classifySource(userAgent string) models.Source {
	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "python") || strings.Contains(ua, "requests") {
		return models.SourceBot
	}
	return models.SourceDirect
}

// clientIP prefers the X-Real-IP header set by the fronting proxy, falling
// back to the connection's remote address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// humanizeField turns a form field name into its label, e.g. "first_name"
// becomes "First Name".
func humanizeField(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
