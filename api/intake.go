package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"log/slog"

	"github.com/qri-io/jsonschema"

	"github.com/taskify/intake/pkg/models"
	"github.com/taskify/intake/pkg/repository"
)

//go:embed schema/application.json
var applicationSchemaJSON []byte

// IntakeHandler accepts machine-client submissions as JSON. The body is
// validated against the embedded application schema before it enters the same
// classify-and-persist pipeline as the HTML form.
type IntakeHandler struct {
	repo   repository.ApplicantRepo
	schema *jsonschema.Schema
}

func NewIntakeHandler(repo repository.ApplicantRepo) (*IntakeHandler, error) {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(applicationSchemaJSON, rs); err != nil {
		return nil, fmt.Errorf("parse application schema: %w", err)
	}

	return &IntakeHandler{repo: repo, schema: rs}, nil
}

type intakeRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	City           string `json:"city"`
	Address        string `json:"address"`
	Position       string `json:"position"`
	AdditionalInfo string `json:"additional_info"`
}

type intakeResponse struct {
	ID int64 `json:"id"`
}

func (h *IntakeHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	keyErrs, err := h.schema.ValidateBytes(r.Context(), body)
	if err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(keyErrs) > 0 {
		http.Error(w, keyErrs[0].Message, http.StatusBadRequest)
		return
	}

	var req intakeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	// same trimmed-required rule as the form pipeline
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Email) == "" {
		http.Error(w, "missing required field", http.StatusBadRequest)
		return
	}

	applicant := &models.Applicant{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Country:        req.Country,
		City:           req.City,
		Address:        req.Address,
		Position:       req.Position,
		AdditionalInfo: req.AdditionalInfo,
		Source:         classifySource(r.UserAgent()),
		IPAddress:      clientIP(r),
	}

	id, err := h.repo.CreateApplicant(r.Context(), applicant)
	if err != nil {
		logger.Error("save applicant", slog.Any("err", err), slog.String("request_id", requestID(r)))
		http.Error(w, "failed to store application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, intakeResponse{ID: id}, http.StatusCreated)
}
