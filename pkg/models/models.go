package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Source labels where a submission came from. The value is derived from the
// User-Agent heuristic at submission time and is analytics metadata only.
type Source string

const (
	SourceDirect Source = "direct"
	SourceBot    Source = "bot"
)

// Applicant is one submitted job application. Rows are insert-only: id and
// submitted_at are assigned exactly once by the store and never change.
type Applicant struct {
	ID             int64  `json:"id" db:"id"`
	FirstName      string `json:"first_name" db:"first_name" validate:"required"`
	LastName       string `json:"last_name" db:"last_name" validate:"required"`
	Email          string `json:"email" db:"email" validate:"required,email"`
	Phone          string `json:"phone,omitempty" db:"phone"`
	Country        string `json:"country,omitempty" db:"country"`
	City           string `json:"city,omitempty" db:"city"`
	Address        string `json:"address,omitempty" db:"address"`
	Position       string `json:"position,omitempty" db:"position"`
	AdditionalInfo string `json:"additional_info,omitempty" db:"additional_info"`
	ResumeFilename string `json:"resume_filename,omitempty" db:"resume_filename"`
	SubmittedAt    int64  `json:"submitted_at" db:"submitted_at"`
	Source         Source `json:"source" db:"source"`
	IPAddress      string `json:"ip_address,omitempty" db:"ip_address"`
}
