package repository

import (
	"context"

	"github.com/taskify/intake/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type ApplicantRepo interface {
	// CreateApplicant inserts one applicant atomically, assigning id and
	// submitted_at. On error nothing is persisted.
	CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error)
	// ListApplicants returns every applicant, newest first.
	ListApplicants(ctx context.Context) ([]models.Applicant, error)
	// CountApplicants counts all applicants, or only those with the given
	// source when source is non-empty.
	CountApplicants(ctx context.Context, source models.Source) (int64, error)
	// RecentApplicants returns the newest n applicants, newest first.
	RecentApplicants(ctx context.Context, n int) ([]models.Applicant, error)
	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
