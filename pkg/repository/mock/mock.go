package mock

import (
	"context"
	"time"

	"github.com/taskify/intake/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	ApplicantRepo *mockApplicantRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		ApplicantRepo: &mockApplicantRepo{},
	}
}

type mockApplicantRepo struct {
	Stored    []models.Applicant
	CreateErr error
	PingErr   error
}

func (m *mockApplicantRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	if a.Source == "" {
		a.Source = models.SourceDirect
	}
	a.ID = int64(len(m.Stored) + 1)
	a.SubmittedAt = time.Now().UTC().UnixMilli()
	m.Stored = append(m.Stored, *a)
	return a.ID, nil
}

func (m *mockApplicantRepo) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	out := make([]models.Applicant, 0, len(m.Stored))
	for i := len(m.Stored) - 1; i >= 0; i-- {
		out = append(out, m.Stored[i])
	}
	return out, nil
}

func (m *mockApplicantRepo) CountApplicants(ctx context.Context, source models.Source) (int64, error) {
	if source == "" {
		return int64(len(m.Stored)), nil
	}
	var n int64
	for _, a := range m.Stored {
		if a.Source == source {
			n++
		}
	}
	return n, nil
}

func (m *mockApplicantRepo) RecentApplicants(ctx context.Context, n int) ([]models.Applicant, error) {
	all, _ := m.ListApplicants(ctx)
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (m *mockApplicantRepo) Ping(ctx context.Context) error {
	return m.PingErr
}
