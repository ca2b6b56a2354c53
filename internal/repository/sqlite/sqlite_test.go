package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	dbembed "github.com/taskify/intake/db"
	dbpkg "github.com/taskify/intake/internal/db"
	"github.com/taskify/intake/internal/repository/sqlite"
	"github.com/taskify/intake/pkg/models"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()

	d, err := dbpkg.New(ctx, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := dbpkg.Migrate(ctx, d, dbembed.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	return sqlite.New(d, nil), func() { d.Close() }
}

func TestCreateApplicant_AssignsIdentityAndTimestamp(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	var lastID, lastSubmitted int64
	for i := 0; i < 3; i++ {
		a := &models.Applicant{
			FirstName: fmt.Sprintf("Jane%d", i),
			LastName:  "Doe",
			Email:     "jane@example.com",
		}
		id, err := repo.CreateApplicant(ctx, a)
		if err != nil {
			t.Fatalf("CreateApplicant: %v", err)
		}
		if id <= lastID {
			t.Fatalf("expected id strictly greater than %d, got %d", lastID, id)
		}
		if a.SubmittedAt < lastSubmitted {
			t.Fatalf("submitted_at went backwards: %d < %d", a.SubmittedAt, lastSubmitted)
		}
		if a.Source != models.SourceDirect {
			t.Fatalf("expected default source direct, got %q", a.Source)
		}
		lastID, lastSubmitted = id, a.SubmittedAt
	}
}

func TestCreateApplicant_Nil(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	if _, err := repo.CreateApplicant(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil applicant")
	}
}

func TestListApplicants_NewestFirst(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a := &models.Applicant{FirstName: fmt.Sprintf("A%d", i), LastName: "B", Email: "a@b.c"}
		if _, err := repo.CreateApplicant(ctx, a); err != nil {
			t.Fatalf("CreateApplicant: %v", err)
		}
	}

	list, err := repo.ListApplicants(ctx)
	if err != nil {
		t.Fatalf("ListApplicants: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 applicants, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID < list[i].ID {
			t.Fatalf("list not newest-first: %d before %d", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCountApplicants_BySource(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for _, src := range []models.Source{models.SourceDirect, models.SourceBot, models.SourceBot} {
		a := &models.Applicant{FirstName: "X", LastName: "Y", Email: "x@y.z", Source: src}
		if _, err := repo.CreateApplicant(ctx, a); err != nil {
			t.Fatalf("CreateApplicant: %v", err)
		}
	}

	total, err := repo.CountApplicants(ctx, "")
	if err != nil {
		t.Fatalf("CountApplicants total: %v", err)
	}
	bots, err := repo.CountApplicants(ctx, models.SourceBot)
	if err != nil {
		t.Fatalf("CountApplicants bot: %v", err)
	}
	direct, err := repo.CountApplicants(ctx, models.SourceDirect)
	if err != nil {
		t.Fatalf("CountApplicants direct: %v", err)
	}

	if total != 3 || bots != 2 || direct != 1 {
		t.Fatalf("unexpected counts total=%d bots=%d direct=%d", total, bots, direct)
	}
	if bots+direct != total {
		t.Fatalf("bot+direct != total: %d+%d != %d", bots, direct, total)
	}
}

func TestRecentApplicants_Cap(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for n := 0; n < 5; n++ {
		a := &models.Applicant{FirstName: "X", LastName: "Y", Email: "x@y.z"}
		if _, err := repo.CreateApplicant(ctx, a); err != nil {
			t.Fatalf("CreateApplicant: %v", err)
		}
	}

	recent, err := repo.RecentApplicants(ctx, 2)
	if err != nil {
		t.Fatalf("RecentApplicants: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent applicants, got %d", len(recent))
	}
	if recent[0].ID < recent[1].ID {
		t.Fatalf("recent not newest-first")
	}
}

func TestResumeFilename_NullRoundTrip(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	withFile := &models.Applicant{FirstName: "F", LastName: "L", Email: "f@l.m", ResumeFilename: "cv.pdf"}
	if _, err := repo.CreateApplicant(ctx, withFile); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}
	without := &models.Applicant{FirstName: "F", LastName: "L", Email: "f@l.m"}
	if _, err := repo.CreateApplicant(ctx, without); err != nil {
		t.Fatalf("CreateApplicant: %v", err)
	}

	list, err := repo.ListApplicants(ctx)
	if err != nil {
		t.Fatalf("ListApplicants: %v", err)
	}
	if list[0].ResumeFilename != "" {
		t.Fatalf("expected empty resume filename, got %q", list[0].ResumeFilename)
	}
	if list[1].ResumeFilename != "cv.pdf" {
		t.Fatalf("expected cv.pdf, got %q", list[1].ResumeFilename)
	}
}

func TestPing(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
