package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"log/slog"

	"github.com/taskify/intake/pkg/models"
)

const applicantColumns = `id, first_name, last_name, email, phone, country, city, address, position, additional_info, resume_filename, submitted_at, source, ip_address`

// CreateApplicant inserts one row, assigning id and submitted_at. A single
// INSERT is atomic in SQLite, so a failure leaves no partial row behind.
func (r *SQLiteRepo) CreateApplicant(ctx context.Context, a *models.Applicant) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("applicant is nil")
	}
	if a.Source == "" {
		a.Source = models.SourceDirect
	}
	a.SubmittedAt = now()

	res, err := r.conn.Exec(ctx,
		`INSERT INTO applicants (first_name, last_name, email, phone, country, city, address, position, additional_info, resume_filename, submitted_at, source, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.FirstName, a.LastName, a.Email, a.Phone, a.Country, a.City, a.Address, a.Position,
		a.AdditionalInfo, nullable(a.ResumeFilename), a.SubmittedAt, string(a.Source), a.IPAddress)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = id

	r.logger.Info("applicant saved",
		slog.Int64("id", id),
		slog.String("source", string(a.Source)),
	)

	return id, nil
}

// ListApplicants returns every row, newest first.
func (r *SQLiteRepo) ListApplicants(ctx context.Context) ([]models.Applicant, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicantColumns+` FROM applicants ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplicants(rows)
}

// CountApplicants counts all rows, or only rows with the given source when
// source is non-empty.
func (r *SQLiteRepo) CountApplicants(ctx context.Context, source models.Source) (int64, error) {
	var (
		row *sql.Row
		cnt int64
	)
	if source == "" {
		row = r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM applicants`)
	} else {
		row = r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM applicants WHERE source = ?`, string(source))
	}
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

// RecentApplicants returns the newest n rows, newest first.
func (r *SQLiteRepo) RecentApplicants(ctx context.Context, n int) ([]models.Applicant, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicantColumns+` FROM applicants ORDER BY submitted_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanApplicants(rows)
}

// Ping probes store reachability.
func (r *SQLiteRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.conn.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}

func scanApplicants(rows *sql.Rows) ([]models.Applicant, error) {
	var out []models.Applicant
	for rows.Next() {
		var (
			a      models.Applicant
			resume sql.NullString
			source string
		)
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Country,
			&a.City, &a.Address, &a.Position, &a.AdditionalInfo, &resume, &a.SubmittedAt,
			&source, &a.IPAddress); err != nil {
			return nil, err
		}
		if resume.Valid {
			a.ResumeFilename = resume.String
		}
		a.Source = models.Source(source)

		out = append(out, a)
	}

	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
