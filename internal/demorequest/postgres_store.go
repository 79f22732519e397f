package demorequest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore persists demo requests in the demo_requests table.
type PostgresStore struct {
	pool pgExecutor
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("demorequest: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

func newPostgresStoreWithExec(exec pgExecutor) *PostgresStore {
	if exec == nil {
		panic("demorequest: exec required")
	}
	return &PostgresStore{pool: exec}
}

// Append inserts a row.
func (s *PostgresStore) Append(ctx context.Context, rec StoredRequest) error {
	query := `
		INSERT INTO demo_requests (
			id, company_name, industry, company_size, website,
			full_name, job_title, email, phone,
			use_case, challenges, timeline,
			preferred_date, preferred_time, additional_notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	if _, err := s.pool.Exec(ctx, query,
		rec.ID,
		rec.CompanyName,
		rec.Industry,
		rec.CompanySize,
		rec.Website,
		rec.FullName,
		rec.JobTitle,
		rec.Email,
		rec.Phone,
		rec.UseCase,
		rec.Challenges,
		rec.Timeline,
		rec.PreferredDate,
		rec.PreferredTime,
		rec.AdditionalNotes,
		rec.CreatedAt,
	); err != nil {
		return fmt.Errorf("demorequest: insert failed: %w", err)
	}
	return nil
}

// List returns all rows in submission order.
func (s *PostgresStore) List(ctx context.Context) ([]StoredRequest, error) {
	query := `
		SELECT id, company_name, industry, company_size, website,
			full_name, job_title, email, phone,
			use_case, challenges, timeline,
			preferred_date, preferred_time, additional_notes, created_at
		FROM demo_requests
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("demorequest: select failed: %w", err)
	}
	defer rows.Close()

	var out []StoredRequest
	for rows.Next() {
		var rec StoredRequest
		var createdAt time.Time
		if err := rows.Scan(
			&rec.ID,
			&rec.CompanyName,
			&rec.Industry,
			&rec.CompanySize,
			&rec.Website,
			&rec.FullName,
			&rec.JobTitle,
			&rec.Email,
			&rec.Phone,
			&rec.UseCase,
			&rec.Challenges,
			&rec.Timeline,
			&rec.PreferredDate,
			&rec.PreferredTime,
			&rec.AdditionalNotes,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("demorequest: scan failed: %w", err)
		}
		rec.CreatedAt = createdAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("demorequest: rows: %w", err)
	}
	return out, nil
}
