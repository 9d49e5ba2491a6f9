package repository

import (
	"context"
	"errors"

	"github.com/becketto/xscheduler/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotaRepository interface {
	// Creates the month's record with count 1, or atomically increments it.
	Increment(ctx context.Context, monthYear string) (*domain.QuotaRecord, error)
	// Returns 0 when the month has no record yet.
	GetUsage(ctx context.Context, monthYear string) (int, error)
}

type quotaRepository struct {
	db *pgxpool.Pool
}

func NewQuotaRepository(db *pgxpool.Pool) QuotaRepository {
	return &quotaRepository{db: db}
}

func (r *quotaRepository) Increment(ctx context.Context, monthYear string) (*domain.QuotaRecord, error) {
	sql := `
        INSERT INTO api_usage (month_year, posts_used)
        VALUES ($1, 1)
        ON CONFLICT (month_year) DO UPDATE
        SET posts_used = api_usage.posts_used + 1
        RETURNING month_year, posts_used`

	var record domain.QuotaRecord
	err := r.db.QueryRow(ctx, sql, monthYear).Scan(&record.MonthYear, &record.PostsUsed)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *quotaRepository) GetUsage(ctx context.Context, monthYear string) (int, error) {
	sql := `SELECT posts_used FROM api_usage WHERE month_year = $1`

	var used int
	err := r.db.QueryRow(ctx, sql, monthYear).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return used, err
}
