package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LockRepository implements dispatch mutual exclusion through a singleton
// lease row. Acquire either inserts the row or steals it when the previous
// holder's lease has expired (a crashed run never released it).
type LockRepository interface {
	Acquire(ctx context.Context, id string, ttl time.Duration) (bool, error)
	// Idempotent; releasing an absent lock is not an error.
	Release(ctx context.Context, id string) error
}

type lockRepository struct {
	db *pgxpool.Pool
}

func NewLockRepository(db *pgxpool.Pool) LockRepository {
	return &lockRepository{db: db}
}

func (r *lockRepository) Acquire(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	// The conditional DO UPDATE only fires for an expired lease, so exactly
	// one caller gets a row back; everyone else sees no rows.
	sql := `
        INSERT INTO locks (id, acquired_at, expires_at)
        VALUES ($1, NOW(), NOW() + make_interval(secs => $2))
        ON CONFLICT (id) DO UPDATE
        SET acquired_at = NOW(), expires_at = NOW() + make_interval(secs => $2)
        WHERE locks.expires_at <= NOW()
        RETURNING id`

	var acquired string
	err := r.db.QueryRow(ctx, sql, id, ttl.Seconds()).Scan(&acquired)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *lockRepository) Release(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM locks WHERE id = $1`, id)
	return err
}
