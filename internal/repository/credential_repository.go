package repository

import (
	"context"
	"errors"

	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CredentialRepository interface {
	Get(ctx context.Context, accountID int64) (*domain.Credential, error)
	// Inserts or overwrites the account's token set.
	Upsert(ctx context.Context, cred *domain.Credential) error
}

type credentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Get(ctx context.Context, accountID int64) (*domain.Credential, error) {
	sql := `SELECT account_id, access_token, refresh_token, expires_at, updated_at
             FROM credentials WHERE account_id = $1`

	var cred domain.Credential
	err := r.db.QueryRow(ctx, sql, accountID).Scan(
		&cred.AccountID,
		&cred.AccessToken,
		&cred.RefreshToken,
		&cred.ExpiresAt,
		&cred.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

func (r *credentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	sql := `
        INSERT INTO credentials (account_id, access_token, refresh_token, expires_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (account_id) DO UPDATE
        SET access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            expires_at = EXCLUDED.expires_at,
            updated_at = NOW()
        RETURNING updated_at`

	return r.db.QueryRow(ctx, sql, cred.AccountID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt).Scan(&cred.UpdatedAt)
}
