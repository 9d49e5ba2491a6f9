package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/repository"
	"github.com/becketto/xscheduler/internal/types"
	"github.com/becketto/xscheduler/internal/xapi"
)

// Access tokens within this margin of expiry are refreshed before use.
const tokenExpiryMargin = 5 * time.Minute

// TokenClient is the slice of the X API used for credential management.
type TokenClient interface {
	RefreshToken(ctx context.Context, refreshToken string) (*xapi.TokenSet, error)
	ExchangeCode(ctx context.Context, code, codeVerifier, redirectURI string) (*xapi.TokenSet, error)
}

type CredentialService interface {
	// Returns an access token valid for at least the expiry margin,
	// refreshing and persisting a new token set when needed. A missing
	// credential, missing refresh token or failed refresh yields a
	// CredentialExpired dispatch error.
	GetValidToken(ctx context.Context, accountID int64) (string, error)
	// Exchanges an authorization code for tokens and stores them,
	// overwriting any previous credential for the account.
	Connect(ctx context.Context, accountID int64, code, codeVerifier, redirectURI string) (*domain.Credential, error)
}

type credentialService struct {
	repo   repository.CredentialRepository
	client TokenClient
}

func NewCredentialService(repo repository.CredentialRepository, client TokenClient) CredentialService {
	return &credentialService{repo: repo, client: client}
}

func (s *credentialService) GetValidToken(ctx context.Context, accountID int64) (string, error) {
	cred, err := s.repo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", types.NewDispatchError(types.CredentialExpired, domain.ReauthorizeMessage, err)
		}
		return "", err
	}

	if !cred.ExpiresWithin(tokenExpiryMargin) {
		return cred.AccessToken, nil
	}

	if cred.RefreshToken == "" {
		return "", types.NewDispatchError(types.CredentialExpired, domain.ReauthorizeMessage, errors.New("refresh token not found and access token is expired"))
	}

	log.Printf("Token for account %d expires soon, refreshing...", accountID)

	tokens, err := s.client.RefreshToken(ctx, cred.RefreshToken)
	if err != nil {
		return "", types.NewDispatchError(types.CredentialExpired, domain.ReauthorizeMessage, err)
	}

	cred.AccessToken = tokens.AccessToken
	cred.RefreshToken = tokens.RefreshToken
	cred.ExpiresAt = tokens.ExpiresAt

	if err := s.repo.Upsert(ctx, cred); err != nil {
		return "", fmt.Errorf("unexpected error while saving refreshed credentials: %w", err)
	}

	return cred.AccessToken, nil
}

func (s *credentialService) Connect(ctx context.Context, accountID int64, code, codeVerifier, redirectURI string) (*domain.Credential, error) {
	if code == "" {
		return nil, types.NewDispatchError(types.Validation, "authorization code is required", nil)
	}

	tokens, err := s.client.ExchangeCode(ctx, code, codeVerifier, redirectURI)
	if err != nil {
		return nil, fmt.Errorf("authorization code exchange failed: %w", err)
	}

	cred := &domain.Credential{
		AccountID:    accountID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}

	if err := s.repo.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("unexpected error while saving credentials: %w", err)
	}

	return cred, nil
}
