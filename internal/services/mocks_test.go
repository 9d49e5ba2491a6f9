package services

import (
	"context"
	"time"

	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/xapi"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, posts []*domain.Post) error {
	args := m.Called(ctx, posts)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Post, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) ListDue(ctx context.Context, limit int) ([]domain.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepository) LastPendingScheduledFor(ctx context.Context, accountID int64) (time.Time, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockPostRepository) ClaimForProcessing(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) MarkCompleted(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

func (m *MockPostRepository) FailPendingForAccount(ctx context.Context, accountID int64, errMsg string) (int64, error) {
	args := m.Called(ctx, accountID, errMsg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ClearCompleted(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ResetStuckProcessing(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockCredentialRepository is a mock implementation of repository.CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) Get(ctx context.Context, accountID int64) (*domain.Credential, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

// MockQuotaRepository is a mock implementation of repository.QuotaRepository
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) Increment(ctx context.Context, monthYear string) (*domain.QuotaRecord, error) {
	args := m.Called(ctx, monthYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuotaRecord), args.Error(1)
}

func (m *MockQuotaRepository) GetUsage(ctx context.Context, monthYear string) (int, error) {
	args := m.Called(ctx, monthYear)
	return args.Int(0), args.Error(1)
}

// MockLockRepository is a mock implementation of repository.LockRepository
type MockLockRepository struct {
	mock.Mock
}

func (m *MockLockRepository) Acquire(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockRepository) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostCache is a mock implementation of cache.PostCache
type MockPostCache struct {
	mock.Mock
}

func (m *MockPostCache) AddCompletedPost(ctx context.Context, accountID, postID int64, completedAt time.Time) error {
	args := m.Called(ctx, accountID, postID, completedAt)
	return args.Error(0)
}

func (m *MockPostCache) GetCompletedPostIDs(ctx context.Context, accountID int64, page int, pageSize int) ([]int64, int64, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]int64), args.Get(1).(int64), args.Error(2)
}

// MockTokenClient is a mock implementation of TokenClient
type MockTokenClient struct {
	mock.Mock
}

func (m *MockTokenClient) RefreshToken(ctx context.Context, refreshToken string) (*xapi.TokenSet, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xapi.TokenSet), args.Error(1)
}

func (m *MockTokenClient) ExchangeCode(ctx context.Context, code, codeVerifier, redirectURI string) (*xapi.TokenSet, error) {
	args := m.Called(ctx, code, codeVerifier, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*xapi.TokenSet), args.Error(1)
}

// MockPublisher is a mock implementation of PostPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPost(ctx context.Context, accessToken, text string) error {
	args := m.Called(ctx, accessToken, text)
	return args.Error(0)
}

// MockCredentialService is a mock implementation of CredentialService
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) GetValidToken(ctx context.Context, accountID int64) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialService) Connect(ctx context.Context, accountID int64, code, codeVerifier, redirectURI string) (*domain.Credential, error) {
	args := m.Called(ctx, accountID, code, codeVerifier, redirectURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
