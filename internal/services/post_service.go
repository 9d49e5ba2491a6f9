package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/becketto/xscheduler/internal/cache"
	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/repository"
	"github.com/becketto/xscheduler/internal/types"
)

type QuotaStatus struct {
	MonthYear string `json:"month_year"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type PostService interface {
	// Creates one pending post per line, spaced intervalMinutes apart,
	// starting after both now and the account's latest pending post.
	SchedulePosts(ctx context.Context, accountID int64, lines []string, intervalMinutes int) ([]domain.Post, error)
	// Non-deleted posts for the account, earliest scheduled first.
	ListPosts(ctx context.Context, accountID int64) ([]domain.Post, error)
	// Completed posts newest-first via the cache, hydrated from the repository.
	GetCompletedPosts(ctx context.Context, accountID int64, page, pageSize int) ([]domain.Post, int64, error)
	// Soft-deletes completed posts, hard-deletes pending/failed ones and
	// rejects deleting a post mid-dispatch.
	DeletePost(ctx context.Context, id int64) error
	ClearCompleted(ctx context.Context, accountID int64) (int64, error)
	GetQuotaStatus(ctx context.Context) (*QuotaStatus, error)
}

type postService struct {
	repo      repository.PostRepository
	quotaRepo repository.QuotaRepository
	cache     cache.PostCache
	quotaCap  int
}

func NewPostService(repo repository.PostRepository, quotaRepo repository.QuotaRepository, cache cache.PostCache, quotaCap int) PostService {
	return &postService{repo: repo, quotaRepo: quotaRepo, cache: cache, quotaCap: quotaCap}
}

func (s *postService) SchedulePosts(ctx context.Context, accountID int64, lines []string, intervalMinutes int) ([]domain.Post, error) {
	contents := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			contents = append(contents, trimmed)
		}
	}

	if len(contents) == 0 {
		return nil, types.NewDispatchError(types.Validation, "at least one post is required", nil)
	}
	if intervalMinutes <= 0 {
		return nil, types.NewDispatchError(types.Validation, "interval must be a positive number of minutes", nil)
	}

	interval := time.Duration(intervalMinutes) * time.Minute

	lastPending, err := s.repo.LastPendingScheduledFor(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("unexpected error while reading pending schedule: %w", err)
	}

	// A new batch starts after both now and the account's existing queue, so
	// timestamps stay strictly increasing per account.
	startTime := time.Now().Add(interval)
	if !lastPending.IsZero() && lastPending.Add(interval).After(startTime) {
		startTime = lastPending.Add(interval)
	}

	posts := make([]*domain.Post, len(contents))
	for i, content := range contents {
		posts[i] = &domain.Post{
			AccountID:    accountID,
			Content:      content,
			ScheduledFor: startTime.Add(time.Duration(i) * interval),
			Status:       domain.StatusPending,
		}
	}

	if err := s.repo.Create(ctx, posts); err != nil {
		return nil, fmt.Errorf("unexpected error while saving posts: %w", err)
	}

	created := make([]domain.Post, len(posts))
	for i, p := range posts {
		created[i] = *p
	}
	return created, nil
}

func (s *postService) ListPosts(ctx context.Context, accountID int64) ([]domain.Post, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *postService) GetCompletedPosts(ctx context.Context, accountID int64, page, pageSize int) ([]domain.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	ids, total, err := s.cache.GetCompletedPostIDs(ctx, accountID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return []domain.Post{}, total, nil
	}

	posts, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *postService) DeletePost(ctx context.Context, id int64) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch post.Status {
	case domain.StatusProcessing:
		return types.NewDispatchError(types.Validation, "post is being published and cannot be deleted right now", nil)
	case domain.StatusCompleted:
		// Completed posts are kept for audit.
		return s.repo.SoftDelete(ctx, id)
	default:
		return s.repo.Delete(ctx, id)
	}
}

func (s *postService) ClearCompleted(ctx context.Context, accountID int64) (int64, error) {
	return s.repo.ClearCompleted(ctx, accountID)
}

func (s *postService) GetQuotaStatus(ctx context.Context) (*QuotaStatus, error) {
	monthYear := domain.MonthKey(time.Now())

	used, err := s.quotaRepo.GetUsage(ctx, monthYear)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	remaining := s.quotaCap - used
	if remaining < 0 {
		remaining = 0
	}

	return &QuotaStatus{MonthYear: monthYear, Used: used, Remaining: remaining}, nil
}
