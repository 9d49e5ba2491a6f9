package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/becketto/xscheduler/internal/cache"
	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/repository"
	"github.com/becketto/xscheduler/internal/types"
)

// PostPublisher is the slice of the X API used by the dispatcher.
type PostPublisher interface {
	PublishPost(ctx context.Context, accessToken, text string) error
}

type DispatchService interface {
	// Executes one dispatch run: acquire the lease, publish due posts
	// sequentially, release the lease. A held lease makes the run a no-op.
	RunOnce(ctx context.Context) error
}

type dispatchService struct {
	posts       repository.PostRepository
	quota       repository.QuotaRepository
	locks       repository.LockRepository
	credentials CredentialService
	cache       cache.PostCache
	publisher   PostPublisher
	batchLimit  int
	quotaCap    int
	lockTTL     time.Duration
}

func NewDispatchService(
	posts repository.PostRepository,
	quota repository.QuotaRepository,
	locks repository.LockRepository,
	credentials CredentialService,
	postCache cache.PostCache,
	publisher PostPublisher,
	batchLimit int,
	quotaCap int,
	lockTTL time.Duration,
) DispatchService {
	return &dispatchService{
		posts:       posts,
		quota:       quota,
		locks:       locks,
		credentials: credentials,
		cache:       postCache,
		publisher:   publisher,
		batchLimit:  batchLimit,
		quotaCap:    quotaCap,
		lockTTL:     lockTTL,
	}
}

func (s *dispatchService) RunOnce(ctx context.Context) error {
	acquired, err := s.locks.Acquire(ctx, domain.DispatchLockID, s.lockTTL)
	if err != nil {
		return fmt.Errorf("unexpected error while acquiring dispatch lock: %w", err)
	}
	if !acquired {
		log.Println("Another dispatch run is in progress, skipping")
		return nil
	}

	defer func() {
		// Release must survive a cancelled request context or the lease
		// leaks until its TTL passes.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.locks.Release(releaseCtx, domain.DispatchLockID); err != nil {
			log.Printf("Failed to release dispatch lock: %v", err)
		}
	}()

	// Posts stuck in processing from a crashed run get another chance once
	// the crashed holder's lease window has passed.
	if resetCount, err := s.posts.ResetStuckProcessing(ctx, time.Now().Add(-s.lockTTL)); err != nil {
		log.Printf("Failed to reset stuck processing posts: %v", err)
	} else if resetCount > 0 {
		log.Printf("Reset %d stuck processing posts", resetCount)
	}

	monthYear := domain.MonthKey(time.Now())
	used, err := s.quota.GetUsage(ctx, monthYear)
	if err != nil {
		return fmt.Errorf("unexpected error while reading quota usage: %w", err)
	}
	remaining := s.quotaCap - used
	if remaining <= 0 {
		log.Printf("Monthly post quota exhausted (%d/%d), skipping dispatch", used, s.quotaCap)
		return nil
	}

	duePosts, err := s.posts.ListDue(ctx, s.batchLimit)
	if err != nil {
		return fmt.Errorf("unexpected error while listing due posts: %w", err)
	}
	if len(duePosts) == 0 {
		return nil
	}

	log.Printf("Dispatching %d due posts", len(duePosts))

	// Strictly sequential: per-account order, fail-fast and quota counting
	// all assume a single logical writer within the run.
	for _, post := range duePosts {
		if remaining <= 0 {
			log.Printf("Monthly post quota reached (%d), leaving the rest of the batch pending", s.quotaCap)
			break
		}

		published, err := s.dispatchPost(ctx, &post)
		if err != nil {
			if types.KindOf(err) == types.CredentialExpired {
				s.failAccountBatch(ctx, &post)
				// All later posts of this account would fail identically.
				break
			}
			log.Printf("Failed to publish post %d: %v", post.ID, err)
			if markErr := s.posts.MarkFailed(ctx, post.ID, err.Error()); markErr != nil {
				log.Printf("Failed to mark post %d as failed: %v", post.ID, markErr)
			}
			continue
		}

		if published {
			remaining--
		}
	}

	return nil
}

// dispatchPost publishes a single due post. It reports whether a publish
// call succeeded so the caller can keep quota accounting exact; a false
// return with nil error means the post was claimed already and skipped.
func (s *dispatchService) dispatchPost(ctx context.Context, post *domain.Post) (bool, error) {
	accessToken, err := s.credentials.GetValidToken(ctx, post.AccountID)
	if err != nil {
		return false, err
	}

	// Claiming flips the post to processing so a fault mid-call can never
	// lead to a second send.
	if _, err := s.posts.ClaimForProcessing(ctx, post.ID); err != nil {
		if errors.Is(err, types.ErrNoRows) {
			log.Printf("Post %d already claimed, skipping", post.ID)
			return false, nil
		}
		return false, err
	}

	if err := s.publisher.PublishPost(ctx, accessToken, post.Content); err != nil {
		return false, err
	}

	if err := s.posts.MarkCompleted(ctx, post.ID); err != nil {
		return true, fmt.Errorf("post %d published but could not be marked completed: %w", post.ID, err)
	}

	completedAt := time.Now()
	if _, err := s.quota.Increment(ctx, domain.MonthKey(completedAt)); err != nil {
		log.Printf("Failed to increment quota for post %d: %v", post.ID, err)
	}

	go s.cacheCompletedPost(post.AccountID, post.ID, completedAt)

	log.Printf("Post %d published successfully", post.ID)
	return true, nil
}

// failAccountBatch marks the current post and every other pending post of
// the same account as failed with the reconnect message.
func (s *dispatchService) failAccountBatch(ctx context.Context, post *domain.Post) {
	log.Printf("Credentials expired for account %d, failing its pending posts", post.AccountID)

	if err := s.posts.MarkFailed(ctx, post.ID, domain.ReauthorizeMessage); err != nil {
		log.Printf("Failed to mark post %d as failed: %v", post.ID, err)
	}

	failedCount, err := s.posts.FailPendingForAccount(ctx, post.AccountID, domain.ReauthorizeMessage)
	if err != nil {
		log.Printf("Failed to fail pending posts for account %d: %v", post.AccountID, err)
		return
	}
	log.Printf("Marked %d pending posts as failed for account %d", failedCount, post.AccountID)
}

func (s *dispatchService) cacheCompletedPost(accountID, postID int64, completedAt time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cache.AddCompletedPost(ctx, accountID, postID, completedAt); err != nil {
		log.Printf("Failed to cache completed post %d: %v", postID, err)
	}
}
