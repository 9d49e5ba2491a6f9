package repository

import (
	"context"
	"errors"
	"time"

	"github.com/becketto/xscheduler/internal/domain"
	"github.com/becketto/xscheduler/internal/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepository interface {
	// Inserts the posts in order, filling in IDs and timestamps.
	Create(ctx context.Context, posts []*domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	// Pending, non-deleted posts for the account, earliest first.
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Post, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error)
	// Pending, non-deleted posts whose scheduled time has passed, earliest
	// first, capped at limit.
	ListDue(ctx context.Context, limit int) ([]domain.Post, error)
	// Scheduled time of the account's latest pending post, or zero time.
	LastPendingScheduledFor(ctx context.Context, accountID int64) (time.Time, error)
	// Sets the post to processing iff it is still pending. Returns
	// types.ErrNoRows if another run claimed it first.
	ClaimForProcessing(ctx context.Context, id int64) (*domain.Post, error)
	MarkCompleted(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	// Fails every pending, non-deleted post of the account in one update.
	FailPendingForAccount(ctx context.Context, accountID int64, errMsg string) (int64, error)
	Delete(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
	ClearCompleted(ctx context.Context, accountID int64) (int64, error)
	// Resets processing posts stuck longer than the cutoff back to pending.
	ResetStuckProcessing(ctx context.Context, olderThan time.Time) (int64, error)
}

type postRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, account_id, content, scheduled_for, status, error, is_deleted, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.AccountID, &p.Content, &p.ScheduledFor, &p.Status, &p.Error, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Content, &p.ScheduledFor, &p.Status, &p.Error, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func (r *postRepository) Create(ctx context.Context, posts []*domain.Post) error {
	sql := `
        INSERT INTO posts (account_id, content, scheduled_for, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	for _, post := range posts {
		err := r.db.QueryRow(ctx, sql, post.AccountID, post.Content, post.ScheduledFor, post.Status).Scan(
			&post.ID,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	return post, err
}

func (r *postRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Post, error) {
	sql := `SELECT ` + postColumns + `
             FROM posts
             WHERE account_id = $1 AND is_deleted = FALSE
             ORDER BY scheduled_for ASC`

	rows, err := r.db.Query(ctx, sql, accountID)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return []domain.Post{}, nil
	}

	sql := `SELECT ` + postColumns + ` FROM posts WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	// Preserve the caller's ID order.
	postsByID := make(map[int64]domain.Post, len(posts))
	for _, p := range posts {
		postsByID[p.ID] = p
	}
	result := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := postsByID[id]; ok {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *postRepository) ListDue(ctx context.Context, limit int) ([]domain.Post, error) {
	sql := `SELECT ` + postColumns + `
             FROM posts
             WHERE status = $1 AND scheduled_for <= NOW() AND is_deleted = FALSE
             ORDER BY scheduled_for ASC
             LIMIT $2`

	rows, err := r.db.Query(ctx, sql, domain.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

func (r *postRepository) LastPendingScheduledFor(ctx context.Context, accountID int64) (time.Time, error) {
	sql := `SELECT scheduled_for
             FROM posts
             WHERE account_id = $1 AND status = $2 AND is_deleted = FALSE
             ORDER BY scheduled_for DESC
             LIMIT 1`

	var scheduledFor time.Time
	err := r.db.QueryRow(ctx, sql, accountID, domain.StatusPending).Scan(&scheduledFor)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	return scheduledFor, err
}

func (r *postRepository) ClaimForProcessing(ctx context.Context, id int64) (*domain.Post, error) {
	sql := `
        UPDATE posts
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
        RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, sql, domain.StatusProcessing, id, domain.StatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNoRows
	}
	return post, err
}

func (r *postRepository) MarkCompleted(ctx context.Context, id int64) error {
	return r.updateStatus(ctx, id, domain.StatusCompleted, "")
}

func (r *postRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return r.updateStatus(ctx, id, domain.StatusFailed, errMsg)
}

func (r *postRepository) updateStatus(ctx context.Context, id int64, status domain.PostStatus, errMsg string) error {
	sql := `UPDATE posts
			SET status = $1, error = $2, updated_at = NOW()
			WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, sql, status, errMsg, id)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	return nil
}

func (r *postRepository) FailPendingForAccount(ctx context.Context, accountID int64, errMsg string) (int64, error) {
	sql := `UPDATE posts
			SET status = $1, error = $2, updated_at = NOW()
			WHERE account_id = $3 AND status = $4 AND is_deleted = FALSE`

	cmdTag, err := r.db.Exec(ctx, sql, domain.StatusFailed, errMsg, accountID, domain.StatusPending)
	if err != nil {
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id int64) error {
	sql := `UPDATE posts
			SET is_deleted = TRUE, updated_at = NOW()
			WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	return nil
}

func (r *postRepository) ClearCompleted(ctx context.Context, accountID int64) (int64, error) {
	sql := `UPDATE posts
			SET is_deleted = TRUE, updated_at = NOW()
			WHERE account_id = $1 AND status = $2 AND is_deleted = FALSE`

	cmdTag, err := r.db.Exec(ctx, sql, accountID, domain.StatusCompleted)
	if err != nil {
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}

func (r *postRepository) ResetStuckProcessing(ctx context.Context, olderThan time.Time) (int64, error) {
	sql := `UPDATE posts
			SET status = $1, updated_at = NOW()
			WHERE status = $2 AND updated_at < $3`

	cmdTag, err := r.db.Exec(ctx, sql, domain.StatusPending, domain.StatusProcessing, olderThan)
	if err != nil {
		return 0, err
	}

	return cmdTag.RowsAffected(), nil
}
