package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const completedPostsKeyPrefix = "completed_posts:"

// PostCache keeps per-account completed post IDs in a sorted set scored by
// completion time, so the completed listing never needs a paginated scan of
// the posts table.
type PostCache interface {
	AddCompletedPost(ctx context.Context, accountID, postID int64, completedAt time.Time) error
	GetCompletedPostIDs(ctx context.Context, accountID int64, page int, pageSize int) ([]int64, int64, error)
}

type redisPostCache struct {
	client *redis.Client
}

func NewPostCache(client *redis.Client) PostCache {
	return &redisPostCache{client: client}
}

func completedPostsKey(accountID int64) string {
	return completedPostsKeyPrefix + strconv.FormatInt(accountID, 10)
}

func (r *redisPostCache) AddCompletedPost(ctx context.Context, accountID, postID int64, completedAt time.Time) error {
	member := redis.Z{
		Score:  float64(completedAt.Unix()),
		Member: strconv.FormatInt(postID, 10),
	}

	if err := r.client.ZAdd(ctx, completedPostsKey(accountID), member).Err(); err != nil {
		return fmt.Errorf("unexpected error while caching completed post: %w", err)
	}
	return nil
}

func (r *redisPostCache) GetCompletedPostIDs(ctx context.Context, accountID int64, page int, pageSize int) ([]int64, int64, error) {
	key := completedPostsKey(accountID)

	total, err := r.client.ZCard(ctx, key).Result()
	if err != nil {
		return nil, 0, err
	}

	start := (page - 1) * pageSize
	stop := start + pageSize - 1

	stringIDs, err := r.client.ZRevRange(ctx, key, int64(start), int64(stop)).Result()
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(stringIDs))
	for i, sID := range stringIDs {
		id, _ := strconv.ParseInt(sID, 10, 64)
		ids[i] = id
	}

	return ids, total, nil
}
