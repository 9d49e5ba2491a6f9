package domain

import "time"

type PostStatus string

const (
	StatusPending    PostStatus = "pending"
	StatusProcessing PostStatus = "processing"
	StatusCompleted  PostStatus = "completed"
	StatusFailed     PostStatus = "failed"
)

// ReauthorizeMessage is stored on posts that failed because the account's
// tokens could not be refreshed.
const ReauthorizeMessage = "X authorization expired. Please reconnect your X account."

type Post struct {
	ID           int64      `json:"id" db:"id"`
	AccountID    int64      `json:"account_id" db:"account_id"`
	Content      string     `json:"content" db:"content"`
	ScheduledFor time.Time  `json:"scheduled_for" db:"scheduled_for"`
	Status       PostStatus `json:"status" db:"status"`
	Error        string     `json:"error,omitempty" db:"error"`
	IsDeleted    bool       `json:"is_deleted" db:"is_deleted"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
