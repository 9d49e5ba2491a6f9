package domain

import "time"

// DispatchLockID is the singleton lease row guarding dispatch runs.
const DispatchLockID = "post-dispatcher"

// Lock is a lease held for the duration of a dispatch run. ExpiresAt lets a
// later run reclaim the lease if the holder crashed without releasing it.
type Lock struct {
	ID         string    `json:"id" db:"id"`
	AcquiredAt time.Time `json:"acquired_at" db:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
}
