package domain

import "time"

// Credential holds an account's X API tokens. One row per account,
// overwritten on every refresh or reconnect.
type Credential struct {
	AccountID    int64     `json:"account_id" db:"account_id"`
	AccessToken  string    `json:"access_token" db:"access_token"`
	RefreshToken string    `json:"refresh_token" db:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ExpiresWithin reports whether the access token is expired or will expire
// within the given margin.
func (c *Credential) ExpiresWithin(margin time.Duration) bool {
	return !c.ExpiresAt.After(time.Now().Add(margin))
}
