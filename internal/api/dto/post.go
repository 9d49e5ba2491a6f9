package dto

import "time"

type PostResponse struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	Content      string    `json:"content"`
	ScheduledFor time.Time `json:"scheduled_for"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}

type PostsResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}

type SchedulePostsRequest struct {
	AccountID       int64  `json:"accountId" binding:"required"`
	Posts           string `json:"posts" binding:"required"`
	IntervalMinutes int    `json:"intervalMinutes" binding:"required"`
}

type SchedulePostsResponse struct {
	Posts   []PostResponse `json:"posts"`
	Message string         `json:"message"`
}

type ClearCompletedRequest struct {
	AccountID int64 `json:"accountId" binding:"required"`
}

type ClearCompletedResponse struct {
	Cleared int64 `json:"cleared"`
}

type ConnectAccountRequest struct {
	Code         string `json:"code" binding:"required"`
	CodeVerifier string `json:"codeVerifier"`
	RedirectURI  string `json:"redirectUri"`
}

type ConnectAccountResponse struct {
	AccountID int64     `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type QuotaResponse struct {
	MonthYear string `json:"month_year"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type DispatchJobResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
