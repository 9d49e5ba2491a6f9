package domain

import "time"

// QuotaRecord counts successful publications for one calendar month.
// Created lazily on the first publish of the month, never decremented.
type QuotaRecord struct {
	MonthYear string `json:"month_year" db:"month_year"`
	PostsUsed int    `json:"posts_used" db:"posts_used"`
}

// MonthKey formats a time as the quota month key, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
