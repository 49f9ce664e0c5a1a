package models

import "time"

// Rule match semantics.
const (
	MatchContains = "contains"
	MatchExact    = "exact"
	MatchRegex    = "regex"
)

// Rule assigns a category to transactions whose normalized description
// matches its pattern. The engine evaluates rules sorted by priority DESC,
// id ASC and stops at the first match; rules themselves are immutable to
// the engine and edited only through CRUD.
type Rule struct {
	ID         int64     `db:"id"`
	Pattern    string    `db:"pattern"`
	MatchType  string    `db:"match_type"`
	CategoryID int64     `db:"category_id"`
	Priority   int       `db:"priority"` // higher = evaluated first
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}
