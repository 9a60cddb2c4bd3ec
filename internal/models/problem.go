package models

import "time"

// Problem is one puzzle in the catalog. Problems are seeded at startup and
// treated as read-only afterwards.
type Problem struct {
	ProblemID   int    // Positive, unique across the catalog
	Title       string
	Description string // HTML fragment presented to the user
	URL         string // Where the puzzle was sourced from
	License     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
