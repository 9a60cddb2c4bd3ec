package models

import "time"

// LeaderboardEntry is one user's standing on a problem's leaderboard. It is
// derived from the attempt ledger on demand and never persisted. Only users
// with at least one successful attempt receive an entry.
type LeaderboardEntry struct {
	UserName                  string
	EarliestSuccessfulAttempt time.Time
	// NumberOfAttempts counts every attempt by the user against the
	// problem, unsuccessful ones included.
	NumberOfAttempts int
}
