package models

import "time"

// Attempt is one user's timestamped submission of a candidate answer to a
// problem. Attempts are append-only: once written they are never updated or
// deleted, and incorrect attempts are retained alongside correct ones.
type Attempt struct {
	ID        string // Store-assigned UUID
	ProblemID int
	UserName  string
	// DateTime is the moment the submission was accepted by the server,
	// captured before validation runs so validator latency is not
	// attributed to the user.
	DateTime          time.Time
	AttemptValue      string // Trimmed candidate answer, stored verbatim
	AttemptSuccessful bool
}
