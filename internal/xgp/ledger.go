package xgp

import "time"

// Import operation outcomes recorded in the ledger.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ImportRecord is one row of the import history ledger.
type ImportRecord struct {
	ID         int64
	SaveName   string
	Source     string
	Store      string
	Containers int
	Status     string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Ledger persists the history of import operations.
type Ledger interface {
	// Record appends a finished operation and fills in its ID.
	Record(rec *ImportRecord) error

	// List returns the most recent operations, newest first.
	List(limit int) ([]*ImportRecord, error)

	Close() error
}
