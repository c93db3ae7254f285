package models

import (
	"time"

	"github.com/google/uuid"
)

// FailureKind classifies why a single table could not be transferred.
type FailureKind string

const (
	FailureTableNotFound      FailureKind = "table_not_found"
	FailureReassignmentFailed FailureKind = "reassignment_failed"
)

// MigrationRequest names the tables to move between two schemas.
// Tables are processed in input order.
type MigrationRequest struct {
	Destination string   `json:"destination" binding:"required"`
	Source      string   `json:"source"`
	Tables      []string `json:"tables" binding:"required"`
}

type TableFailure struct {
	Table  string      `json:"table"`
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// MigrationReport is the outcome of one migration run. Skipped holds tables
// that were already under the destination schema when the run started, so a
// re-run is distinguishable from a missing table.
type MigrationReport struct {
	RunID       uuid.UUID      `json:"run_id"`
	Destination string         `json:"destination"`
	Source      string         `json:"source"`
	Moved       []string       `json:"moved"`
	Skipped     []string       `json:"skipped"`
	Failed      []TableFailure `json:"failed"`
	Membership  []string       `json:"membership"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

func (r *MigrationReport) Success() bool {
	return len(r.Failed) == 0
}

// MigrationRun is the persisted form of a report, one row per run.
type MigrationRun struct {
	ID          uuid.UUID       `json:"id"`
	Destination string          `json:"destination"`
	Source      string          `json:"source"`
	Report      MigrationReport `json:"report"`
	Success     bool            `json:"success"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}
