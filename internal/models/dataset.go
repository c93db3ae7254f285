package models

import "time"

// DatasetSpec points a CSV file at its warehouse table.
type DatasetSpec struct {
	Path  string `json:"path"`
	Table string `json:"table"`
}

type DatasetFailure struct {
	Table  string `json:"table"`
	Reason string `json:"reason"`
}

// RefreshReport is the outcome of loading a dataset manifest.
type RefreshReport struct {
	Loaded     []string         `json:"loaded"`
	Failed     []DatasetFailure `json:"failed"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

func (r *RefreshReport) Success() bool {
	return len(r.Failed) == 0
}
