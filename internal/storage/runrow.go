package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	OutputPath string    `json:"output_path,omitempty"`
	Encoding   string    `json:"encoding,omitempty"`
	Rules      int       `json:"rules"`
}
