package models

import "time"

// SeedSummary is what a seed run reports, both on the console and to the
// optional notification queue.
type SeedSummary struct {
	RunId        string           `json:"run_id"`
	Database     string           `json:"database"`
	Collection   string           `json:"collection"`
	Dropped      bool             `json:"dropped"`
	Inserted     int              `json:"inserted"`
	InsertedIds  []string         `json:"inserted_ids"`
	Total        int64            `json:"total"`
	ByReportType map[string]int64 `json:"by_report_type"`
	ByStatus     map[string]int64 `json:"by_status"`
	Samples      []WorkOrder      `json:"samples,omitempty"`
	SeededAt     time.Time        `json:"seeded_at"`
}
