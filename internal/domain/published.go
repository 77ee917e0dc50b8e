package domain

import "time"

// ReportPublished announces that a report artifact was written.
type ReportPublished struct {
	RunID         string    `json:"run_id"`
	Report        string    `json:"report"`
	File          string    `json:"file"`
	GeneratedDate time.Time `json:"generated_date"`
	Bytes         int       `json:"bytes"`
	SHA256        string    `json:"sha256"`
}
