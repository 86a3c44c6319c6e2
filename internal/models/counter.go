package models

import "time"

// DocumentCounter holds the last issued sequence for one (document kind, fiscal
// year) scope, e.g. "invoice_FY2024_25". Rows are created lazily by the first
// allocation and are only ever mutated by the atomic increment in
// repository.CounterRepository, never read-then-written from application code.
type DocumentCounter struct {
	Scope     string `gorm:"primaryKey"`
	Prefix    string
	Next      int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
