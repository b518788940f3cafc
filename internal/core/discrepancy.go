package core

import "time"

// Discrepancy records a stored value that disagreed with a fresh recomputation.
type Discrepancy struct {
	ID          int64     `db:"id" json:"id"`
	Repository  string    `db:"repository" json:"repository"`
	Number      int       `db:"number" json:"number"`
	Field       string    `db:"field" json:"field"`
	StoredValue string    `db:"stored_value" json:"stored_value"`
	FreshValue  string    `db:"fresh_value" json:"fresh_value"`
	DetectedAt  time.Time `db:"detected_at" json:"detected_at"`
}
