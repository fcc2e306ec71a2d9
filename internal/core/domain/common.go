package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedAt doubles as the tie-breaker for same-day chronological ordering
// in running-balance, aging, and costing folds.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
