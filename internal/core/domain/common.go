package domain

import "time"

// AuditFields holds the system-assigned timestamps of a domain entity.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
