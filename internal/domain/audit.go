package domain

import "time"

// AuditEntry records an admin override or withdrawal for later review.
type AuditEntry struct {
	ID         int64          `json:"id"`
	ActorID    int64          `json:"actorID"`
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entityID"`
	Meta       map[string]any `json:"meta"`
	OccurredAt time.Time      `json:"occurredAt"`
}
