package domain

import "time"

// AuditEvent is a fact emitted to the audit side-channel after a business write.
type AuditEvent struct {
	EventID    string         `json:"eventID"`
	TenantID   string         `json:"tenantID"`
	ActorID    string         `json:"actorID"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Action     string         `json:"action"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// DeadLetter is an audit event whose delivery exhausted its retries.
type DeadLetter struct {
	Event         AuditEvent
	Attempts      int
	LastError     string
	FirstFailedAt time.Time
	LastFailedAt  time.Time
}
