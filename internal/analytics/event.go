package analytics

import "time"

const (
	// TopicURLChanged carries URLChangedEvent payloads.
	TopicURLChanged = "url.changed"
	// TopicURLAccessed carries URLAccessedEvent payloads.
	TopicURLAccessed = "url.accessed"
)

// Action names the kind of change applied to a mapping.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// URLChangedEvent records who created, updated, or deleted a short key.
type URLChangedEvent struct {
	Action    Action    `json:"action"`
	Key       string    `json:"key"`
	Value     string    `json:"value,omitempty"`
	Username  string    `json:"username"`
	ChangedAt time.Time `json:"changedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// URLAccessedEvent represents an event emitted when a short key is resolved.
type URLAccessedEvent struct {
	Key        string    `json:"key"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}
