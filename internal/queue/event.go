// Package queue defines message payloads exchanged over the message broker.
package queue

// SavedChangedEvent is published whenever a user saves or removes a
// restaurant. It carries enough context for downstream consumers to log or
// trigger notifications without querying the primary database.
type SavedChangedEvent struct {
	UserID       uint64 `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Action       string `json:"action"` // "saved" or "removed"
	OccurredAt   string `json:"occurred_at"`
}
