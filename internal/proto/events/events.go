// Package events holds the topics, event types and payloads exchanged over
// Kafka by the planner service.
package events

import "time"

// Topics.
const (
	TopicPlannerEvents = "planner.events"
	TopicPlaceEvents   = "place.events"
)

// Event types published on TopicPlannerEvents.
const (
	TransportModeChanged = "planner.transport_mode.changed"
	PlacesReordered      = "planner.places.reordered"
	PlaceToggled         = "planner.place.toggled"
	PlaceAdded           = "planner.place.added"
)

// Event types consumed from TopicPlaceEvents.
const (
	PlaceSaved = "place.saved"
)

// TransportModeChangedEvent is emitted when the selected mode changes.
type TransportModeChangedEvent struct {
	Previous   string    `json:"previous"`
	Current    string    `json:"current"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlacesReorderedEvent carries the identity keys in their new order.
type PlacesReorderedEvent struct {
	From       int       `json:"from"`
	To         int       `json:"to"`
	Order      []string  `json:"order"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlaceToggledEvent is emitted when a place is enabled or disabled.
type PlaceToggledEvent struct {
	PlaceKey   string    `json:"place_key"`
	Enabled    bool      `json:"enabled"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlaceAddedEvent is emitted when a place enters the list.
type PlaceAddedEvent struct {
	PlaceKey      string    `json:"place_key"`
	GooglePlaceID string    `json:"google_place_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PlaceSavedEvent is published by the place service after save_place.
// Place is the raw saved record in any of its accepted shapes.
type PlaceSavedEvent struct {
	GooglePlaceID string                 `json:"google_place_id"`
	Place         map[string]interface{} `json:"place"`
	OccurredAt    time.Time              `json:"occurred_at"`
}
