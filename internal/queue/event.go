// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Listing kinds.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
	KindShow   = "show"
)

// Listing actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ListingEvent is published after a listing change commits.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.  VenueID, ArtistID and StartTime are set for shows.
type ListingEvent struct {
	EventID    string `json:"event_id"`
	Kind       string `json:"kind"`
	Action     string `json:"action"`
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	VenueID    int64  `json:"venue_id,omitempty"`
	ArtistID   int64  `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps a fresh event id and the time of at.
func NewListingEvent(kind, action string, at time.Time) ListingEvent {
	return ListingEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		Action:     action,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
