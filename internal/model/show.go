package model

import "time"

// Show is a booking of one artist at one venue at a specific start time.
// The triple (ArtistID, VenueID, StartTime) is its identity; the same
// artist may play the same venue several times at different times.
// Shows are never updated once created.
type Show struct {
	ArtistID  int64     `db:"artist_id" json:"artist_id"`
	VenueID   int64     `db:"venue_id" json:"venue_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
}

// ShowRow is a show joined with both of its entities.  Repositories
// return it for every show query so callers can pick whichever side they
// need for display.
type ShowRow struct {
	VenueID         int64     `db:"venue_id"`
	VenueName       string    `db:"venue_name"`
	VenueImageLink  string    `db:"venue_image_link"`
	ArtistID        int64     `db:"artist_id"`
	ArtistName      string    `db:"artist_name"`
	ArtistImageLink string    `db:"artist_image_link"`
	StartTime       time.Time `db:"start_time"`
}
