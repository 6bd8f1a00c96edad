package directory

import (
	"encoding/json"
	"time"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// Side names the entity shown next to a show.  On a venue page the
// counterpart is the artist and vice versa.
type Side string

const (
	SideArtist Side = "artist"
	SideVenue  Side = "venue"
)

// ShowSummary is one entry of a past or upcoming list.  Its JSON keys are
// prefixed with the counterpart side, e.g. artist_id and artist_name on a
// venue page.
type ShowSummary struct {
	Counterpart          Side
	CounterpartID        int64
	CounterpartName      string
	CounterpartImageLink string
	StartTime            string
}

func (s ShowSummary) MarshalJSON() ([]byte, error) {
	p := string(s.Counterpart)
	return json.Marshal(map[string]any{
		p + "_id":         s.CounterpartID,
		p + "_name":       s.CounterpartName,
		p + "_image_link": s.CounterpartImageLink,
		"start_time":      s.StartTime,
	})
}

// ShowLists partitions an entity's shows around a reference time.
type ShowLists struct {
	PastShows          []ShowSummary `json:"past_shows"`
	UpcomingShows      []ShowSummary `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

// Aggregate classifies every row against ref and appends its summary to
// exactly one of the two lists, keeping the order of rows.
func Aggregate(rows []model.ShowRow, counterpart Side, ref time.Time) ShowLists {
	out := ShowLists{
		PastShows:     []ShowSummary{},
		UpcomingShows: []ShowSummary{},
	}
	for _, row := range rows {
		s := ShowSummary{Counterpart: counterpart, StartTime: FormatTime(row.StartTime)}
		if counterpart == SideArtist {
			s.CounterpartID, s.CounterpartName, s.CounterpartImageLink = row.ArtistID, row.ArtistName, row.ArtistImageLink
		} else {
			s.CounterpartID, s.CounterpartName, s.CounterpartImageLink = row.VenueID, row.VenueName, row.VenueImageLink
		}
		if Classify(row.StartTime, ref) == Upcoming {
			out.UpcomingShows = append(out.UpcomingShows, s)
		} else {
			out.PastShows = append(out.PastShows, s)
		}
	}
	out.PastShowsCount = len(out.PastShows)
	out.UpcomingShowsCount = len(out.UpcomingShows)
	return out
}

// VenueDetail is a venue together with its shows, artists as counterpart.
type VenueDetail struct {
	model.Venue
	ShowLists
}

// ArtistDetail is an artist together with its shows, venues as counterpart.
type ArtistDetail struct {
	model.Artist
	ShowLists
}
