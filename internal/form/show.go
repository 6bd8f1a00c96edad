package form

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// startTimeLayouts are tried in order; zone-less values are read as UTC.
var startTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Show is the show listing form.  Ids are accepted as JSON numbers or
// numeric strings.
type Show struct {
	ArtistID  json.Number `json:"artist_id" form:"artist_id"`
	VenueID   json.Number `json:"venue_id" form:"venue_id"`
	StartTime string      `json:"start_time" form:"start_time"`
}

// Validate trims the form and converts it into a show.
func (f *Show) Validate() (model.Show, error) {
	errs := Errors{}
	var s model.Show

	s.ArtistID = parseID(errs, "artist_id", string(f.ArtistID))
	s.VenueID = parseID(errs, "venue_id", string(f.VenueID))

	f.StartTime = strings.TrimSpace(f.StartTime)
	if f.StartTime == "" {
		errs.Add("start_time", msgRequired)
	} else if t, ok := parseStartTime(f.StartTime); ok {
		s.StartTime = t
	} else {
		errs.Add("start_time", "Not a valid datetime value.")
	}

	if err := errs.Err(); err != nil {
		return model.Show{}, err
	}
	return s, nil
}

func parseID(errs Errors, field, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.Add(field, msgRequired)
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		errs.Add(field, "Not a valid id.")
		return 0
	}
	return id
}

func parseStartTime(raw string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
