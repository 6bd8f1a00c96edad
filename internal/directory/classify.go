// Package directory shapes stored venues, artists and shows into the views
// browsed by users: per-entity past/upcoming show lists, venues grouped by
// area, and name search results.
package directory

import "time"

// Timing says whether a show is still ahead of a reference instant.
type Timing int

const (
	Past Timing = iota
	Upcoming
)

func (t Timing) String() string {
	if t == Upcoming {
		return "upcoming"
	}
	return "past"
}

// Classify reports Upcoming when start is at or after ref.  A show
// starting exactly at ref is upcoming.
func Classify(start, ref time.Time) Timing {
	if start.Before(ref) {
		return Past
	}
	return Upcoming
}

// timeLayout is the wire format for show start times: UTC, microseconds,
// literal Z.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in the wire format used by every show listing.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
