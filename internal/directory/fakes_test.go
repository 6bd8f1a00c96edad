package directory

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

var errNotFound = errors.New("not found")

// memStore is an in-memory store implementing VenueStore, ArtistStore and
// ShowStore through the three thin adapters below.
type memStore struct {
	venues  []model.Venue
	artists []model.Artist
	shows   []model.Show
	failAll error
}

func (m *memStore) venue(id int64) (model.Venue, bool) {
	for _, v := range m.venues {
		if v.ID == id {
			return v, true
		}
	}
	return model.Venue{}, false
}

func (m *memStore) artist(id int64) (model.Artist, bool) {
	for _, a := range m.artists {
		if a.ID == id {
			return a, true
		}
	}
	return model.Artist{}, false
}

func (m *memStore) rows(keep func(model.Show) bool) []model.ShowRow {
	var out []model.ShowRow
	for _, s := range m.shows {
		if !keep(s) {
			continue
		}
		v, _ := m.venue(s.VenueID)
		a, _ := m.artist(s.ArtistID)
		out = append(out, model.ShowRow{
			VenueID: v.ID, VenueName: v.Name, VenueImageLink: v.ImageLink,
			ArtistID: a.ID, ArtistName: a.Name, ArtistImageLink: a.ImageLink,
			StartTime: s.StartTime,
		})
	}
	return out
}

type memVenues struct{ *memStore }

func (m memVenues) GetByID(_ context.Context, id int64) (*model.Venue, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	v, ok := m.venue(id)
	if !ok {
		return nil, errNotFound
	}
	return &v, nil
}

func (m memVenues) ListByState(context.Context) ([]model.Venue, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.venues, nil
}

func (m memVenues) SearchByName(_ context.Context, term string) ([]model.Venue, error) {
	var out []model.Venue
	for _, v := range m.venues {
		if MatchesName(v.Name, term) {
			out = append(out, v)
		}
	}
	return out, nil
}

type memArtists struct{ *memStore }

func (m memArtists) GetByID(_ context.Context, id int64) (*model.Artist, error) {
	a, ok := m.artist(id)
	if !ok {
		return nil, errNotFound
	}
	return &a, nil
}

func (m memArtists) ListByName(context.Context) ([]model.Artist, error) { return m.artists, nil }

func (m memArtists) SearchByName(_ context.Context, term string) ([]model.Artist, error) {
	var out []model.Artist
	for _, a := range m.artists {
		if MatchesName(a.Name, term) {
			out = append(out, a)
		}
	}
	return out, nil
}

type memShows struct{ *memStore }

func (m memShows) ListByVenue(_ context.Context, id int64) ([]model.ShowRow, error) {
	return m.rows(func(s model.Show) bool { return s.VenueID == id }), nil
}

func (m memShows) ListByArtist(_ context.Context, id int64) ([]model.ShowRow, error) {
	return m.rows(func(s model.Show) bool { return s.ArtistID == id }), nil
}

func (m memShows) ListAll(context.Context) ([]model.ShowRow, error) {
	return m.rows(func(model.Show) bool { return true }), nil
}

func (m memShows) CountUpcomingByVenue(_ context.Context, ref time.Time) (map[int64]int, error) {
	out := map[int64]int{}
	for _, s := range m.shows {
		if Classify(s.StartTime, ref) == Upcoming {
			out[s.VenueID]++
		}
	}
	return out, nil
}

func (m memShows) CountUpcomingByArtist(_ context.Context, ref time.Time) (map[int64]int, error) {
	out := map[int64]int{}
	for _, s := range m.shows {
		if Classify(s.StartTime, ref) == Upcoming {
			out[s.ArtistID]++
		}
	}
	return out, nil
}

func (m *memStore) reader(now time.Time, calls *int) *Reader {
	return NewReader(memVenues{m}, memArtists{m}, memShows{m}, func() time.Time {
		if calls != nil {
			*calls++
		}
		return now
	})
}
