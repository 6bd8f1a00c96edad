package directory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// VenueStore is the venue side of the entity store.
type VenueStore interface {
	GetByID(ctx context.Context, id int64) (*model.Venue, error)
	ListByState(ctx context.Context) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]model.Venue, error)
}

// ArtistStore is the artist side of the entity store.
type ArtistStore interface {
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	ListByName(ctx context.Context) ([]model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]model.Artist, error)
}

// ShowStore returns shows joined with both entities, ordered by start time.
type ShowStore interface {
	ListByVenue(ctx context.Context, venueID int64) ([]model.ShowRow, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.ShowRow, error)
	ListAll(ctx context.Context) ([]model.ShowRow, error)
	CountUpcomingByVenue(ctx context.Context, ref time.Time) (map[int64]int, error)
	CountUpcomingByArtist(ctx context.Context, ref time.Time) (map[int64]int, error)
}

// ArtistSummary is an artist row in the artist listing.
type ArtistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ShowListing is a row of the global show listing.
type ShowListing struct {
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// Reader answers browse queries against a set of stores.  Every method
// captures the reference time once, so all shows in one answer are
// classified against the same instant.
type Reader struct {
	venues  VenueStore
	artists ArtistStore
	shows   ShowStore
	now     func() time.Time
}

// NewReader builds a Reader.  A nil now defaults to the UTC wall clock.
func NewReader(venues VenueStore, artists ArtistStore, shows ShowStore, now func() time.Time) *Reader {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Reader{venues: venues, artists: artists, shows: shows, now: now}
}

// VenuesByArea lists every venue grouped by (city, state).
func (r *Reader) VenuesByArea(ctx context.Context) ([]Area, error) {
	ref := r.now()
	venues, err := r.venues.ListByState(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	upcoming, err := r.shows.CountUpcomingByVenue(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("count upcoming shows: %w", err)
	}
	return GroupByArea(venues, upcoming), nil
}

// Venue returns the bare venue record.
func (r *Reader) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	v, err := r.venues.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("venue %d: %w", id, err)
	}
	return v, nil
}

// Artist returns the bare artist record.
func (r *Reader) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	a, err := r.artists.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("artist %d: %w", id, err)
	}
	return a, nil
}

// VenueDetail returns a venue with its past and upcoming shows.
func (r *Reader) VenueDetail(ctx context.Context, id int64) (VenueDetail, error) {
	ref := r.now()
	v, err := r.Venue(ctx, id)
	if err != nil {
		return VenueDetail{}, err
	}
	rows, err := r.shows.ListByVenue(ctx, id)
	if err != nil {
		return VenueDetail{}, fmt.Errorf("shows of venue %d: %w", id, err)
	}
	return VenueDetail{Venue: *v, ShowLists: Aggregate(rows, SideArtist, ref)}, nil
}

// ArtistDetail returns an artist with its past and upcoming shows.
func (r *Reader) ArtistDetail(ctx context.Context, id int64) (ArtistDetail, error) {
	ref := r.now()
	a, err := r.Artist(ctx, id)
	if err != nil {
		return ArtistDetail{}, err
	}
	rows, err := r.shows.ListByArtist(ctx, id)
	if err != nil {
		return ArtistDetail{}, fmt.Errorf("shows of artist %d: %w", id, err)
	}
	return ArtistDetail{Artist: *a, ShowLists: Aggregate(rows, SideVenue, ref)}, nil
}

// Artists lists every artist ordered by name.
func (r *Reader) Artists(ctx context.Context) ([]ArtistSummary, error) {
	artists, err := r.artists.ListByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

// Shows lists every show with its venue and artist, earliest first.
func (r *Reader) Shows(ctx context.Context) ([]ShowListing, error) {
	rows, err := r.shows.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	slices.SortStableFunc(rows, func(a, b model.ShowRow) int { return a.StartTime.Compare(b.StartTime) })
	out := make([]ShowListing, 0, len(rows))
	for _, s := range rows {
		out = append(out, ShowListing{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       FormatTime(s.StartTime),
		})
	}
	return out, nil
}

// SearchVenues finds venues whose name contains term, ignoring case.
func (r *Reader) SearchVenues(ctx context.Context, term string) (SearchResult, error) {
	ref := r.now()
	venues, err := r.venues.SearchByName(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search venues: %w", err)
	}
	upcoming, err := r.shows.CountUpcomingByVenue(ctx, ref)
	if err != nil {
		return SearchResult{}, fmt.Errorf("count upcoming shows: %w", err)
	}
	candidates := make([]Match, 0, len(venues))
	for _, v := range venues {
		candidates = append(candidates, Match{ID: v.ID, Name: v.Name, NumUpcomingShows: upcoming[v.ID]})
	}
	return Search(term, candidates), nil
}

// SearchArtists finds artists whose name contains term, ignoring case.
func (r *Reader) SearchArtists(ctx context.Context, term string) (SearchResult, error) {
	ref := r.now()
	artists, err := r.artists.SearchByName(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search artists: %w", err)
	}
	upcoming, err := r.shows.CountUpcomingByArtist(ctx, ref)
	if err != nil {
		return SearchResult{}, fmt.Errorf("count upcoming shows: %w", err)
	}
	candidates := make([]Match, 0, len(artists))
	for _, a := range artists {
		candidates = append(candidates, Match{ID: a.ID, Name: a.Name, NumUpcomingShows: upcoming[a.ID]})
	}
	return Search(term, candidates), nil
}
