package directory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

var now = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  Timing
	}{
		{"before", now.Add(-time.Nanosecond), Past},
		{"exactly now", now, Upcoming},
		{"after", now.Add(time.Hour), Upcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.start, now))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2024-06-01T20:00:00.000000Z", FormatTime(now))

	est := time.FixedZone("EST", -5*3600)
	assert.Equal(t, "2024-06-01T20:00:00.000000Z", FormatTime(time.Date(2024, 6, 1, 15, 0, 0, 0, est)))
}

func fixture() *memStore {
	return &memStore{
		venues: []model.Venue{
			{ID: 1, Name: "The Musical Hop", City: "SAN FRANCISCO", State: "CA", Genres: model.Genres{"Jazz"}},
			{ID: 2, Name: "The Dueling Pianos Bar", City: "NEW YORK", State: "NY", Genres: model.Genres{"Classical"}},
			{ID: 3, Name: "Park Square Live Music & Coffee", City: "SAN FRANCISCO", State: "CA", Genres: model.Genres{"Folk"}},
		},
		artists: []model.Artist{
			{ID: 4, Name: "Guns N Petals", ImageLink: "gnp.png"},
			{ID: 5, Name: "Matt Quevedo"},
			{ID: 6, Name: "The Wild Sax Band"},
		},
		shows: []model.Show{
			{ArtistID: 4, VenueID: 1, StartTime: now.Add(-48 * time.Hour)},
			{ArtistID: 5, VenueID: 3, StartTime: now.Add(-24 * time.Hour)},
			{ArtistID: 6, VenueID: 3, StartTime: now},
			{ArtistID: 6, VenueID: 3, StartTime: now.Add(24 * time.Hour)},
			{ArtistID: 4, VenueID: 1, StartTime: now.Add(72 * time.Hour)},
		},
	}
}

func TestAggregatePartitionsEveryShow(t *testing.T) {
	store := fixture()
	rows := store.rows(func(s model.Show) bool { return s.VenueID == 3 })

	lists := Aggregate(rows, SideArtist, now)

	assert.Len(t, lists.PastShows, 1)
	assert.Len(t, lists.UpcomingShows, 2)
	assert.Equal(t, len(rows), lists.PastShowsCount+lists.UpcomingShowsCount)

	seen := map[string]bool{}
	for _, s := range append(append([]ShowSummary{}, lists.PastShows...), lists.UpcomingShows...) {
		key := s.StartTime + "/" + s.CounterpartName
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
	assert.Len(t, seen, len(rows))
	assert.Equal(t, "Matt Quevedo", lists.PastShows[0].CounterpartName)
	assert.Equal(t, FormatTime(now), lists.UpcomingShows[0].StartTime)
}

func TestAggregateEmptyListsAreNotNil(t *testing.T) {
	lists := Aggregate(nil, SideVenue, now)
	assert.NotNil(t, lists.PastShows)
	assert.NotNil(t, lists.UpcomingShows)
}

func TestShowSummaryJSONUsesCounterpartKeys(t *testing.T) {
	b, err := json.Marshal(ShowSummary{
		Counterpart:          SideVenue,
		CounterpartID:        1,
		CounterpartName:      "The Musical Hop",
		CounterpartImageLink: "hop.png",
		StartTime:            FormatTime(now),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"venue_id": 1,
		"venue_name": "The Musical Hop",
		"venue_image_link": "hop.png",
		"start_time": "2024-06-01T20:00:00.000000Z"
	}`, string(b))
}

func TestGroupByAreaKeepsFirstEncounterOrder(t *testing.T) {
	venues := []model.Venue{
		{ID: 1, Name: "a", City: "SAN FRANCISCO", State: "CA"},
		{ID: 2, Name: "b", City: "NEW YORK", State: "NY"},
		{ID: 3, Name: "c", City: "SAN FRANCISCO", State: "CA"},
	}

	areas := GroupByArea(venues, map[int64]int{3: 2})

	require.Len(t, areas, 2)
	assert.Equal(t, "SAN FRANCISCO", areas[0].City)
	assert.Equal(t, []int64{1, 3}, []int64{areas[0].Venues[0].ID, areas[0].Venues[1].ID})
	assert.Equal(t, 2, areas[0].Venues[1].NumUpcomingShows)
	assert.Equal(t, 0, areas[0].Venues[0].NumUpcomingShows)
	assert.Equal(t, "NY", areas[1].State)
}

func TestGroupByAreaDoesNotConfuseCommas(t *testing.T) {
	venues := []model.Venue{
		{ID: 1, City: "A,B", State: "C"},
		{ID: 2, City: "A", State: "B,C"},
	}

	areas := GroupByArea(venues, nil)

	require.Len(t, areas, 2)
	assert.Equal(t, "A,B", areas[0].City)
	assert.Equal(t, "B,C", areas[1].State)
}

func TestGroupByAreaPartitionsAllVenues(t *testing.T) {
	venues := fixture().venues
	total := 0
	for _, a := range GroupByArea(venues, nil) {
		for _, v := range a.Venues {
			total++
			for _, orig := range venues {
				if orig.ID == v.ID {
					assert.Equal(t, a.City, orig.City)
					assert.Equal(t, a.State, orig.State)
				}
			}
		}
	}
	assert.Equal(t, len(venues), total)
}

func TestSearch(t *testing.T) {
	candidates := []Match{
		{ID: 1, Name: "The Musical Hop"},
		{ID: 2, Name: "Example"},
		{ID: 3, Name: "Park Square Live Music & Coffee"},
	}

	res := Search("Hop", candidates)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "The Musical Hop", res.Data[0].Name)

	for _, term := range []string{"music", "MUSIC", "Music"} {
		res = Search(term, candidates)
		assert.Equal(t, 2, res.Count, term)
	}

	assert.Equal(t, 3, Search("", candidates).Count)

	res = Search("nothing", candidates)
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Data)
}

func TestReaderVenueDetail(t *testing.T) {
	calls := 0
	r := fixture().reader(now, &calls)

	d, err := r.VenueDetail(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "Park Square Live Music & Coffee", d.Name)
	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 2, d.UpcomingShowsCount)
	assert.Equal(t, SideArtist, d.UpcomingShows[0].Counterpart)
}

func TestReaderArtistDetail(t *testing.T) {
	r := fixture().reader(now, nil)

	d, err := r.ArtistDetail(context.Background(), 4)
	require.NoError(t, err)

	require.Len(t, d.PastShows, 1)
	require.Len(t, d.UpcomingShows, 1)
	assert.Equal(t, int64(1), d.PastShows[0].CounterpartID)
	assert.Equal(t, "The Musical Hop", d.UpcomingShows[0].CounterpartName)
}

func TestReaderDetailNotFound(t *testing.T) {
	r := fixture().reader(now, nil)

	_, err := r.VenueDetail(context.Background(), 99)
	assert.True(t, errors.Is(err, errNotFound))

	_, err = r.ArtistDetail(context.Background(), 99)
	assert.True(t, errors.Is(err, errNotFound))
}

func TestReaderVenuesByArea(t *testing.T) {
	calls := 0
	r := fixture().reader(now, &calls)

	areas, err := r.VenuesByArea(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, areas, 2)
	sf := areas[0]
	assert.Equal(t, "SAN FRANCISCO", sf.City)
	require.Len(t, sf.Venues, 2)
	assert.Equal(t, 1, sf.Venues[0].NumUpcomingShows)
	assert.Equal(t, 2, sf.Venues[1].NumUpcomingShows)
}

func TestReaderPropagatesStoreErrors(t *testing.T) {
	store := fixture()
	store.failAll = errors.New("boom")
	r := store.reader(now, nil)

	_, err := r.VenuesByArea(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestReaderShowsSortedByStartTime(t *testing.T) {
	store := fixture()
	store.shows[0], store.shows[4] = store.shows[4], store.shows[0]
	r := store.reader(now, nil)

	shows, err := r.Shows(context.Background())
	require.NoError(t, err)

	require.Len(t, shows, 5)
	for i := 1; i < len(shows); i++ {
		assert.LessOrEqual(t, shows[i-1].StartTime, shows[i].StartTime)
	}
	assert.Equal(t, "Guns N Petals", shows[0].ArtistName)
	assert.Equal(t, "gnp.png", shows[0].ArtistImageLink)
}

func TestReaderSearch(t *testing.T) {
	r := fixture().reader(now, nil)

	res, err := r.SearchVenues(context.Background(), "music")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Data[0].NumUpcomingShows)

	res, err = r.SearchArtists(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	res, err = r.SearchArtists(context.Background(), "band")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, "The Wild Sax Band", res.Data[0].Name)
	assert.Equal(t, 2, res.Data[0].NumUpcomingShows)
}

func TestReaderArtistsListing(t *testing.T) {
	r := fixture().reader(now, nil)

	artists, err := r.Artists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ArtistSummary{{4, "Guns N Petals"}, {5, "Matt Quevedo"}, {6, "The Wild Sax Band"}}, artists)
}
