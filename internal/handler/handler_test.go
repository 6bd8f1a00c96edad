package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-directory/internal/directory"
	"github.com/iliyamo/fyyur-directory/internal/form"
	"github.com/iliyamo/fyyur-directory/internal/model"
	"github.com/iliyamo/fyyur-directory/internal/repository"
	"github.com/iliyamo/fyyur-directory/internal/service"
)

type fakeDirectory struct {
	venues   map[int64]model.Venue
	areas    []directory.Area
	search   directory.SearchResult
	lastTerm string
	err      error
}

func (f *fakeDirectory) VenuesByArea(context.Context) ([]directory.Area, error) {
	return f.areas, f.err
}

func (f *fakeDirectory) VenueDetail(_ context.Context, id int64) (directory.VenueDetail, error) {
	v, err := f.Venue(context.Background(), id)
	if err != nil {
		return directory.VenueDetail{}, err
	}
	return directory.VenueDetail{Venue: *v, ShowLists: directory.Aggregate(nil, directory.SideArtist, time.Now())}, nil
}

func (f *fakeDirectory) ArtistDetail(context.Context, int64) (directory.ArtistDetail, error) {
	return directory.ArtistDetail{}, repository.ErrNotFound
}

func (f *fakeDirectory) Venue(_ context.Context, id int64) (*model.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (f *fakeDirectory) Artist(context.Context, int64) (*model.Artist, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeDirectory) Artists(context.Context) ([]directory.ArtistSummary, error) {
	return []directory.ArtistSummary{{ID: 4, Name: "Guns N Petals"}}, f.err
}

func (f *fakeDirectory) Shows(context.Context) ([]directory.ShowListing, error) {
	return []directory.ShowListing{}, f.err
}

func (f *fakeDirectory) SearchVenues(_ context.Context, term string) (directory.SearchResult, error) {
	f.lastTerm = term
	return f.search, f.err
}

func (f *fakeDirectory) SearchArtists(_ context.Context, term string) (directory.SearchResult, error) {
	f.lastTerm = term
	return f.search, f.err
}

type fakeListings struct {
	venue *form.Venue
	show  *form.Show
	err   error
}

func (f *fakeListings) CreateVenue(_ context.Context, v *form.Venue) (service.Result, error) {
	f.venue = v
	if f.err != nil {
		return service.Result{}, f.err
	}
	return service.Result{ID: 1, Message: "Venue " + v.Name + " was successfully listed!"}, nil
}

func (f *fakeListings) UpdateVenue(_ context.Context, id int64, v *form.Venue) (service.Result, error) {
	f.venue = v
	return service.Result{ID: id, Message: "updated"}, f.err
}

func (f *fakeListings) DeleteVenue(_ context.Context, id int64) (service.Result, error) {
	return service.Result{ID: id}, f.err
}

func (f *fakeListings) CreateArtist(context.Context, *form.Artist) (service.Result, error) {
	return service.Result{}, f.err
}

func (f *fakeListings) UpdateArtist(context.Context, int64, *form.Artist) (service.Result, error) {
	return service.Result{}, f.err
}

func (f *fakeListings) DeleteArtist(context.Context, int64) (service.Result, error) {
	return service.Result{}, f.err
}

func (f *fakeListings) CreateShow(_ context.Context, s *form.Show) (service.Result, error) {
	f.show = s
	return service.Result{Message: "Show was successfully listed!"}, f.err
}

func serve(t *testing.T, h echo.HandlerFunc, method, target, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Add(method, path, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestVenueShow(t *testing.T) {
	dir := &fakeDirectory{venues: map[int64]model.Venue{1: {ID: 1, Name: "The Musical Hop", Genres: model.Genres{"Jazz"}}}}
	h := &VenueHandler{Directory: dir, Listings: &fakeListings{}}

	rec := serve(t, h.Show, http.MethodGet, "/venues/1", "/venues/:id", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "The Musical Hop", body["name"])
	assert.Equal(t, []any{}, body["past_shows"])
	assert.Equal(t, float64(0), body["upcoming_shows_count"])

	rec = serve(t, h.Show, http.MethodGet, "/venues/2", "/venues/:id", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "venue not found", decode(t, rec)["error"])

	rec = serve(t, h.Show, http.MethodGet, "/venues/abc", "/venues/:id", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVenueSearchEchoesTerm(t *testing.T) {
	dir := &fakeDirectory{search: directory.SearchResult{Count: 1, Data: []directory.Match{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}}}}
	h := &VenueHandler{Directory: dir}

	body := url.Values{"search_term": {"  Hop "}}.Encode()
	rec := serve(t, h.Search, http.MethodPost, "/venues/search", "/venues/search", body, echo.MIMEApplicationForm)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "Hop", dir.lastTerm)
	assert.Equal(t, "Hop", out["search_term"])
	assert.Equal(t, float64(1), out["count"])
}

func TestVenueCreateJSON(t *testing.T) {
	listings := &fakeListings{}
	h := &VenueHandler{Listings: listings}

	rec := serve(t, h.Create, http.MethodPost, "/venues/create", "/venues/create",
		`{"name":"The Musical Hop","genres":["Jazz","Folk"],"seeking_talent":true}`, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Venue The Musical Hop was successfully listed!", decode(t, rec)["message"])
	assert.Equal(t, []string{"Jazz", "Folk"}, listings.venue.Genres)
	assert.True(t, listings.venue.SeekingTalent)
}

func TestVenueCreateForm(t *testing.T) {
	listings := &fakeListings{}
	h := &VenueHandler{Listings: listings}

	body := url.Values{"name": {"Hop"}, "genres": {"Jazz", "Folk"}, "website_link": {"https://hop.com"}}.Encode()
	rec := serve(t, h.Create, http.MethodPost, "/venues/create", "/venues/create", body, echo.MIMEApplicationForm)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"Jazz", "Folk"}, listings.venue.Genres)
	assert.Equal(t, "https://hop.com", listings.venue.WebsiteLink)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		key    string
		want   any
	}{
		{"validation", form.Errors{"phone": {"Phone format needs to be ###-###-####"}}, http.StatusUnprocessableEntity, "error", "invalid form"},
		{"duplicate", &service.ListingError{Message: "Looks like this venue already exists.", Err: repository.ErrDuplicate}, http.StatusConflict, "warning", "Looks like this venue already exists."},
		{"restricted", &service.ListingError{Message: "Venue Hop has shows booked and could not be deleted.", Err: repository.ErrConflict}, http.StatusConflict, "error", "Venue Hop has shows booked and could not be deleted."},
		{"persistence", &service.ListingError{Message: "An error occurred.", Err: errors.Join(service.ErrPersistence, errors.New("io"))}, http.StatusInternalServerError, "error", "An error occurred."},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "error", "venue not found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "error", "database error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &VenueHandler{Listings: &fakeListings{err: tt.err}}

			rec := serve(t, h.Delete, http.MethodDelete, "/venues/3", "/venues/:id", "", "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)[tt.key])
		})
	}
}

func TestValidationFieldsInBody(t *testing.T) {
	h := &VenueHandler{Listings: &fakeListings{err: form.Errors{"city": {"Please enter valid city name"}}}}

	rec := serve(t, h.Create, http.MethodPost, "/venues/create", "/venues/create", `{}`, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	assert.Equal(t, []any{"Please enter valid city name"}, fields["city"])
}

func TestVenueEditForm(t *testing.T) {
	dir := &fakeDirectory{venues: map[int64]model.Venue{3: {ID: 3, Name: "Park Square", Website: "https://park.com", Genres: model.Genres{"Rock n Roll"}}}}
	h := &VenueHandler{Directory: dir}

	rec := serve(t, h.EditForm, http.MethodGet, "/venues/3/edit", "/venues/:id/edit", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	f := body["form"].(map[string]any)
	assert.Equal(t, "https://park.com", f["website_link"])
	assert.Contains(t, body["choices"].(map[string]any)["states"], "CA")
}

func TestVenueUpdatePassesID(t *testing.T) {
	listings := &fakeListings{}
	h := &VenueHandler{Listings: listings}

	rec := serve(t, h.Update, http.MethodPost, "/venues/3/edit", "/venues/:id/edit", `{"name":"Park Square"}`, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), decode(t, rec)["id"])
	assert.Equal(t, "Park Square", listings.venue.Name)
}

func TestArtistEndpoints(t *testing.T) {
	h := &ArtistHandler{Directory: &fakeDirectory{}, Listings: &fakeListings{}}

	rec := serve(t, h.List, http.MethodGet, "/artists", "/artists", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":4,"name":"Guns N Petals"}]`, rec.Body.String())

	rec = serve(t, h.Show, http.MethodGet, "/artists/9", "/artists/:id", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "artist not found", decode(t, rec)["error"])
}

func TestShowCreateAcceptsNumericIDs(t *testing.T) {
	listings := &fakeListings{}
	h := &ShowHandler{Listings: listings}

	rec := serve(t, h.Create, http.MethodPost, "/shows/create", "/shows/create",
		`{"artist_id":4,"venue_id":"1","start_time":"2035-04-01 20:00:00"}`, echo.MIMEApplicationJSON)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "4", listings.show.ArtistID.String())
	assert.Equal(t, "1", listings.show.VenueID.String())
}

func TestShowCreateBadBody(t *testing.T) {
	h := &ShowHandler{Listings: &fakeListings{}}

	rec := serve(t, h.Create, http.MethodPost, "/shows/create", "/shows/create", `{"artist_id":`, echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	ok := &HealthHandler{DB: pinger{}}
	rec := serve(t, ok.Health, http.MethodGet, "/healthz", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	down := &HealthHandler{DB: pinger{err: errors.New("gone")}}
	rec = serve(t, down.Health, http.MethodGet, "/healthz", "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
