// Package service runs directory queries and listing writes inside
// per-request transactions.
package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur-directory/internal/database"
	"github.com/iliyamo/fyyur-directory/internal/directory"
	"github.com/iliyamo/fyyur-directory/internal/model"
	"github.com/iliyamo/fyyur-directory/internal/repository"
)

// Directory serves the browse and search pages.  Each call reads from
// one read-only transaction, so an entity and its shows are consistent.
type Directory struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDirectory builds a Directory.  A nil now uses the UTC wall clock.
func NewDirectory(db *sqlx.DB, now func() time.Time) *Directory {
	return &Directory{db: db, now: now}
}

func read[T any](ctx context.Context, d *Directory, fn func(r *directory.Reader) (T, error)) (T, error) {
	var out T
	err := database.WithTx(ctx, d.db, database.ReadOnly, func(tx *sqlx.Tx) error {
		st := repository.NewStore(tx)
		var err error
		out, err = fn(directory.NewReader(st.Venues, st.Artists, st.Shows, d.now))
		return err
	})
	return out, err
}

func (d *Directory) VenuesByArea(ctx context.Context) ([]directory.Area, error) {
	return read(ctx, d, func(r *directory.Reader) ([]directory.Area, error) { return r.VenuesByArea(ctx) })
}

func (d *Directory) VenueDetail(ctx context.Context, id int64) (directory.VenueDetail, error) {
	return read(ctx, d, func(r *directory.Reader) (directory.VenueDetail, error) { return r.VenueDetail(ctx, id) })
}

func (d *Directory) ArtistDetail(ctx context.Context, id int64) (directory.ArtistDetail, error) {
	return read(ctx, d, func(r *directory.Reader) (directory.ArtistDetail, error) { return r.ArtistDetail(ctx, id) })
}

func (d *Directory) Venue(ctx context.Context, id int64) (*model.Venue, error) {
	return read(ctx, d, func(r *directory.Reader) (*model.Venue, error) { return r.Venue(ctx, id) })
}

func (d *Directory) Artist(ctx context.Context, id int64) (*model.Artist, error) {
	return read(ctx, d, func(r *directory.Reader) (*model.Artist, error) { return r.Artist(ctx, id) })
}

func (d *Directory) Artists(ctx context.Context) ([]directory.ArtistSummary, error) {
	return read(ctx, d, func(r *directory.Reader) ([]directory.ArtistSummary, error) { return r.Artists(ctx) })
}

func (d *Directory) Shows(ctx context.Context) ([]directory.ShowListing, error) {
	return read(ctx, d, func(r *directory.Reader) ([]directory.ShowListing, error) { return r.Shows(ctx) })
}

func (d *Directory) SearchVenues(ctx context.Context, term string) (directory.SearchResult, error) {
	return read(ctx, d, func(r *directory.Reader) (directory.SearchResult, error) { return r.SearchVenues(ctx, term) })
}

func (d *Directory) SearchArtists(ctx context.Context, term string) (directory.SearchResult, error) {
	return read(ctx, d, func(r *directory.Reader) (directory.SearchResult, error) { return r.SearchArtists(ctx, term) })
}
