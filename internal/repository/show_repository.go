// Package repository contains data access logic for Show domain operations.
// Shows have no surrogate key: (artist_id, venue_id, start_time) is the
// primary key and rows are never updated.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

// showJoin selects shows with both the venue and the artist they link.
const showJoin = `SELECT
		s.venue_id,
		v.name       AS venue_name,
		v.image_link AS venue_image_link,
		s.artist_id,
		a.name       AS artist_name,
		a.image_link AS artist_image_link,
		s.start_time
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	q sqlx.ExtContext
}

// NewShowRepo constructs a ShowRepo on a *sqlx.DB or *sqlx.Tx.
func NewShowRepo(q sqlx.ExtContext) *ShowRepo {
	return &ShowRepo{q: q}
}

// ListByVenue returns the venue's shows, earliest first.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID int64) ([]model.ShowRow, error) {
	return r.list(ctx, showJoin+` WHERE s.venue_id = ? ORDER BY s.start_time, s.artist_id`, venueID)
}

// ListByArtist returns the artist's shows, earliest first.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID int64) ([]model.ShowRow, error) {
	return r.list(ctx, showJoin+` WHERE s.artist_id = ? ORDER BY s.start_time, s.venue_id`, artistID)
}

// ListAll returns every show, earliest first.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowRow, error) {
	return r.list(ctx, showJoin+` ORDER BY s.start_time, s.venue_id, s.artist_id`)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.ShowRow, error) {
	out := []model.ShowRow{}
	if err := sqlx.SelectContext(ctx, r.q, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

type countRow struct {
	ID    int64 `db:"id"`
	Count int   `db:"n"`
}

// CountUpcomingByVenue maps venue id to the number of its shows starting
// at or after ref.  Venues without upcoming shows are absent.
func (r *ShowRepo) CountUpcomingByVenue(ctx context.Context, ref time.Time) (map[int64]int, error) {
	return r.countUpcoming(ctx, `SELECT venue_id AS id, COUNT(*) AS n FROM shows WHERE start_time >= ? GROUP BY venue_id`, ref)
}

// CountUpcomingByArtist maps artist id to the number of its shows
// starting at or after ref.
func (r *ShowRepo) CountUpcomingByArtist(ctx context.Context, ref time.Time) (map[int64]int, error) {
	return r.countUpcoming(ctx, `SELECT artist_id AS id, COUNT(*) AS n FROM shows WHERE start_time >= ? GROUP BY artist_id`, ref)
}

func (r *ShowRepo) countUpcoming(ctx context.Context, q string, ref time.Time) (map[int64]int, error) {
	var rows []countRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, q, ref.UTC()); err != nil {
		return nil, err
	}
	out := make(map[int64]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// CountByVenue returns how many shows, past or upcoming, reference the venue.
func (r *ShowRepo) CountByVenue(ctx context.Context, venueID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM shows WHERE venue_id = ?`, venueID)
	return n, err
}

// CountByArtist returns how many shows reference the artist.
func (r *ShowRepo) CountByArtist(ctx context.Context, artistID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM shows WHERE artist_id = ?`, artistID)
	return n, err
}

// Exists reports whether a show with the same identity is already booked.
func (r *ShowRepo) Exists(ctx context.Context, s *model.Show) (bool, error) {
	const q = `SELECT COUNT(*) FROM shows WHERE artist_id = ? AND venue_id = ? AND start_time = ?`
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, q, s.ArtistID, s.VenueID, s.StartTime.UTC()); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a show.  A primary key violation is reported as
// ErrDuplicate and a dangling venue or artist reference as ErrNotFound.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
	return translate(err)
}
