package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

const artistColumns = `id, name, city, state, phone, image_link, genres,
	facebook_link, website, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	q sqlx.ExtContext
}

// NewArtistRepo constructs an ArtistRepo on a *sqlx.DB or *sqlx.Tx.
func NewArtistRepo(q sqlx.ExtContext) *ArtistRepo {
	return &ArtistRepo{q: q}
}

// GetByID retrieves an artist by its ID.  It returns ErrNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	var a model.Artist
	if err := sqlx.GetContext(ctx, r.q, &a, `SELECT `+artistColumns+` FROM artists WHERE id = ?`, id); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// ListByName returns every artist ordered by name.
func (r *ArtistRepo) ListByName(ctx context.Context) ([]model.Artist, error) {
	out := []model.Artist{}
	if err := sqlx.SelectContext(ctx, r.q, &out, `SELECT `+artistColumns+` FROM artists ORDER BY name, id`); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	out := []model.Artist{}
	const q = `SELECT ` + artistColumns + ` FROM artists WHERE LOWER(name) LIKE ? ORDER BY name, id`
	if err := sqlx.SelectContext(ctx, r.q, &out, q, containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsDuplicate reports whether another artist already has the same
// name, phone, city and state.
func (r *ArtistRepo) ExistsDuplicate(ctx context.Context, a *model.Artist, excludeID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM artists
	           WHERE name = ? AND phone = ? AND city = ? AND state = ? AND id <> ?`
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, q, a.Name, a.Phone, a.City, a.State, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new artist and assigns the generated ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, image_link, genres,
	           facebook_link, website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.Genres,
		a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// Update overwrites every editable field of the artist with a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, image_link = ?, genres = ?,
	               facebook_link = ?, website = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	_, err := r.q.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink, a.Genres,
		a.FacebookLink, a.Website, a.SeekingVenue, a.SeekingDescription, a.ID)
	return translate(err)
}

// Delete removes an artist.  It returns ErrNotFound when no row was
// deleted and ErrConflict when shows still reference the artist.
func (r *ArtistRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
