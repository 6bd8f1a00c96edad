// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for venues: lookup, listing,
// name search and the writes used by the listing forms.
package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur-directory/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link, genres,
	facebook_link, website, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.  It runs
// against either the pool or a transaction, whichever it was built with.
type VenueRepo struct {
	q sqlx.ExtContext
}

// NewVenueRepo constructs a VenueRepo on a *sqlx.DB or *sqlx.Tx.
func NewVenueRepo(q sqlx.ExtContext) *VenueRepo {
	return &VenueRepo{q: q}
}

// GetByID fetches a venue by its ID.  It returns ErrNotFound if no row
// matches.
func (r *VenueRepo) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	var v model.Venue
	if err := sqlx.GetContext(ctx, r.q, &v, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id); err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// ListByState returns every venue ordered by state, then id, which is the
// order the area listing groups them in.
func (r *VenueRepo) ListByState(ctx context.Context) ([]model.Venue, error) {
	out := []model.Venue{}
	if err := sqlx.SelectContext(ctx, r.q, &out, `SELECT `+venueColumns+` FROM venues ORDER BY state, id`); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	out := []model.Venue{}
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE LOWER(name) LIKE ? ORDER BY name, id`
	if err := sqlx.SelectContext(ctx, r.q, &out, q, containsPattern(term)); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsDuplicate reports whether another venue already has the same
// name, address, city and state.  excludeID skips the venue being edited;
// pass 0 on create.
func (r *VenueRepo) ExistsDuplicate(ctx context.Context, v *model.Venue, excludeID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM venues
	           WHERE name = ? AND address = ? AND city = ? AND state = ? AND id <> ?`
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, q, v.Name, v.Address, v.City, v.State, excludeID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new venue and assigns the generated ID.  A unique key
// violation is reported as ErrDuplicate.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, genres,
	           facebook_link, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.Genres,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

// Update overwrites every editable field of the venue with v.ID.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, genres = ?,
	               facebook_link = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	_, err := r.q.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.Genres,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription, v.ID)
	return translate(err)
}

// Delete removes a venue.  It returns ErrNotFound when no row was
// deleted and ErrConflict when shows still reference the venue.
func (r *VenueRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, lower-cased
// and with wildcards in term escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
