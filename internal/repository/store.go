package repository

import "github.com/jmoiron/sqlx"

// Store bundles the repositories over one query handle so a single unit
// of work can span venues, artists and shows.
type Store struct {
	Venues  *VenueRepo
	Artists *ArtistRepo
	Shows   *ShowRepo
}

// NewStore binds all repositories to q, typically the *sqlx.Tx of the
// current request.
func NewStore(q sqlx.ExtContext) *Store {
	return &Store{
		Venues:  NewVenueRepo(q),
		Artists: NewArtistRepo(q),
		Shows:   NewShowRepo(q),
	}
}
