package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fyyur-directory/internal/database"
	"github.com/iliyamo/fyyur-directory/internal/directory"
	"github.com/iliyamo/fyyur-directory/internal/form"
	"github.com/iliyamo/fyyur-directory/internal/queue"
	"github.com/iliyamo/fyyur-directory/internal/repository"
)

const (
	venueExists  = "Looks like this venue already exists. To edit venue information, see the venue's details page and click the 'edit' button"
	artistExists = "Looks like this artist already exists. To edit artist information, see the artist's details page and click the 'edit' button"
	showExists   = "Looks like this show's already in the books! To edit show information, see the show's details page and click the 'edit' button"
)

// Result is the outcome of a successful listing write.
type Result struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

// Listings validates and applies listing forms.  Each write runs in its
// own transaction; an event is published once it commits.
type Listings struct {
	db  *sqlx.DB
	pub EventPublisher
	log logrus.FieldLogger
	now func() time.Time
}

// NewListings builds a Listings service.  A nil pub drops events.
func NewListings(db *sqlx.DB, pub EventPublisher, log logrus.FieldLogger) *Listings {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Listings{db: db, pub: pub, log: log, now: time.Now}
}

// messages holds the per-operation texts used by fail.
type messages struct {
	duplicate string
	conflict  string
	failed    string
}

func (s *Listings) inTx(ctx context.Context, fn func(st *repository.Store) error) error {
	return database.WithTx(ctx, s.db, nil, func(tx *sqlx.Tx) error {
		return fn(repository.NewStore(tx))
	})
}

// fail classifies err.  Input errors and missing rows pass through; the
// rest become a ListingError carrying the message for the user.
func (s *Listings) fail(op string, err error, msg messages) error {
	var fe form.Errors
	switch {
	case errors.As(err, &fe), errors.Is(err, repository.ErrNotFound):
		return err
	case errors.Is(err, repository.ErrDuplicate):
		return &ListingError{Message: msg.duplicate, Err: err}
	case errors.Is(err, repository.ErrConflict):
		return &ListingError{Message: msg.conflict, Err: err}
	}
	s.log.WithError(err).WithField("op", op).Error("listing write failed")
	return &ListingError{Message: msg.failed, Err: errors.Join(ErrPersistence, err)}
}

func (s *Listings) publish(ctx context.Context, ev queue.ListingEvent) {
	if err := s.pub.PublishListing(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event_id": ev.EventID,
			"kind":     ev.Kind,
			"action":   ev.Action,
		}).Warn("publish listing event failed")
	}
}

func (s *Listings) event(kind, action string, id int64, name string) queue.ListingEvent {
	ev := queue.NewListingEvent(kind, action, s.now())
	ev.ID = id
	ev.Name = name
	return ev
}

// CreateVenue validates f and lists a new venue.
func (s *Listings) CreateVenue(ctx context.Context, f *form.Venue) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	v := f.Model()
	err := s.inTx(ctx, func(st *repository.Store) error {
		dup, err := st.Venues.ExistsDuplicate(ctx, &v, 0)
		if err != nil {
			return err
		}
		if dup {
			return repository.ErrDuplicate
		}
		return st.Venues.Create(ctx, &v)
	})
	if err != nil {
		return Result{}, s.fail("create venue", err, messages{
			duplicate: venueExists,
			failed:    fmt.Sprintf("An error occurred. Venue %s could not be listed. Please try again.", v.Name),
		})
	}
	s.publish(ctx, s.event(queue.KindVenue, queue.ActionCreated, v.ID, v.Name))
	return Result{ID: v.ID, Message: fmt.Sprintf("Venue %s was successfully listed!", v.Name)}, nil
}

// UpdateVenue validates f and overwrites venue id with it.
func (s *Listings) UpdateVenue(ctx context.Context, id int64, f *form.Venue) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	v := f.Model()
	v.ID = id
	err := s.inTx(ctx, func(st *repository.Store) error {
		if _, err := st.Venues.GetByID(ctx, id); err != nil {
			return err
		}
		dup, err := st.Venues.ExistsDuplicate(ctx, &v, id)
		if err != nil {
			return err
		}
		if dup {
			return repository.ErrDuplicate
		}
		return st.Venues.Update(ctx, &v)
	})
	if err != nil {
		return Result{}, s.fail("update venue", err, messages{
			duplicate: venueExists,
			failed:    fmt.Sprintf("An error occurred. Venue %s could not be updated. Please try again.", v.Name),
		})
	}
	s.publish(ctx, s.event(queue.KindVenue, queue.ActionUpdated, v.ID, v.Name))
	return Result{ID: v.ID, Message: fmt.Sprintf("Venue %s was successfully updated!", v.Name)}, nil
}

// DeleteVenue removes a venue that has no shows.
func (s *Listings) DeleteVenue(ctx context.Context, id int64) (Result, error) {
	var name string
	err := s.inTx(ctx, func(st *repository.Store) error {
		v, err := st.Venues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = v.Name
		n, err := st.Shows.CountByVenue(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("venue %d has %d shows: %w", id, n, repository.ErrConflict)
		}
		return st.Venues.Delete(ctx, id)
	})
	if err != nil {
		return Result{}, s.fail("delete venue", err, messages{
			conflict: fmt.Sprintf("Venue %s has shows booked and could not be deleted.", name),
			failed:   fmt.Sprintf("An error occurred. Venue %s could not be deleted. Please try again.", name),
		})
	}
	s.publish(ctx, s.event(queue.KindVenue, queue.ActionDeleted, id, name))
	return Result{ID: id, Message: fmt.Sprintf("Venue %s was successfully deleted!", name)}, nil
}

// CreateArtist validates f and lists a new artist.
func (s *Listings) CreateArtist(ctx context.Context, f *form.Artist) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	a := f.Model()
	err := s.inTx(ctx, func(st *repository.Store) error {
		dup, err := st.Artists.ExistsDuplicate(ctx, &a, 0)
		if err != nil {
			return err
		}
		if dup {
			return repository.ErrDuplicate
		}
		return st.Artists.Create(ctx, &a)
	})
	if err != nil {
		return Result{}, s.fail("create artist", err, messages{
			duplicate: artistExists,
			failed:    fmt.Sprintf("An error occurred. Artist %s could not be listed. Please try again.", a.Name),
		})
	}
	s.publish(ctx, s.event(queue.KindArtist, queue.ActionCreated, a.ID, a.Name))
	return Result{ID: a.ID, Message: fmt.Sprintf("Artist %s was successfully listed!", a.Name)}, nil
}

// UpdateArtist validates f and overwrites artist id with it.
func (s *Listings) UpdateArtist(ctx context.Context, id int64, f *form.Artist) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	a := f.Model()
	a.ID = id
	err := s.inTx(ctx, func(st *repository.Store) error {
		if _, err := st.Artists.GetByID(ctx, id); err != nil {
			return err
		}
		dup, err := st.Artists.ExistsDuplicate(ctx, &a, id)
		if err != nil {
			return err
		}
		if dup {
			return repository.ErrDuplicate
		}
		return st.Artists.Update(ctx, &a)
	})
	if err != nil {
		return Result{}, s.fail("update artist", err, messages{
			duplicate: artistExists,
			failed:    fmt.Sprintf("An error occurred. Artist %s could not be updated. Please try again.", a.Name),
		})
	}
	s.publish(ctx, s.event(queue.KindArtist, queue.ActionUpdated, a.ID, a.Name))
	return Result{ID: a.ID, Message: fmt.Sprintf("Artist %s was successfully updated!", a.Name)}, nil
}

// DeleteArtist removes an artist that has no shows.
func (s *Listings) DeleteArtist(ctx context.Context, id int64) (Result, error) {
	var name string
	err := s.inTx(ctx, func(st *repository.Store) error {
		a, err := st.Artists.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = a.Name
		n, err := st.Shows.CountByArtist(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("artist %d has %d shows: %w", id, n, repository.ErrConflict)
		}
		return st.Artists.Delete(ctx, id)
	})
	if err != nil {
		return Result{}, s.fail("delete artist", err, messages{
			conflict: fmt.Sprintf("Artist %s has shows booked and could not be deleted.", name),
			failed:   fmt.Sprintf("An error occurred. Artist %s could not be deleted. Please try again.", name),
		})
	}
	s.publish(ctx, s.event(queue.KindArtist, queue.ActionDeleted, id, name))
	return Result{ID: id, Message: fmt.Sprintf("Artist %s was successfully deleted!", name)}, nil
}

// CreateShow validates f and books the show.  A venue or artist id that
// matches nothing is reported against its form field.
func (s *Listings) CreateShow(ctx context.Context, f *form.Show) (Result, error) {
	show, err := f.Validate()
	if err != nil {
		return Result{}, err
	}
	err = s.inTx(ctx, func(st *repository.Store) error {
		errs := form.Errors{}
		if _, err := st.Artists.GetByID(ctx, show.ArtistID); errors.Is(err, repository.ErrNotFound) {
			errs.Add("artist_id", "Artist does not exist.")
		} else if err != nil {
			return err
		}
		if _, err := st.Venues.GetByID(ctx, show.VenueID); errors.Is(err, repository.ErrNotFound) {
			errs.Add("venue_id", "Venue does not exist.")
		} else if err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}

		exists, err := st.Shows.Exists(ctx, &show)
		if err != nil {
			return err
		}
		if exists {
			return repository.ErrDuplicate
		}
		return st.Shows.Create(ctx, &show)
	})
	if err != nil {
		return Result{}, s.fail("create show", err, messages{
			duplicate: showExists,
			failed:    "An error occurred. Show could not be listed. Please try again.",
		})
	}

	ev := queue.NewListingEvent(queue.KindShow, queue.ActionCreated, s.now())
	ev.VenueID = show.VenueID
	ev.ArtistID = show.ArtistID
	ev.StartTime = directory.FormatTime(show.StartTime)
	s.publish(ctx, ev)
	return Result{Message: "Show was successfully listed!"}, nil
}
