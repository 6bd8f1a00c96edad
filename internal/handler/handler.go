// Package handler exposes the directory over HTTP.  Handlers bind the
// request, call a service and translate its errors into status codes in
// one place.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/directory"
	"github.com/iliyamo/fyyur-directory/internal/form"
	"github.com/iliyamo/fyyur-directory/internal/logging"
	"github.com/iliyamo/fyyur-directory/internal/model"
	"github.com/iliyamo/fyyur-directory/internal/repository"
	"github.com/iliyamo/fyyur-directory/internal/service"
)

// DirectoryReader answers browse and search queries.
type DirectoryReader interface {
	VenuesByArea(ctx context.Context) ([]directory.Area, error)
	VenueDetail(ctx context.Context, id int64) (directory.VenueDetail, error)
	ArtistDetail(ctx context.Context, id int64) (directory.ArtistDetail, error)
	Venue(ctx context.Context, id int64) (*model.Venue, error)
	Artist(ctx context.Context, id int64) (*model.Artist, error)
	Artists(ctx context.Context) ([]directory.ArtistSummary, error)
	Shows(ctx context.Context) ([]directory.ShowListing, error)
	SearchVenues(ctx context.Context, term string) (directory.SearchResult, error)
	SearchArtists(ctx context.Context, term string) (directory.SearchResult, error)
}

// ListingWriter applies listing forms.
type ListingWriter interface {
	CreateVenue(ctx context.Context, f *form.Venue) (service.Result, error)
	UpdateVenue(ctx context.Context, id int64, f *form.Venue) (service.Result, error)
	DeleteVenue(ctx context.Context, id int64) (service.Result, error)
	CreateArtist(ctx context.Context, f *form.Artist) (service.Result, error)
	UpdateArtist(ctx context.Context, id int64, f *form.Artist) (service.Result, error)
	DeleteArtist(ctx context.Context, id int64) (service.Result, error)
	CreateShow(ctx context.Context, f *form.Show) (service.Result, error)
}

// searchRequest is the body of both search endpoints.
type searchRequest struct {
	SearchTerm string `json:"search_term" form:"search_term"`
}

// formChoices lists the fixed options offered by the listing forms.
var formChoices = echo.Map{
	"states": form.States,
	"genres": form.GenreChoices,
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}

// respondError maps service and store errors onto HTTP responses.
// entity names the resource in not-found messages.
func respondError(c echo.Context, err error, entity string) error {
	var fe form.Errors
	if errors.As(err, &fe) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid form", "fields": fe})
	}

	var le *service.ListingError
	if errors.As(err, &le) {
		switch {
		case errors.Is(le, repository.ErrDuplicate):
			return c.JSON(http.StatusConflict, echo.Map{"warning": le.Message})
		case errors.Is(le, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": le.Message})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": le.Message})
		}
	}

	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	}

	logging.FromContext(c.Request().Context()).WithError(err).Error("directory query failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
