package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/form"
)

// VenueHandler serves the venue pages and forms.
type VenueHandler struct {
	Directory DirectoryReader
	Listings  ListingWriter
}

// List handles GET /venues: every venue grouped by city and state.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.Directory.VenuesByArea(c.Request().Context())
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, areas)
}

// Search handles POST /venues/search.
func (h *VenueHandler) Search(c echo.Context) error {
	var body searchRequest
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	term := strings.TrimSpace(body.SearchTerm)
	res, err := h.Directory.SearchVenues(c.Request().Context(), term)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "count": res.Count, "data": res.Data})
}

// Show handles GET /venues/:id with past and upcoming shows.
func (h *VenueHandler) Show(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	d, err := h.Directory.VenueDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, d)
}

// NewForm handles GET /venues/create: an empty form and its choices.
func (h *VenueHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.Venue{Genres: []string{}}, "choices": formChoices})
}

// Create handles POST /venues/create.
func (h *VenueHandler) Create(c echo.Context) error {
	var f form.Venue
	if err := c.Bind(&f); err != nil {
		return badBody(c)
	}
	res, err := h.Listings.CreateVenue(c.Request().Context(), &f)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusCreated, res)
}

// EditForm handles GET /venues/:id/edit: the form prefilled with the
// stored venue.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	v, err := h.Directory.Venue(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, echo.Map{"id": v.ID, "form": form.VenueFromModel(*v), "choices": formChoices})
}

// Update handles POST /venues/:id/edit.
func (h *VenueHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var f form.Venue
	if err := c.Bind(&f); err != nil {
		return badBody(c)
	}
	res, err := h.Listings.UpdateVenue(c.Request().Context(), id, &f)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /venues/:id.  Venues with shows are kept.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.Listings.DeleteVenue(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "venue")
	}
	return c.JSON(http.StatusOK, res)
}
