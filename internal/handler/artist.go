package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/form"
)

// ArtistHandler serves the artist pages and forms.
type ArtistHandler struct {
	Directory DirectoryReader
	Listings  ListingWriter
}

// List handles GET /artists, ordered by name.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Directory.Artists(c.Request().Context())
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, artists)
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
	var body searchRequest
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	term := strings.TrimSpace(body.SearchTerm)
	res, err := h.Directory.SearchArtists(c.Request().Context(), term)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": term, "count": res.Count, "data": res.Data})
}

// Show handles GET /artists/:id with past and upcoming shows.
func (h *ArtistHandler) Show(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	d, err := h.Directory.ArtistDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, d)
}

// NewForm handles GET /artists/create.
func (h *ArtistHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.Artist{Genres: []string{}}, "choices": formChoices})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	var f form.Artist
	if err := c.Bind(&f); err != nil {
		return badBody(c)
	}
	res, err := h.Listings.CreateArtist(c.Request().Context(), &f)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusCreated, res)
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	a, err := h.Directory.Artist(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "form": form.ArtistFromModel(*a), "choices": formChoices})
}

// Update handles POST /artists/:id/edit.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var f form.Artist
	if err := c.Bind(&f); err != nil {
		return badBody(c)
	}
	res, err := h.Listings.UpdateArtist(c.Request().Context(), id, &f)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /artists/:id.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.Listings.DeleteArtist(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "artist")
	}
	return c.JSON(http.StatusOK, res)
}
