package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/form"
)

// ShowHandler serves the show listing and booking form.
type ShowHandler struct {
	Directory DirectoryReader
	Listings  ListingWriter
}

// List handles GET /shows, earliest first.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Directory.Shows(c.Request().Context())
	if err != nil {
		return respondError(c, err, "show")
	}
	return c.JSON(http.StatusOK, shows)
}

// NewForm handles GET /shows/create.
func (h *ShowHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": form.Show{}})
}

// Create handles POST /shows/create.
func (h *ShowHandler) Create(c echo.Context) error {
	var f form.Show
	if err := c.Bind(&f); err != nil {
		return badBody(c)
	}
	res, err := h.Listings.CreateShow(c.Request().Context(), &f)
	if err != nil {
		return respondError(c, err, "show")
	}
	return c.JSON(http.StatusCreated, res)
}
