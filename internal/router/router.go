// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/handler"
)

// Handlers bundles the handlers behind every route.
type Handlers struct {
	Health  *handler.HealthHandler
	Venues  *handler.VenueHandler
	Artists *handler.ArtistHandler
	Shows   *handler.ShowHandler
}

// RegisterRoutes registers the directory on e.  The non-nil middlewares in
// writeChain wrap every route that changes a listing, outermost first.
func RegisterRoutes(e *echo.Echo, h Handlers, writeChain ...echo.MiddlewareFunc) {
	var write []echo.MiddlewareFunc
	for _, m := range writeChain {
		if m != nil {
			write = append(write, m)
		}
	}

	// Load balancers and monitoring systems probe this endpoint.
	e.GET("/healthz", h.Health.Health)

	registerVenues(e, h.Venues, write)
	registerArtists(e, h.Artists, write)
	registerShows(e, h.Shows, write)
}
