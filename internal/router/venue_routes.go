package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/handler"
)

func registerVenues(e *echo.Echo, h *handler.VenueHandler, write []echo.MiddlewareFunc) {
	g := e.Group("/venues")
	g.GET("", h.List)
	g.POST("/search", h.Search)
	g.GET("/create", h.NewForm)
	g.POST("/create", h.Create, write...)
	g.GET("/:id", h.Show)
	g.DELETE("/:id", h.Delete, write...)
	g.GET("/:id/edit", h.EditForm)
	g.POST("/:id/edit", h.Update, write...)
}
