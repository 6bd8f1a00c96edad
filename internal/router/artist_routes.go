package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/handler"
)

func registerArtists(e *echo.Echo, h *handler.ArtistHandler, write []echo.MiddlewareFunc) {
	g := e.Group("/artists")
	g.GET("", h.List)
	g.POST("/search", h.Search)
	g.GET("/create", h.NewForm)
	g.POST("/create", h.Create, write...)
	g.GET("/:id", h.Show)
	g.DELETE("/:id", h.Delete, write...)
	g.GET("/:id/edit", h.EditForm)
	g.POST("/:id/edit", h.Update, write...)
}
