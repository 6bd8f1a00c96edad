package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur-directory/internal/handler"
)

func registerShows(e *echo.Echo, h *handler.ShowHandler, write []echo.MiddlewareFunc) {
	g := e.Group("/shows")
	g.GET("", h.List)
	g.GET("/create", h.NewForm)
	g.POST("/create", h.Create, write...)
}
