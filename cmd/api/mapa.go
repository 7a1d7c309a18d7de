package main

import (
	"bytes"
	"errors"
	"net/http"

	"location-map/internal/mapview"
	"location-map/internal/storage"

	"github.com/gin-gonic/gin"
)

// handleMapPage godoc
// @Summary Map page
// @Description HTML page with a Leaflet map centered on the current location. Load failures are logged and the page is served without a map.
// @Tags map
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (app *App) handleMapPage(c *gin.Context) {
	var buf bytes.Buffer
	if err := app.renderer.RenderPage(c.Request.Context(), &buf); err != nil {
		app.logger.Error("failed to render map page", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleGetMapView godoc
// @Summary Get the map view
// @Description Map center, zoom, tile layer and marker derived from the current location
// @Tags map
// @Produce json
// @Success 200 {object} types.MapView
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/map-view [get]
func (app *App) handleGetMapView(c *gin.Context) {
	view, err := app.renderer.Render(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		case errors.Is(err, mapview.ErrMalformedPayload):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			app.logger.Error("failed to render map view", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load location data"})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
