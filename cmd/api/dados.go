package main

import (
	"errors"
	"net/http"

	"location-map/internal/storage"
	_ "location-map/internal/types" // imported for swagger type definitions

	"github.com/gin-gonic/gin"
)

// handleGetDados godoc
// @Summary Get the current location
// @Description Return the persisted location record consumed by the map page
// @Tags location
// @Produce json
// @Success 200 {object} types.Location
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /dados [get]
func (app *App) handleGetDados(c *gin.Context) {
	loc, err := app.store.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		app.logger.Error("failed to load location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load location"})
		return
	}

	c.JSON(http.StatusOK, loc)
}

// handleRefreshDados godoc
// @Summary Locate this machine again
// @Description Resolve the public IP to a city and coordinates, persist the result and return it
// @Tags location
// @Produce json
// @Success 200 {object} types.Location
// @Failure 502 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /dados/refresh [post]
func (app *App) handleRefreshDados(c *gin.Context) {
	ctx := c.Request.Context()

	if err := app.Refresh(ctx); err != nil {
		app.logger.Error("failed to refresh location", "error", err)
		if errors.Is(err, errLocate) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to locate"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save location"})
		return
	}

	loc, err := app.store.Load(ctx)
	if err != nil {
		app.logger.Error("failed to load refreshed location", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load location"})
		return
	}

	c.JSON(http.StatusOK, loc)
}
