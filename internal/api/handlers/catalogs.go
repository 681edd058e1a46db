package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/lookout/internal/services"
)

type CatalogHandler struct {
	refresher *services.RefreshWorker
}

func NewCatalogHandler(refresher *services.RefreshWorker) *CatalogHandler {
	return &CatalogHandler{
		refresher: refresher,
	}
}

// GetRefreshStatus reports the last catalog refresh
func (h *CatalogHandler) GetRefreshStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.refresher.GetStatus())
}

// Refresh evicts the latest catalogs and warms them again now
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.refresher.Refresh(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.refresher.GetStatus())
}
