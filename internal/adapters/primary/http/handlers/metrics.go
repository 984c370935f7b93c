package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Metrics renders the Prometheus text exposition for scraping. Registered at
// the root, outside the API-key gate.
func (h *Handler) Metrics(c *gin.Context) {
	c.Header("Content-Type", "text/plain; version=0.0.4")
	c.String(http.StatusOK, h.collector.Snapshot().PrometheusText())
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.collector.Snapshot())
}

func (h *Handler) GetServingStatus(c *gin.Context) {
	status, err := h.kubeClient.GetServingStatus(c.Request.Context(), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
