package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"prediction-service/internal/adapters/primary/http/dto"
)

func (h *Handler) ListModelVersions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	versions, err := h.versionSvc.List(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ModelVersionResponse, 0, len(versions))
	for _, v := range versions {
		items = append(items, dto.ToModelVersionResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) GetModelVersion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	version, err := h.versionSvc.Get(c.Request.Context(), id, c.Param("version"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelVersionResponse(version))
}

func (h *Handler) CreateModelVersion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	var req dto.CreateModelVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.versionSvc.Create(c.Request.Context(), id, req.Version, req.ArtifactURI, req.Framework)
	if err != nil {
		log.WithError(err).Error("create model version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToModelVersionResponse(version))
}

func (h *Handler) ActivateModelVersion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	version, err := h.versionSvc.Activate(c.Request.Context(), id, c.Param("version"))
	if err != nil {
		log.WithError(err).Error("activate model version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelVersionResponse(version))
}
