package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"prediction-service/internal/adapters/primary/http/dto"
	ports "prediction-service/internal/core/ports/output"
)

func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictSvc.Predict(c.Request.Context(), req.Model, req.Version, req.Input)
	if err != nil {
		log.WithError(err).WithField("model", req.Model).Warn("predict failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(prediction))
}

func (h *Handler) PredictAsync(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictSvc.PredictAsync(c.Request.Context(), req.Model, req.Version, req.Input)
	if err != nil {
		log.WithError(err).WithField("model", req.Model).Warn("async predict failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.ToPredictionResponse(prediction))
}

func (h *Handler) GetPrediction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction id"})
		return
	}

	prediction, err := h.predictionSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(prediction))
}

func (h *Handler) ListPredictions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit = clampLimit(limit)

	filter := ports.PredictionListFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := c.Query("model_version_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model_version_id"})
			return
		}
		filter.ModelVersionID = &id
	}

	predictions, total, err := h.predictionSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list predictions failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		items = append(items, dto.ToPredictionResponse(p))
	}

	c.JSON(http.StatusOK, dto.ListPredictionsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}
