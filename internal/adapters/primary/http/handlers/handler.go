package handlers

import (
	"github.com/gin-gonic/gin"

	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/core/services"
	"prediction-service/internal/metrics"
)

type Handler struct {
	modelSvc      *services.ModelService
	versionSvc    *services.ModelVersionService
	predictSvc    *services.PredictService
	predictionSvc *services.PredictionService
	collector     *metrics.Collector
	kubeClient    ports.KubeClient
}

func New(
	modelSvc *services.ModelService,
	versionSvc *services.ModelVersionService,
	predictSvc *services.PredictService,
	predictionSvc *services.PredictionService,
	collector *metrics.Collector,
	kubeClient ports.KubeClient,
) *Handler {
	return &Handler{
		modelSvc:      modelSvc,
		versionSvc:    versionSvc,
		predictSvc:    predictSvc,
		predictionSvc: predictionSvc,
		collector:     collector,
		kubeClient:    kubeClient,
	}
}

// clampLimit mirrors the service-side page bounds so page_size in list
// responses reports the limit that was actually applied.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Models
	r.GET("/models", h.ListModels)
	r.GET("/models/:id", h.GetModel)
	r.POST("/models", h.CreateModel)

	// Model Versions
	r.GET("/models/:id/versions", h.ListModelVersions)
	r.GET("/models/:id/versions/:version", h.GetModelVersion)
	r.POST("/models/:id/versions", h.CreateModelVersion)
	r.POST("/models/:id/versions/:version/activate", h.ActivateModelVersion)

	// Predictions
	r.POST("/predict", h.Predict)
	r.POST("/predict/async", h.PredictAsync)
	r.GET("/predictions", h.ListPredictions)
	r.GET("/predictions/:id", h.GetPrediction)

	// Metrics & serving
	r.GET("/stats", h.GetStats)
	r.GET("/serving/:name", h.GetServingStatus)
}
