package dto

import (
	"time"

	"github.com/google/uuid"

	"prediction-service/internal/core/domain"
)

type PredictRequest struct {
	Model   string         `json:"model" binding:"required"`
	Version string         `json:"version"`
	Input   map[string]any `json:"input" binding:"required"`
}

type PredictionResponse struct {
	ID             uuid.UUID      `json:"id"`
	Model          string         `json:"model,omitempty"`
	Version        string         `json:"version,omitempty"`
	ModelVersionID uuid.UUID      `json:"model_version_id"`
	Input          map[string]any `json:"input,omitempty"`
	Output         map[string]any `json:"output,omitempty"`
	Confidence     float64        `json:"confidence"`
	DurationMillis int64          `json:"duration_ms"`
	Status         string         `json:"status"`
	Error          string         `json:"error,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

type ListPredictionsResponse struct {
	Items      []PredictionResponse `json:"items"`
	Total      int                  `json:"total"`
	PageSize   int                  `json:"page_size"`
	NextOffset int                  `json:"next_offset"`
}

func ToPredictionResponse(p *domain.Prediction) PredictionResponse {
	return PredictionResponse{
		ID:             p.ID,
		Model:          p.ModelName,
		Version:        p.Version,
		ModelVersionID: p.ModelVersionID,
		Input:          p.Input,
		Output:         p.Output,
		Confidence:     p.Confidence,
		DurationMillis: p.DurationMillis,
		Status:         string(p.Status),
		Error:          p.Error,
		CreatedAt:      p.CreatedAt,
		CompletedAt:    p.CompletedAt,
	}
}
