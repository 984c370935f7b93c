package dto

import (
	"time"

	"github.com/google/uuid"

	"prediction-service/internal/core/domain"
)

type CreateModelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ModelResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListModelsResponse struct {
	Items      []ModelResponse `json:"items"`
	Total      int             `json:"total"`
	PageSize   int             `json:"page_size"`
	NextOffset int             `json:"next_offset"`
}

func ToModelResponse(m *domain.Model) ModelResponse {
	return ModelResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

type CreateModelVersionRequest struct {
	Version     string `json:"version" binding:"required"`
	ArtifactURI string `json:"artifact_uri" binding:"required"`
	Framework   string `json:"framework"`
}

type ModelVersionResponse struct {
	ID          uuid.UUID `json:"id"`
	ModelID     uuid.UUID `json:"model_id"`
	ModelName   string    `json:"model_name,omitempty"`
	Version     string    `json:"version"`
	ArtifactURI string    `json:"artifact_uri"`
	Framework   string    `json:"framework,omitempty"`
	Active      bool      `json:"active"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToModelVersionResponse(v *domain.ModelVersion) ModelVersionResponse {
	return ModelVersionResponse{
		ID:          v.ID,
		ModelID:     v.ModelID,
		ModelName:   v.ModelName,
		Version:     v.Version,
		ArtifactURI: v.ArtifactURI,
		Framework:   v.Framework,
		Active:      v.Active,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
