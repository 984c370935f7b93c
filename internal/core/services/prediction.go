package services

import (
	"context"

	"github.com/google/uuid"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// PredictionService reads the prediction log.
type PredictionService struct {
	repo ports.PredictionRepository
}

func NewPredictionService(repo ports.PredictionRepository) *PredictionService {
	return &PredictionService{repo: repo}
}

func (s *PredictionService) Get(ctx context.Context, id uuid.UUID) (*domain.Prediction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PredictionService) List(ctx context.Context, filter ports.PredictionListFilter) ([]*domain.Prediction, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}
