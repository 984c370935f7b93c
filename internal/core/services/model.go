package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type ModelService struct {
	repo ports.ModelRepository
}

func NewModelService(repo ports.ModelRepository) *ModelService {
	return &ModelService{repo: repo}
}

func (s *ModelService) Create(ctx context.Context, name, description string) (*domain.Model, error) {
	if name == "" {
		return nil, domain.ErrInvalidModelName
	}

	model := &domain.Model{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Name:        name,
		Description: description,
	}

	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, model.ID)
}

func (s *ModelService) Get(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ModelService) List(ctx context.Context, filter ports.ModelListFilter) ([]*domain.Model, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}
