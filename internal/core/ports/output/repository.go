package ports

import (
	"context"

	"github.com/google/uuid"

	"prediction-service/internal/core/domain"
)

type ModelListFilter struct {
	Search string
	SortBy string
	Order  string
	Limit  int
	Offset int
}

type PredictionListFilter struct {
	ModelVersionID *uuid.UUID
	Status         string
	Limit          int
	Offset         int
}

type ModelRepository interface {
	Create(ctx context.Context, model *domain.Model) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Model, error)
	GetByName(ctx context.Context, name string) (*domain.Model, error)
	List(ctx context.Context, filter ModelListFilter) ([]*domain.Model, int, error)
}

type ModelVersionRepository interface {
	Create(ctx context.Context, version *domain.ModelVersion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error)
	GetByModelAndVersion(ctx context.Context, modelID uuid.UUID, version string) (*domain.ModelVersion, error)
	GetActive(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error)
	ListByModel(ctx context.Context, modelID uuid.UUID) ([]*domain.ModelVersion, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.VersionStatus) error
	// Activate marks the version active and deactivates every sibling in one
	// transaction.
	Activate(ctx context.Context, modelID uuid.UUID, id uuid.UUID) error
}

type PredictionRepository interface {
	Create(ctx context.Context, p *domain.Prediction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Prediction, error)
	List(ctx context.Context, filter PredictionListFilter) ([]*domain.Prediction, int, error)
	// Complete writes the terminal state of an async prediction exactly once.
	Complete(ctx context.Context, p *domain.Prediction) error
}
