package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type ModelVersionService struct {
	versions ports.ModelVersionRepository
	models   ports.ModelRepository
	registry PredictorRegistry
}

func NewModelVersionService(versions ports.ModelVersionRepository, models ports.ModelRepository, registry PredictorRegistry) *ModelVersionService {
	return &ModelVersionService{versions: versions, models: models, registry: registry}
}

// Create registers a version and eagerly loads its artifact. The status
// reflects the load outcome: READY when the predictor parsed, FAILED when the
// artifact is missing or malformed.
func (s *ModelVersionService) Create(ctx context.Context, modelID uuid.UUID, version, artifactURI, framework string) (*domain.ModelVersion, error) {
	if version == "" {
		return nil, domain.ErrInvalidVersionName
	}
	if artifactURI == "" {
		return nil, domain.ErrInvalidArtifactURI
	}
	if err := domain.ValidateFramework(framework); err != nil {
		return nil, err
	}

	model, err := s.models.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mv := &domain.ModelVersion{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ModelID:     model.ID,
		Version:     version,
		ArtifactURI: artifactURI,
		Framework:   framework,
		Active:      false,
		Status:      domain.VersionStatusPending,
		ModelName:   model.Name,
	}

	if err := s.versions.Create(ctx, mv); err != nil {
		return nil, err
	}

	status := domain.VersionStatusReady
	if _, err := s.registry.Load(ctx, mv); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model":   model.Name,
			"version": version,
		}).Warn("artifact load failed")
		status = domain.VersionStatusFailed
	}
	if err := s.versions.SetStatus(ctx, mv.ID, status); err != nil {
		return nil, err
	}

	return s.versions.GetByID(ctx, mv.ID)
}

func (s *ModelVersionService) Get(ctx context.Context, modelID uuid.UUID, version string) (*domain.ModelVersion, error) {
	if version == "" {
		return nil, domain.ErrInvalidVersionName
	}
	return s.versions.GetByModelAndVersion(ctx, modelID, version)
}

func (s *ModelVersionService) List(ctx context.Context, modelID uuid.UUID) ([]*domain.ModelVersion, error) {
	if _, err := s.models.GetByID(ctx, modelID); err != nil {
		return nil, err
	}
	return s.versions.ListByModel(ctx, modelID)
}

// Activate promotes one READY version and demotes its siblings.
func (s *ModelVersionService) Activate(ctx context.Context, modelID uuid.UUID, version string) (*domain.ModelVersion, error) {
	mv, err := s.Get(ctx, modelID, version)
	if err != nil {
		return nil, err
	}
	if mv.Status != domain.VersionStatusReady {
		return nil, domain.ErrVersionNotReady
	}

	if err := s.versions.Activate(ctx, modelID, mv.ID); err != nil {
		return nil, err
	}

	return s.versions.GetByID(ctx, mv.ID)
}
