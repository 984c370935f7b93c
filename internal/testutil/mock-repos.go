package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// MockModelRepo is a mock of ModelRepository.
type MockModelRepo struct {
	mock.Mock
}

func (m *MockModelRepo) Create(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) GetByName(ctx context.Context, name string) (*domain.Model, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) List(ctx context.Context, filter ports.ModelListFilter) ([]*domain.Model, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Model), args.Int(1), args.Error(2)
}

// MockModelVersionRepo is a mock of ModelVersionRepository.
type MockModelVersionRepo struct {
	mock.Mock
}

func (m *MockModelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockModelVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByModelAndVersion(ctx context.Context, modelID uuid.UUID, version string) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetActive(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) ListByModel(ctx context.Context, modelID uuid.UUID) ([]*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VersionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockModelVersionRepo) Activate(ctx context.Context, modelID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, modelID, id)
	return args.Error(0)
}

// MockPredictionRepo is a mock of PredictionRepository.
type MockPredictionRepo struct {
	mock.Mock
}

func (m *MockPredictionRepo) Create(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPredictionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepo) List(ctx context.Context, filter ports.PredictionListFilter) ([]*domain.Prediction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Prediction), args.Int(1), args.Error(2)
}

func (m *MockPredictionRepo) Complete(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockEventPublisher is a mock of EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPredictionCompleted(ctx context.Context, p *domain.Prediction) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
