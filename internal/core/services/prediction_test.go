package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/testutil"
)

func TestPredictionService_Get(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	svc := NewPredictionService(repo)

	id := uuid.New()
	expected := &domain.Prediction{ID: id, Status: domain.PredictionStatusCompleted}
	repo.On("GetByID", mock.Anything, id).Return(expected, nil)

	p, err := svc.Get(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, id, p.ID)
}

func TestPredictionService_Get_NotFound(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	svc := NewPredictionService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrPredictionNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrPredictionNotFound)
}

func TestPredictionService_List_DefaultLimit(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	svc := NewPredictionService(repo)

	expectedFilter := ports.PredictionListFilter{Limit: 20}
	repo.On("List", mock.Anything, expectedFilter).Return([]*domain.Prediction{}, 0, nil)

	_, _, err := svc.List(context.Background(), ports.PredictionListFilter{})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPredictionService_List_LimitCap(t *testing.T) {
	repo := new(testutil.MockPredictionRepo)
	svc := NewPredictionService(repo)

	status := domain.PredictionStatusFailed
	expectedFilter := ports.PredictionListFilter{Status: string(status), Limit: 100}
	repo.On("List", mock.Anything, expectedFilter).Return([]*domain.Prediction{}, 0, nil)

	_, _, err := svc.List(context.Background(), ports.PredictionListFilter{Status: string(status), Limit: 9999})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
