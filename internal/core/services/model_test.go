package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/testutil"
)

func TestModelService_Create(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	modelID := uuid.New()
	returned := &domain.Model{
		ID:          modelID,
		CreatedAt:   time.Now(),
		Name:        "fraud-detector",
		Description: "desc",
	}

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Model")).Return(nil)
	repo.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(returned, nil)

	model, err := svc.Create(context.Background(), "fraud-detector", "desc")
	assert.NoError(t, err)
	assert.Equal(t, "fraud-detector", model.Name)
	repo.AssertExpectations(t)
}

func TestModelService_Create_EmptyName(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	_, err := svc.Create(context.Background(), "", "desc")
	assert.ErrorIs(t, err, domain.ErrInvalidModelName)
}

func TestModelService_Create_NameConflict(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Model")).Return(domain.ErrModelNameConflict)

	_, err := svc.Create(context.Background(), "dup", "desc")
	assert.ErrorIs(t, err, domain.ErrModelNameConflict)
}

func TestModelService_Get_NotFound(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrModelNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestModelService_List_DefaultLimit(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	filter := ports.ModelListFilter{Limit: 0}
	expectedFilter := filter
	expectedFilter.Limit = 20

	repo.On("List", mock.Anything, expectedFilter).Return([]*domain.Model{}, 0, nil)

	_, _, err := svc.List(context.Background(), filter)
	assert.NoError(t, err)
}

func TestModelService_List_LimitCap(t *testing.T) {
	repo := new(testutil.MockModelRepo)
	svc := NewModelService(repo)

	filter := ports.ModelListFilter{Limit: 500}
	expectedFilter := filter
	expectedFilter.Limit = 100

	repo.On("List", mock.Anything, expectedFilter).Return([]*domain.Model{}, 0, nil)

	_, _, err := svc.List(context.Background(), filter)
	assert.NoError(t, err)
}
