package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prediction-service/internal/core/domain"
)

func TestCreateModel(t *testing.T) {
	f := setupRouter(t, nil)

	created := &domain.Model{ID: uuid.New(), Name: "scorer", Description: "credit scorer"}
	f.models.On("Create", mock.Anything, mock.AnythingOfType("*domain.Model")).Return(nil)
	f.models.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(created, nil)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models", map[string]any{
		"name":        "scorer",
		"description": "credit scorer",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "scorer", body["name"])
}

func TestCreateModel_MissingName(t *testing.T) {
	f := setupRouter(t, nil)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models", map[string]any{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateModel_Conflict(t *testing.T) {
	f := setupRouter(t, nil)

	f.models.On("Create", mock.Anything, mock.AnythingOfType("*domain.Model")).Return(domain.ErrModelNameConflict)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models", map[string]any{"name": "dup"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetModel_InvalidID(t *testing.T) {
	f := setupRouter(t, nil)

	w := doJSON(f.router, http.MethodGet, "/api/v1/models/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetModel_NotFound(t *testing.T) {
	f := setupRouter(t, nil)

	id := uuid.New()
	f.models.On("GetByID", mock.Anything, id).Return(nil, domain.ErrModelNotFound)

	w := doJSON(f.router, http.MethodGet, "/api/v1/models/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListModels(t *testing.T) {
	f := setupRouter(t, nil)

	models := []*domain.Model{
		{ID: uuid.New(), Name: "a"},
		{ID: uuid.New(), Name: "b"},
	}
	f.models.On("List", mock.Anything, mock.Anything).Return(models, 2, nil)

	w := doJSON(f.router, http.MethodGet, "/api/v1/models?limit=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["total"])
	assert.Len(t, body["items"], 2)
}

func TestListModels_PageSizeReflectsCap(t *testing.T) {
	f := setupRouter(t, nil)

	f.models.On("List", mock.Anything, mock.Anything).Return([]*domain.Model{}, 0, nil)

	w := doJSON(f.router, http.MethodGet, "/api/v1/models?limit=1000", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(100), body["page_size"])
}

func TestCreateModelVersion(t *testing.T) {
	artifact := `{"kind":"linear","features":["x"],"weights":[1]}`
	f := setupRouter(t, map[string][]byte{"file://scorer/v1.json": []byte(artifact)})

	modelID := uuid.New()
	f.models.On("GetByID", mock.Anything, modelID).Return(&domain.Model{ID: modelID, Name: "scorer"}, nil)
	f.versions.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).Return(nil)
	f.versions.On("SetStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.VersionStatusReady).Return(nil)
	f.versions.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Version: "v1", Status: domain.VersionStatusReady}, nil)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models/"+modelID.String()+"/versions", map[string]any{
		"version":      "v1",
		"artifact_uri": "file://scorer/v1.json",
		"framework":    "sklearn",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "READY", body["status"])
}

func TestCreateModelVersion_UnsupportedFramework(t *testing.T) {
	f := setupRouter(t, nil)

	modelID := uuid.New()
	w := doJSON(f.router, http.MethodPost, "/api/v1/models/"+modelID.String()+"/versions", map[string]any{
		"version":      "v1",
		"artifact_uri": "file://scorer/v1.json",
		"framework":    "fortran",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivateModelVersion(t *testing.T) {
	f := setupRouter(t, nil)

	modelID := uuid.New()
	versionID := uuid.New()
	ready := &domain.ModelVersion{ID: versionID, ModelID: modelID, Version: "v2", Status: domain.VersionStatusReady}

	f.versions.On("GetByModelAndVersion", mock.Anything, modelID, "v2").Return(ready, nil)
	f.versions.On("Activate", mock.Anything, modelID, versionID).Return(nil)
	f.versions.On("GetByID", mock.Anything, versionID).
		Return(&domain.ModelVersion{ID: versionID, ModelID: modelID, Version: "v2", Active: true, Status: domain.VersionStatusReady}, nil)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models/"+modelID.String()+"/versions/v2/activate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["active"])
}

func TestActivateModelVersion_NotReady(t *testing.T) {
	f := setupRouter(t, nil)

	modelID := uuid.New()
	failed := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Version: "v3", Status: domain.VersionStatusFailed}
	f.versions.On("GetByModelAndVersion", mock.Anything, modelID, "v3").Return(failed, nil)

	w := doJSON(f.router, http.MethodPost, "/api/v1/models/"+modelID.String()+"/versions/v3/activate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
