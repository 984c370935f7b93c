package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"prediction-service/internal/core/domain"
	"prediction-service/internal/testutil"
)

func testVersion(uri string) *domain.ModelVersion {
	return &domain.ModelVersion{
		ID:          uuid.New(),
		ModelID:     uuid.New(),
		Version:     "v1",
		ArtifactURI: uri,
		Status:      domain.VersionStatusReady,
		ModelName:   "scorer",
	}
}

func TestRegistry_GetLoadsOnFirstUse(t *testing.T) {
	store := &testutil.MemArtifactStore{Artifacts: map[string][]byte{
		"file://scorer/v1.json": []byte(`{"kind":"linear","features":["x"],"weights":[1]}`),
	}}
	r := NewRegistry(store)
	v := testVersion("file://scorer/v1.json")

	assert.Equal(t, 0, r.Loaded())

	p, err := r.Get(context.Background(), v)
	assert.NoError(t, err)
	assert.Equal(t, "linear", p.Kind())
	assert.Equal(t, 1, r.Loaded())

	// Second lookup hits the cache even if the store loses the artifact.
	delete(store.Artifacts, "file://scorer/v1.json")
	again, err := r.Get(context.Background(), v)
	assert.NoError(t, err)
	assert.Same(t, p, again)
}

func TestRegistry_LoadMissingArtifact(t *testing.T) {
	r := NewRegistry(&testutil.MemArtifactStore{})
	v := testVersion("file://scorer/missing.json")

	_, err := r.Load(context.Background(), v)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	assert.Equal(t, 0, r.Loaded())
}

func TestRegistry_LoadInvalidArtifact(t *testing.T) {
	store := &testutil.MemArtifactStore{Artifacts: map[string][]byte{
		"file://scorer/bad.json": []byte(`{"kind":"nope"}`),
	}}
	r := NewRegistry(store)

	_, err := r.Load(context.Background(), testVersion("file://scorer/bad.json"))
	assert.ErrorIs(t, err, domain.ErrArtifactInvalid)
}

func TestRegistry_NoMatchingStore(t *testing.T) {
	r := NewRegistry()
	v := testVersion("s3://bucket/key.json")

	_, err := r.Get(context.Background(), v)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestRegistry_Evict(t *testing.T) {
	store := &testutil.MemArtifactStore{Artifacts: map[string][]byte{
		"file://scorer/v1.json": []byte(`{"kind":"linear","features":["x"],"weights":[1]}`),
	}}
	r := NewRegistry(store)
	v := testVersion("file://scorer/v1.json")

	_, err := r.Get(context.Background(), v)
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Loaded())

	r.Evict(v)
	assert.Equal(t, 0, r.Loaded())
}
