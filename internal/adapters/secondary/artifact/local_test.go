package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"prediction-service/internal/core/domain"
)

func TestLocalStore_Supports(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	assert.True(t, s.Supports("file://scorer/v1.json"))
	assert.False(t, s.Supports("s3://bucket/key.json"))
	assert.False(t, s.Supports("/scorer/v1.json"))
}

func TestLocalStore_Fetch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scorer")
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "v1.json"), []byte(`{"kind":"linear"}`), 0o644))

	s := NewLocalStore(root)
	data, err := s.Fetch(context.Background(), "file://scorer/v1.json")
	assert.NoError(t, err)
	assert.Equal(t, `{"kind":"linear"}`, string(data))
}

func TestLocalStore_Fetch_NotFound(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	_, err := s.Fetch(context.Background(), "file://missing.json")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestLocalStore_Fetch_ConfinedToRoot(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside.json")
	assert.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	defer os.Remove(outside)

	s := NewLocalStore(root)
	_, err := s.Fetch(context.Background(), "file://../outside.json")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
