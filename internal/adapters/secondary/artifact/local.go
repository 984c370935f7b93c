package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// LocalStore serves file:// artifact URIs from a configured root directory.
// Paths are confined to the root so a version row cannot point outside it.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Supports(uri string) bool {
	return strings.HasPrefix(uri, "file://")
}

func (s *LocalStore) Fetch(_ context.Context, uri string) ([]byte, error) {
	rel := strings.TrimPrefix(uri, "file://")
	path := filepath.Join(s.root, filepath.Clean("/"+rel))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, uri)
		}
		return nil, fmt.Errorf("read artifact %s: %w", uri, err)
	}
	return data, nil
}

var _ ports.ArtifactStore = (*LocalStore)(nil)
