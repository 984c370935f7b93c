package testutil

import (
	"context"
	"fmt"

	"prediction-service/internal/core/domain"
)

// MemArtifactStore serves artifacts from an in-memory map, keyed by URI.
type MemArtifactStore struct {
	Artifacts map[string][]byte
}

func (s *MemArtifactStore) Supports(string) bool { return true }

func (s *MemArtifactStore) Fetch(_ context.Context, uri string) ([]byte, error) {
	data, ok := s.Artifacts[uri]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, uri)
	}
	return data, nil
}
