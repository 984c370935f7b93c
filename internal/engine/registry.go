package engine

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// Registry caches loaded predictors keyed by model version id. Artifacts are
// fetched once; later lookups hit the in-memory map.
type Registry struct {
	mu         sync.RWMutex
	predictors map[string]Predictor
	stores     []ports.ArtifactStore
}

func NewRegistry(stores ...ports.ArtifactStore) *Registry {
	return &Registry{
		predictors: make(map[string]Predictor),
		stores:     stores,
	}
}

// Get returns the predictor for the version, loading it on first use.
func (r *Registry) Get(ctx context.Context, version *domain.ModelVersion) (Predictor, error) {
	key := version.ID.String()

	r.mu.RLock()
	p, ok := r.predictors[key]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	return r.Load(ctx, version)
}

// Load fetches the artifact, parses it, and registers the predictor. Loading
// the same version twice is harmless: the second load wins.
func (r *Registry) Load(ctx context.Context, version *domain.ModelVersion) (Predictor, error) {
	store := r.storeFor(version.ArtifactURI)
	if store == nil {
		return nil, fmt.Errorf("%w: no store for %q", domain.ErrArtifactNotFound, version.ArtifactURI)
	}

	data, err := store.Fetch(ctx, version.ArtifactURI)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact %s: %w", version.ArtifactURI, err)
	}

	p, err := NewPredictor(data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.predictors[version.ID.String()] = p
	r.mu.Unlock()

	log.WithFields(log.Fields{
		"model":   version.ModelName,
		"version": version.Version,
		"kind":    p.Kind(),
	}).Info("predictor loaded")

	return p, nil
}

func (r *Registry) Evict(version *domain.ModelVersion) {
	r.mu.Lock()
	delete(r.predictors, version.ID.String())
	r.mu.Unlock()
}

// Loaded reports how many predictors are resident, for health reporting.
func (r *Registry) Loaded() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.predictors)
}

func (r *Registry) storeFor(uri string) ports.ArtifactStore {
	for _, s := range r.stores {
		if s.Supports(uri) {
			return s
		}
	}
	return nil
}
