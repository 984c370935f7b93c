package ports

import "context"

// ArtifactStore resolves a model version's artifact URI to its raw bytes.
// Implementations handle one scheme each (file://, s3://).
type ArtifactStore interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
	Supports(uri string) bool
}
