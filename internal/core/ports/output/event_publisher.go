package ports

import (
	"context"

	"prediction-service/internal/core/domain"
)

// EventPublisher emits prediction lifecycle events to an external bus.
// Publishing is best-effort: callers log failures and move on.
type EventPublisher interface {
	PublishPredictionCompleted(ctx context.Context, p *domain.Prediction) error
	Close() error
}
