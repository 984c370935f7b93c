package domain

import (
	"time"

	"github.com/google/uuid"
)

type PredictionStatus string

const (
	PredictionStatusPending   PredictionStatus = "PENDING"
	PredictionStatusCompleted PredictionStatus = "COMPLETED"
	PredictionStatusFailed    PredictionStatus = "FAILED"
)

// Prediction is an append-only record of one inference call. Rows are created
// once and never mutated through the API; the async worker is the single
// writer of the terminal status.
type Prediction struct {
	ID             uuid.UUID        `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	ModelVersionID uuid.UUID        `json:"model_version_id"`
	Input          map[string]any   `json:"input"`
	Output         map[string]any   `json:"output,omitempty"`
	Confidence     float64          `json:"confidence"`
	DurationMillis int64            `json:"duration_ms"`
	Status         PredictionStatus `json:"status"`
	Error          string           `json:"error,omitempty"`

	// Joined on reads.
	ModelName string `json:"model_name,omitempty"`
	Version   string `json:"version,omitempty"`
}
