package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VersionStatus string

const (
	VersionStatusPending VersionStatus = "PENDING"
	VersionStatusReady   VersionStatus = "READY"
	VersionStatusFailed  VersionStatus = "FAILED"
)

// Frameworks accepted at version registration. Free-form strings are rejected
// so that dashboards can group on the label.
var SupportedFrameworks = map[string]bool{
	"sklearn":    true,
	"xgboost":    true,
	"tensorflow": true,
	"pytorch":    true,
	"onnx":       true,
	"lightgbm":   true,
	"builtin":    true,
}

func ValidateFramework(framework string) error {
	if framework == "" {
		return nil
	}
	if !SupportedFrameworks[strings.ToLower(framework)] {
		return ErrUnsupportedFramework
	}
	return nil
}

// Model is immutable after registration: only its version set grows.
type Model struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type ModelVersion struct {
	ID          uuid.UUID     `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ModelID     uuid.UUID     `json:"model_id"`
	Version     string        `json:"version"`
	ArtifactURI string        `json:"artifact_uri"`
	Framework   string        `json:"framework"`
	Active      bool          `json:"active"`
	Status      VersionStatus `json:"status"`

	// Joined from the model row on reads.
	ModelName string `json:"model_name,omitempty"`
}
