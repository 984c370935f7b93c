package domain

import "errors"

// Registry errors
var (
	ErrModelNotFound        = errors.New("model not found")
	ErrModelNameConflict    = errors.New("model with this name already exists")
	ErrInvalidModelName     = errors.New("model name is required")
	ErrVersionNotFound      = errors.New("model version not found")
	ErrVersionConflict      = errors.New("version already exists for this model")
	ErrInvalidVersionName   = errors.New("version is required")
	ErrInvalidArtifactURI   = errors.New("artifact URI is required")
	ErrUnsupportedFramework = errors.New("unsupported model framework")
)

// Serving errors
var (
	ErrNoActiveVersion  = errors.New("model has no active version")
	ErrVersionNotReady  = errors.New("model version is not ready")
	ErrInvalidInput     = errors.New("prediction input is required")
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrArtifactInvalid  = errors.New("model artifact is invalid")
	ErrQueueFull        = errors.New("prediction queue is full")
	ErrEngineStopped    = errors.New("prediction engine is stopped")
)

// Prediction log errors
var (
	ErrPredictionNotFound = errors.New("prediction not found")
)

// Integration errors
var (
	ErrServingProbeDisabled = errors.New("kubernetes serving probe is disabled")
	ErrServingNotFound      = errors.New("serving deployment not found")
)
