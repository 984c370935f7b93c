package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
	"prediction-service/internal/engine"
	"prediction-service/internal/metrics"
)

// PredictorRegistry is the engine surface the services need: cached lookup,
// explicit load, and a residency count for health reporting.
type PredictorRegistry interface {
	Get(ctx context.Context, version *domain.ModelVersion) (engine.Predictor, error)
	Load(ctx context.Context, version *domain.ModelVersion) (engine.Predictor, error)
	Loaded() int
}

// PredictService is the request router: it resolves model and version, runs
// inference, logs the prediction, and updates the metrics collector.
type PredictService struct {
	models      ports.ModelRepository
	versions    ports.ModelVersionRepository
	predictions ports.PredictionRepository
	registry    PredictorRegistry
	collector   *metrics.Collector
	publisher   ports.EventPublisher
	dispatcher  *Dispatcher
	timeout     time.Duration
}

func NewPredictService(
	models ports.ModelRepository,
	versions ports.ModelVersionRepository,
	predictions ports.PredictionRepository,
	registry PredictorRegistry,
	collector *metrics.Collector,
	publisher ports.EventPublisher,
	dispatcher *Dispatcher,
	timeout time.Duration,
) *PredictService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PredictService{
		models:      models,
		versions:    versions,
		predictions: predictions,
		registry:    registry,
		collector:   collector,
		publisher:   publisher,
		dispatcher:  dispatcher,
		timeout:     timeout,
	}
}

// resolve maps a model name plus optional version string to a concrete
// version row. Empty version means the active one.
func (s *PredictService) resolve(ctx context.Context, modelName, version string) (*domain.ModelVersion, error) {
	model, err := s.models.GetByName(ctx, modelName)
	if err != nil {
		return nil, err
	}

	var mv *domain.ModelVersion
	if version == "" {
		mv, err = s.versions.GetActive(ctx, model.ID)
	} else {
		mv, err = s.versions.GetByModelAndVersion(ctx, model.ID, version)
	}
	if err != nil {
		return nil, err
	}

	if mv.Status != domain.VersionStatusReady {
		return nil, domain.ErrVersionNotReady
	}
	return mv, nil
}

// Predict runs a synchronous prediction. Inference failures are still
// persisted as FAILED rows before the error propagates.
func (s *PredictService) Predict(ctx context.Context, modelName, version string, input map[string]any) (*domain.Prediction, error) {
	if modelName == "" {
		return nil, domain.ErrInvalidModelName
	}
	if len(input) == 0 {
		return nil, domain.ErrInvalidInput
	}

	mv, err := s.resolve(ctx, modelName, version)
	if err != nil {
		return nil, err
	}

	predictor, err := s.registry.Get(ctx, mv)
	if err != nil {
		return nil, err
	}

	s.collector.RecordStart()
	start := time.Now()

	predictCtx, cancel := context.WithTimeout(ctx, s.timeout)
	result, inferErr := predictor.Predict(predictCtx, input)
	cancel()

	elapsed := time.Since(start)
	s.collector.RecordDone(mv.ModelName, mv.Version, elapsed, inferErr == nil)

	now := time.Now()
	p := &domain.Prediction{
		ID:             uuid.New(),
		CreatedAt:      start,
		CompletedAt:    &now,
		ModelVersionID: mv.ID,
		Input:          input,
		DurationMillis: elapsed.Milliseconds(),
		ModelName:      mv.ModelName,
		Version:        mv.Version,
	}

	if inferErr != nil {
		p.Status = domain.PredictionStatusFailed
		p.Error = inferErr.Error()
		if createErr := s.predictions.Create(ctx, p); createErr != nil {
			log.WithError(createErr).Error("persist failed prediction")
		}
		return nil, inferErr
	}

	p.Status = domain.PredictionStatusCompleted
	p.Output = result.Output
	p.Confidence = result.Confidence

	if err := s.predictions.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publishCompleted(ctx, p)
	return p, nil
}

// PredictAsync queues a prediction for background execution and returns the
// PENDING record. A full queue is surfaced as backpressure after the row is
// marked FAILED.
func (s *PredictService) PredictAsync(ctx context.Context, modelName, version string, input map[string]any) (*domain.Prediction, error) {
	if modelName == "" {
		return nil, domain.ErrInvalidModelName
	}
	if len(input) == 0 {
		return nil, domain.ErrInvalidInput
	}

	mv, err := s.resolve(ctx, modelName, version)
	if err != nil {
		return nil, err
	}

	p := &domain.Prediction{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		ModelVersionID: mv.ID,
		Input:          input,
		Status:         domain.PredictionStatusPending,
		ModelName:      mv.ModelName,
		Version:        mv.Version,
	}
	if err := s.predictions.Create(ctx, p); err != nil {
		return nil, err
	}

	predictionID := p.ID
	job := func(jobCtx context.Context) {
		s.execute(jobCtx, predictionID, mv, input)
	}

	if err := s.dispatcher.Enqueue(job); err != nil {
		s.failPrediction(ctx, predictionID, err.Error(), time.Now())
		return nil, err
	}
	return p, nil
}

// execute is the dispatcher-side half of an async prediction.
func (s *PredictService) execute(ctx context.Context, predictionID uuid.UUID, mv *domain.ModelVersion, input map[string]any) {
	predictor, err := s.registry.Get(ctx, mv)
	if err != nil {
		s.failPrediction(ctx, predictionID, err.Error(), time.Now())
		return
	}

	s.collector.RecordStart()
	start := time.Now()

	predictCtx, cancel := context.WithTimeout(ctx, s.timeout)
	result, inferErr := predictor.Predict(predictCtx, input)
	cancel()

	elapsed := time.Since(start)
	s.collector.RecordDone(mv.ModelName, mv.Version, elapsed, inferErr == nil)

	now := time.Now()
	p := &domain.Prediction{
		ID:             predictionID,
		CompletedAt:    &now,
		ModelVersionID: mv.ID,
		DurationMillis: elapsed.Milliseconds(),
		ModelName:      mv.ModelName,
		Version:        mv.Version,
	}

	if inferErr != nil {
		p.Status = domain.PredictionStatusFailed
		p.Error = inferErr.Error()
	} else {
		p.Status = domain.PredictionStatusCompleted
		p.Output = result.Output
		p.Confidence = result.Confidence
	}

	if err := s.predictions.Complete(ctx, p); err != nil {
		log.WithError(err).WithField("prediction_id", predictionID).Error("complete prediction")
		return
	}

	if p.Status == domain.PredictionStatusCompleted {
		s.publishCompleted(ctx, p)
	}
}

func (s *PredictService) failPrediction(ctx context.Context, id uuid.UUID, reason string, at time.Time) {
	p := &domain.Prediction{
		ID:          id,
		CompletedAt: &at,
		Status:      domain.PredictionStatusFailed,
		Error:       reason,
	}
	if err := s.predictions.Complete(ctx, p); err != nil {
		log.WithError(err).WithField("prediction_id", id).Error("mark prediction failed")
	}
}

func (s *PredictService) publishCompleted(ctx context.Context, p *domain.Prediction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPredictionCompleted(ctx, p); err != nil {
		log.WithError(err).WithField("prediction_id", p.ID).Warn("publish prediction event")
	}
}
