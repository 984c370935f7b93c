package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"prediction-service/internal/core/domain"
)

// Predictor is a loaded inference callable. Implementations are immutable and
// safe for concurrent use.
type Predictor interface {
	Kind() string
	Predict(ctx context.Context, input map[string]any) (*Result, error)
}

type Result struct {
	Output     map[string]any
	Confidence float64
}

// artifactSpec is the on-disk artifact document (schema v1).
type artifactSpec struct {
	Schema    string               `json:"schema"`
	Kind      string               `json:"kind"`
	Features  []string             `json:"features"`
	Weights   []float64            `json:"weights"`
	Intercept float64              `json:"intercept"`
	Classes   []string             `json:"classes"`
	Centroids map[string][]float64 `json:"centroids"`
}

// NewPredictor parses an artifact document into a ready predictor.
func NewPredictor(data []byte) (Predictor, error) {
	var spec artifactSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactInvalid, err)
	}
	if spec.Schema != "" && spec.Schema != "v1" {
		return nil, fmt.Errorf("%w: unknown schema %q", domain.ErrArtifactInvalid, spec.Schema)
	}
	if len(spec.Features) == 0 {
		return nil, fmt.Errorf("%w: no features declared", domain.ErrArtifactInvalid)
	}

	switch spec.Kind {
	case "linear":
		if len(spec.Weights) != len(spec.Features) {
			return nil, fmt.Errorf("%w: %d weights for %d features", domain.ErrArtifactInvalid, len(spec.Weights), len(spec.Features))
		}
		return &linearPredictor{features: spec.Features, weights: spec.Weights, intercept: spec.Intercept}, nil
	case "logistic":
		if len(spec.Weights) != len(spec.Features) {
			return nil, fmt.Errorf("%w: %d weights for %d features", domain.ErrArtifactInvalid, len(spec.Weights), len(spec.Features))
		}
		classes := spec.Classes
		if len(classes) == 0 {
			classes = []string{"negative", "positive"}
		}
		if len(classes) != 2 {
			return nil, fmt.Errorf("%w: logistic artifacts need exactly 2 classes", domain.ErrArtifactInvalid)
		}
		return &logisticPredictor{features: spec.Features, weights: spec.Weights, intercept: spec.Intercept, classes: classes}, nil
	case "centroid":
		if len(spec.Centroids) == 0 {
			return nil, fmt.Errorf("%w: no centroids declared", domain.ErrArtifactInvalid)
		}
		for label, c := range spec.Centroids {
			if len(c) != len(spec.Features) {
				return nil, fmt.Errorf("%w: centroid %q has %d coordinates for %d features", domain.ErrArtifactInvalid, label, len(c), len(spec.Features))
			}
		}
		return &centroidPredictor{features: spec.Features, centroids: spec.Centroids}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrArtifactInvalid, spec.Kind)
	}
}

// featureVector pulls the declared features out of the request payload.
// The payload shape is {"features": {"name": number, ...}}.
func featureVector(input map[string]any, features []string) ([]float64, error) {
	raw, ok := input["features"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing features object", domain.ErrInvalidInput)
	}
	vec := make([]float64, len(features))
	for i, name := range features {
		v, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing feature %q", domain.ErrInvalidInput, name)
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: feature %q is not numeric", domain.ErrInvalidInput, name)
		}
		vec[i] = f
	}
	return vec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

type linearPredictor struct {
	features  []string
	weights   []float64
	intercept float64
}

func (p *linearPredictor) Kind() string { return "linear" }

func (p *linearPredictor) Predict(_ context.Context, input map[string]any) (*Result, error) {
	vec, err := featureVector(input, p.features)
	if err != nil {
		return nil, err
	}
	score := p.intercept
	for i, w := range p.weights {
		score += w * vec[i]
	}
	return &Result{
		Output:     map[string]any{"value": score},
		Confidence: 1.0,
	}, nil
}

type logisticPredictor struct {
	features  []string
	weights   []float64
	intercept float64
	classes   []string
}

func (p *logisticPredictor) Kind() string { return "logistic" }

func (p *logisticPredictor) Predict(_ context.Context, input map[string]any) (*Result, error) {
	vec, err := featureVector(input, p.features)
	if err != nil {
		return nil, err
	}
	score := p.intercept
	for i, w := range p.weights {
		score += w * vec[i]
	}
	prob := 1.0 / (1.0 + math.Exp(-score))

	label := p.classes[0]
	confidence := 1.0 - prob
	if prob >= 0.5 {
		label = p.classes[1]
		confidence = prob
	}
	return &Result{
		Output:     map[string]any{"label": label, "probability": prob},
		Confidence: confidence,
	}, nil
}

type centroidPredictor struct {
	features  []string
	centroids map[string][]float64
}

func (p *centroidPredictor) Kind() string { return "centroid" }

func (p *centroidPredictor) Predict(_ context.Context, input map[string]any) (*Result, error) {
	vec, err := featureVector(input, p.features)
	if err != nil {
		return nil, err
	}

	// Softmax over negative distances doubles as a confidence score. The
	// exponents are shifted by the nearest distance so the winner contributes
	// exp(0); without the shift every term underflows to 0 for far inputs and
	// the normalization divides by zero.
	dists := make(map[string]float64, len(p.centroids))
	minDist := math.Inf(1)
	for label, centroid := range p.centroids {
		var dist float64
		for i, c := range centroid {
			d := vec[i] - c
			dist += d * d
		}
		dist = math.Sqrt(dist)
		dists[label] = dist
		if dist < minDist {
			minDist = dist
		}
	}

	scores := make(map[string]float64, len(dists))
	var sum float64
	for label, dist := range dists {
		s := math.Exp(minDist - dist)
		scores[label] = s
		sum += s
	}

	best := ""
	bestScore := -1.0
	outScores := make(map[string]any, len(scores))
	for label, s := range scores {
		norm := s / sum
		outScores[label] = norm
		if norm > bestScore {
			best = label
			bestScore = norm
		}
	}
	return &Result{
		Output:     map[string]any{"label": best, "scores": outScores},
		Confidence: bestScore,
	}, nil
}
