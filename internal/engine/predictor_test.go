package engine

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"prediction-service/internal/core/domain"
)

func features(m map[string]any) map[string]any {
	return map[string]any{"features": m}
}

func TestNewPredictor_Linear(t *testing.T) {
	artifact := `{"schema":"v1","kind":"linear","features":["x","y"],"weights":[2,3],"intercept":1}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)
	assert.Equal(t, "linear", p.Kind())

	result, err := p.Predict(context.Background(), features(map[string]any{"x": 1.0, "y": 2.0}))
	assert.NoError(t, err)
	assert.InDelta(t, 9.0, result.Output["value"], 1e-9)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestNewPredictor_Logistic(t *testing.T) {
	artifact := `{"kind":"logistic","features":["a","b"],"weights":[1,1],"intercept":0,"classes":["ham","spam"]}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)
	assert.Equal(t, "logistic", p.Kind())

	result, err := p.Predict(context.Background(), features(map[string]any{"a": 3.0, "b": 3.0}))
	assert.NoError(t, err)
	assert.Equal(t, "spam", result.Output["label"])
	assert.Greater(t, result.Confidence, 0.99)

	result, err = p.Predict(context.Background(), features(map[string]any{"a": -3.0, "b": -3.0}))
	assert.NoError(t, err)
	assert.Equal(t, "ham", result.Output["label"])
}

func TestNewPredictor_LogisticDefaultClasses(t *testing.T) {
	artifact := `{"kind":"logistic","features":["a"],"weights":[1],"intercept":5}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)

	result, err := p.Predict(context.Background(), features(map[string]any{"a": 0.0}))
	assert.NoError(t, err)
	assert.Equal(t, "positive", result.Output["label"])
}

func TestNewPredictor_Centroid(t *testing.T) {
	artifact := `{"kind":"centroid","features":["x","y"],"centroids":{"red":[0,0],"blue":[10,10]}}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)
	assert.Equal(t, "centroid", p.Kind())

	result, err := p.Predict(context.Background(), features(map[string]any{"x": 1.0, "y": 1.0}))
	assert.NoError(t, err)
	assert.Equal(t, "red", result.Output["label"])
	assert.Greater(t, result.Confidence, 0.5)

	scores, ok := result.Output["scores"].(map[string]any)
	assert.True(t, ok)
	assert.Len(t, scores, 2)
}

func TestNewPredictor_CentroidFarInput(t *testing.T) {
	artifact := `{"kind":"centroid","features":["x"],"centroids":{"a":[0],"b":[1]}}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)

	result, err := p.Predict(context.Background(), features(map[string]any{"x": 1000.0}))
	assert.NoError(t, err)
	assert.Equal(t, "b", result.Output["label"])
	assert.False(t, math.IsNaN(result.Confidence))
	assert.Greater(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, 1.0)

	scores := result.Output["scores"].(map[string]any)
	for label, s := range scores {
		assert.False(t, math.IsNaN(s.(float64)), "score for %s is NaN", label)
	}

	_, err = json.Marshal(result.Output)
	assert.NoError(t, err)
}

func TestNewPredictor_InvalidArtifacts(t *testing.T) {
	cases := []struct {
		name     string
		artifact string
	}{
		{"not json", `{{{`},
		{"unknown schema", `{"schema":"v9","kind":"linear","features":["x"],"weights":[1]}`},
		{"unknown kind", `{"kind":"forest","features":["x"]}`},
		{"no features", `{"kind":"linear","weights":[1]}`},
		{"weight mismatch", `{"kind":"linear","features":["x","y"],"weights":[1]}`},
		{"logistic class count", `{"kind":"logistic","features":["x"],"weights":[1],"classes":["a","b","c"]}`},
		{"no centroids", `{"kind":"centroid","features":["x"]}`},
		{"centroid size mismatch", `{"kind":"centroid","features":["x","y"],"centroids":{"a":[1]}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPredictor([]byte(tc.artifact))
			assert.ErrorIs(t, err, domain.ErrArtifactInvalid)
		})
	}
}

func TestPredict_InvalidInput(t *testing.T) {
	artifact := `{"kind":"linear","features":["x","y"],"weights":[1,1]}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)

	_, err = p.Predict(context.Background(), map[string]any{"x": 1.0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.Predict(context.Background(), features(map[string]any{"x": 1.0}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.Predict(context.Background(), features(map[string]any{"x": 1.0, "y": "two"}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPredict_IntegerFeatures(t *testing.T) {
	artifact := `{"kind":"linear","features":["x"],"weights":[3]}`
	p, err := NewPredictor([]byte(artifact))
	assert.NoError(t, err)

	result, err := p.Predict(context.Background(), features(map[string]any{"x": 2}))
	assert.NoError(t, err)
	assert.InDelta(t, 6.0, result.Output["value"], 1e-9)
}
