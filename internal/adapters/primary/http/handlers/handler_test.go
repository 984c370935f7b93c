package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"prediction-service/internal/adapters/secondary/kube"
	"prediction-service/internal/config"
	"prediction-service/internal/core/services"
	"prediction-service/internal/engine"
	"prediction-service/internal/metrics"
	"prediction-service/internal/testutil"
)

type fixture struct {
	models      *testutil.MockModelRepo
	versions    *testutil.MockModelVersionRepo
	predictions *testutil.MockPredictionRepo
	collector   *metrics.Collector
	router      *gin.Engine
}

func setupRouter(t *testing.T, artifacts map[string][]byte) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		models:      new(testutil.MockModelRepo),
		versions:    new(testutil.MockModelVersionRepo),
		predictions: new(testutil.MockPredictionRepo),
		collector:   metrics.NewCollector(),
	}

	registry := engine.NewRegistry(&testutil.MemArtifactStore{Artifacts: artifacts})
	dispatcher := services.NewDispatcher(1, 8, f.collector)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	kubeClient, err := kube.NewKubeClient(&config.KubernetesConfig{Enabled: false})
	assert.NoError(t, err)

	h := New(
		services.NewModelService(f.models),
		services.NewModelVersionService(f.versions, f.models, registry),
		services.NewPredictService(f.models, f.versions, f.predictions, registry, f.collector, nil, dispatcher, time.Second),
		services.NewPredictionService(f.predictions),
		f.collector,
		kubeClient,
	)

	f.router = gin.New()
	f.router.GET("/metrics", h.Metrics)
	h.RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
