package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsEndpoint(t *testing.T) {
	f := setupRouter(t, nil)
	f.collector.RecordStart()
	f.collector.RecordDone("scorer", "v1", 5*time.Millisecond, true)

	w := doJSON(f.router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "prediction_requests_total 1")
	assert.Contains(t, w.Body.String(), `prediction_model_requests_total{model="scorer",version="v1"} 1`)
}

func TestGetStats(t *testing.T) {
	f := setupRouter(t, nil)
	f.collector.RecordStart()
	f.collector.RecordDone("scorer", "v1", 5*time.Millisecond, false)

	w := doJSON(f.router, http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["requests_total"])
	assert.Equal(t, float64(1), body["requests_failed"])
}

func TestGetServingStatus_ProbeDisabled(t *testing.T) {
	f := setupRouter(t, nil)

	w := doJSON(f.router, http.MethodGet, "/api/v1/serving/scorer", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
