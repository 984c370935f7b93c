package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Collector counts requests and latencies for the /metrics scrape target.
// Global counters are lock-free; per-model-version counters sit behind a
// mutex because the label set is small and unbounded growth is capped by the
// registry size.
type Collector struct {
	requestsTotal  atomic.Int64
	requestsFailed atomic.Int64
	inflight       atomic.Int64
	queueDepth     atomic.Int64
	latencyNanos   atomic.Int64
	latencyMax     atomic.Int64

	mu       sync.Mutex
	byTarget map[string]*targetStats
}

type targetStats struct {
	model        string
	version      string
	requests     int64
	failures     int64
	latencyNanos int64
}

type Snapshot struct {
	RequestsTotal    int64           `json:"requests_total"`
	RequestsFailed   int64           `json:"requests_failed"`
	InFlight         int64           `json:"in_flight"`
	QueueDepth       int64           `json:"queue_depth"`
	AvgLatencyMillis float64         `json:"avg_latency_ms"`
	MaxLatencyMillis float64         `json:"max_latency_ms"`
	Models           []ModelSnapshot `json:"models"`
}

type ModelSnapshot struct {
	Model            string  `json:"model"`
	Version          string  `json:"version"`
	Requests         int64   `json:"requests"`
	Failures         int64   `json:"failures"`
	AvgLatencyMillis float64 `json:"avg_latency_ms"`
}

func NewCollector() *Collector {
	return &Collector{byTarget: make(map[string]*targetStats)}
}

func (c *Collector) RecordStart() {
	c.requestsTotal.Add(1)
	c.inflight.Add(1)
}

func (c *Collector) RecordDone(model, version string, latency time.Duration, success bool) {
	c.inflight.Add(-1)
	nanos := latency.Nanoseconds()
	if nanos < 0 {
		nanos = 0
	}
	c.latencyNanos.Add(nanos)
	updateAtomicMax(&c.latencyMax, nanos)
	if !success {
		c.requestsFailed.Add(1)
	}

	key := model + "\x00" + version
	c.mu.Lock()
	st, ok := c.byTarget[key]
	if !ok {
		st = &targetStats{model: model, version: version}
		c.byTarget[key] = st
	}
	st.requests++
	st.latencyNanos += nanos
	if !success {
		st.failures++
	}
	c.mu.Unlock()
}

func (c *Collector) SetQueueDepth(depth int) {
	c.queueDepth.Store(int64(depth))
}

func (c *Collector) Snapshot() Snapshot {
	requests := c.requestsTotal.Load()
	avg := 0.0
	if requests > 0 {
		avg = float64(c.latencyNanos.Load()) / float64(requests) / float64(time.Millisecond)
	}

	c.mu.Lock()
	models := make([]ModelSnapshot, 0, len(c.byTarget))
	for _, st := range c.byTarget {
		mAvg := 0.0
		if st.requests > 0 {
			mAvg = float64(st.latencyNanos) / float64(st.requests) / float64(time.Millisecond)
		}
		models = append(models, ModelSnapshot{
			Model:            st.model,
			Version:          st.version,
			Requests:         st.requests,
			Failures:         st.failures,
			AvgLatencyMillis: mAvg,
		})
	}
	c.mu.Unlock()

	sort.Slice(models, func(i, j int) bool {
		if models[i].Model != models[j].Model {
			return models[i].Model < models[j].Model
		}
		return models[i].Version < models[j].Version
	})

	return Snapshot{
		RequestsTotal:    requests,
		RequestsFailed:   c.requestsFailed.Load(),
		InFlight:         c.inflight.Load(),
		QueueDepth:       c.queueDepth.Load(),
		AvgLatencyMillis: avg,
		MaxLatencyMillis: float64(c.latencyMax.Load()) / float64(time.Millisecond),
		Models:           models,
	}
}

// PrometheusText renders the snapshot in the text exposition format.
func (s Snapshot) PrometheusText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "prediction_requests_total %d\n", s.RequestsTotal)
	fmt.Fprintf(&b, "prediction_requests_failed_total %d\n", s.RequestsFailed)
	fmt.Fprintf(&b, "prediction_inflight %d\n", s.InFlight)
	fmt.Fprintf(&b, "prediction_queue_depth %d\n", s.QueueDepth)
	fmt.Fprintf(&b, "prediction_latency_ms_avg %.6f\n", s.AvgLatencyMillis)
	fmt.Fprintf(&b, "prediction_latency_ms_max %.6f\n", s.MaxLatencyMillis)
	for _, m := range s.Models {
		labels := fmt.Sprintf(`{model=%q,version=%q}`, m.Model, m.Version)
		fmt.Fprintf(&b, "prediction_model_requests_total%s %d\n", labels, m.Requests)
		fmt.Fprintf(&b, "prediction_model_failures_total%s %d\n", labels, m.Failures)
		fmt.Fprintf(&b, "prediction_model_latency_ms_avg%s %.6f\n", labels, m.AvgLatencyMillis)
	}
	return b.String()
}

func updateAtomicMax(target *atomic.Int64, value int64) {
	for {
		current := target.Load()
		if value <= current {
			return
		}
		if target.CompareAndSwap(current, value) {
			return
		}
	}
}
