package services

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	"prediction-service/internal/metrics"
)

// Dispatcher runs queued prediction jobs on a fixed worker pool. The queue is
// bounded; a full queue rejects immediately so callers can shed load.
type Dispatcher struct {
	queue     chan func(context.Context)
	workers   int
	collector *metrics.Collector

	// mu orders Enqueue sends against the close in Stop: a send never races
	// the closed channel.
	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(workers, queueSize int, collector *metrics.Collector) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		queue:     make(chan func(context.Context), queueSize),
		workers:   workers,
		collector: collector,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func(worker int) {
			defer d.wg.Done()
			for task := range d.queue {
				d.collector.SetQueueDepth(len(d.queue))
				d.runTask(worker, task)
			}
		}(i)
	}
	log.WithField("workers", d.workers).Info("prediction dispatcher started")
}

// Stop rejects new jobs and drains the queue before returning.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	log.Info("prediction dispatcher stopped")
}

func (d *Dispatcher) Enqueue(task func(context.Context)) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return domain.ErrEngineStopped
	}
	select {
	case d.queue <- task:
		d.collector.SetQueueDepth(len(d.queue))
		return nil
	default:
		return domain.ErrQueueFull
	}
}

func (d *Dispatcher) Depth() int {
	return len(d.queue)
}

func (d *Dispatcher) runTask(worker int, task func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("worker", worker).Errorf("prediction job panic: %v", r)
		}
	}()
	task(context.Background())
}
