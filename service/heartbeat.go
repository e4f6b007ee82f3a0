package service

import (
	"context"
	"sync"
	"time"

	"myfabric/domain"
	"myfabric/metrics"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// heartbeat refreshes the presence of one instance on a fixed interval. Refreshes never overlap:
// the loop and the first write done by Register both go through beat. Failures are absorbed: after threshold consecutive failures one
// degraded event is emitted, the next success emits a recovered event. The loop never deregisters;
// if the store stays unreachable the presence key expires on its own.
type heartbeat struct {
	id        domain.InstanceID
	interval  time.Duration
	threshold int
	clock     clock.Clock
	metrics   *metrics.Metrics
	logger    log.Logger
	onEvent   func(domain.LivenessEvent)
	refresh   func(ctx context.Context) error

	beatMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// owned by the loop goroutine
	failures int
	degraded bool
}

func newHeartbeat(
	id domain.InstanceID,
	interval time.Duration,
	threshold int,
	clk clock.Clock,
	m *metrics.Metrics,
	logger log.Logger,
	onEvent func(domain.LivenessEvent),
	refresh func(ctx context.Context) error,
) *heartbeat {
	return &heartbeat{
		id:        id,
		interval:  interval,
		threshold: threshold,
		clock:     clk,
		metrics:   m,
		logger:    log.With(logger, "instance_id", id),
		onEvent:   onEvent,
		refresh:   refresh,
	}
}

// start launches the loop; calling it on a running heartbeat does nothing. The loop outlives the
// cancellation of ctx and is stopped only by stop.
func (h *heartbeat) start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h.cancel = cancel
	h.done = make(chan struct{})
	ticker := h.clock.Ticker(h.interval)

	go func(done chan struct{}) {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				h.tick(loopCtx)
			}
		}
	}(h.done)
}

// stop cancels the loop and waits for an in-flight refresh to finish; idempotent.
func (h *heartbeat) stop() {
	h.mu.Lock()
	cancel, done := h.cancel, h.done
	h.cancel, h.done = nil, nil
	h.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// beat runs one refresh, waiting for any refresh already in flight.
func (h *heartbeat) beat(ctx context.Context) error {
	h.beatMu.Lock()
	defer h.beatMu.Unlock()
	return h.refresh(ctx)
}

// tick performs one refresh and updates the failure streak.
func (h *heartbeat) tick(ctx context.Context) {
	err := h.beat(ctx)
	if err != nil && ctx.Err() != nil {
		// stopping
		return
	}

	if err != nil {
		h.failures++
		h.metrics.ObserveHeartbeat(err, h.failures)
		level.Warn(h.logger).Log("msg", "Heartbeat failed", "consecutive_failures", h.failures, "err", err)
		if h.failures >= h.threshold && !h.degraded {
			h.degraded = true
			level.Error(h.logger).Log("msg", "Liveness degraded", "consecutive_failures", h.failures)
			h.onEvent(domain.LivenessEvent{
				InstanceID:          h.id,
				State:               domain.LivenessDegraded,
				ConsecutiveFailures: h.failures,
				Err:                 err,
				At:                  h.clock.Now().UTC(),
			})
		}
		return
	}

	h.metrics.ObserveHeartbeat(nil, 0)
	if h.degraded {
		level.Info(h.logger).Log("msg", "Liveness recovered", "after_failures", h.failures)
		h.onEvent(domain.LivenessEvent{
			InstanceID: h.id,
			State:      domain.LivenessRecovered,
			At:         h.clock.Now().UTC(),
		})
	}
	h.failures = 0
	h.degraded = false
}
