// Package dispatch delivers a lead record to the configured sinks on a best
// effort basis.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"merkaz_backend/internal/leads/domain"
	"merkaz_backend/internal/observability/metrics"
	"merkaz_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrSinkTimeout marks a sink that did not settle within the timeout.
	ErrSinkTimeout = errors.New("sink timed out")
	// ErrSinkPanic marks a sink that panicked.
	ErrSinkPanic = errors.New("sink panicked")
)

// Sink is one delivery target for lead records.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec domain.Record) error
}

// Outcome is the settled result of one sink attempt.
type Outcome struct {
	Sink     string
	Err      error
	Duration time.Duration
}

// OK reports whether the sink accepted the record.
func (o Outcome) OK() bool { return o.Err == nil }

func (o Outcome) status() string {
	switch {
	case o.Err == nil:
		return "ok"
	case errors.Is(o.Err, ErrSinkTimeout), errors.Is(o.Err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

// Dispatcher fans a record out to every sink concurrently and waits for all
// of them to settle. Sink failures never reach the caller.
type Dispatcher struct {
	sinks   []Sink
	timeout time.Duration
	metrics *metrics.LeadMetrics
	log     *logger.Logger
}

// New drops nil sinks. A zero timeout leaves deliveries unbounded.
func New(sinks []Sink, timeout time.Duration, m *metrics.LeadMetrics, log *logger.Logger) *Dispatcher {
	active := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher{sinks: active, timeout: timeout, metrics: m, log: log}
}

// SinkNames lists the enabled sinks in dispatch order.
func (d *Dispatcher) SinkNames() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Dispatch delivers rec to every sink and returns one outcome per sink, in
// sink order. Cancelling ctx does not abort deliveries already started; each
// one is bounded by the dispatcher timeout instead.
func (d *Dispatcher) Dispatch(ctx context.Context, rec domain.Record) []Outcome {
	outcomes := make([]Outcome, len(d.sinks))
	base := context.WithoutCancel(ctx)

	var g errgroup.Group
	for i, sink := range d.sinks {
		i, sink := i, sink
		g.Go(func() error {
			outcomes[i] = d.deliver(base, sink, rec)
			return nil
		})
	}
	_ = g.Wait()

	log := d.log.WithContext(ctx)
	failed := 0
	for _, out := range outcomes {
		d.metrics.ObserveSink(out.Sink, out.status(), out.Duration)
		if !out.OK() {
			failed++
			log.SinkFailed(out.Sink, out.Duration, out.Err)
		}
	}
	log.LeadDispatched(rec.Source, rec.Locale, len(outcomes), failed)

	return outcomes
}

func (d *Dispatcher) deliver(ctx context.Context, sink Sink, rec domain.Record) Outcome {
	start := time.Now()
	sinkCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		sinkCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	// A sink that ignores its context must not hold the caller past the
	// timeout, so delivery runs on its own goroutine.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrSinkPanic, r)
			}
		}()
		done <- sink.Deliver(sinkCtx, rec)
	}()

	var err error
	select {
	case err = <-done:
	case <-sinkCtx.Done():
		err = fmt.Errorf("%w after %s: %w", ErrSinkTimeout, d.timeout, sinkCtx.Err())
	}

	return Outcome{Sink: sink.Name(), Err: err, Duration: time.Since(start)}
}
