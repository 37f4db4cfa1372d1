package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merkaz_backend/internal/leads/domain"
	"merkaz_backend/internal/observability/metrics"
	"merkaz_backend/platform/logger"
)

type fakeSink struct {
	name   string
	err    error
	delay  time.Duration
	panics bool
	calls  atomic.Int32
	mu     sync.Mutex
	got    []domain.Record
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Deliver(ctx context.Context, rec domain.Record) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.got = append(f.got, rec)
	f.mu.Unlock()
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.err
}

func newDispatcher(timeout time.Duration, sinks ...Sink) *Dispatcher {
	return New(sinks, timeout, metrics.NewLeadMetrics(prometheus.NewRegistry()), logger.Discard())
}

var testRecord = domain.Record{Source: "site", Locale: "fr", Name: "David", City: "Jérusalem"}

func TestDispatchWithNoSinksIsANoop(t *testing.T) {
	d := newDispatcher(time.Second)
	assert.Empty(t, d.Dispatch(context.Background(), testRecord))
	assert.Empty(t, d.SinkNames())
}

func TestDispatchOnlyCallsConfiguredSinks(t *testing.T) {
	mail := &fakeSink{name: SinkEmail}
	d := newDispatcher(time.Second, mail, nil)

	outcomes := d.Dispatch(context.Background(), testRecord)
	require.Len(t, outcomes, 1)
	assert.Equal(t, SinkEmail, outcomes[0].Sink)
	assert.True(t, outcomes[0].OK())
	assert.Equal(t, int32(1), mail.calls.Load())
	assert.Equal(t, []string{SinkEmail}, d.SinkNames())

	sheet := &fakeSink{name: SinkSheet}
	d = newDispatcher(time.Second, sheet)
	outcomes = d.Dispatch(context.Background(), testRecord)
	require.Len(t, outcomes, 1)
	assert.Equal(t, SinkSheet, outcomes[0].Sink)
	assert.Equal(t, int32(1), sheet.calls.Load())
}

func TestDispatchAbsorbsSinkFailures(t *testing.T) {
	mail := &fakeSink{name: SinkEmail, err: errors.New("smtp: 535 auth failed")}
	sheet := &fakeSink{name: SinkSheet}
	d := newDispatcher(time.Second, mail, sheet)

	outcomes := d.Dispatch(context.Background(), testRecord)
	require.Len(t, outcomes, 2)
	assert.Equal(t, SinkEmail, outcomes[0].Sink)
	assert.Error(t, outcomes[0].Err)
	assert.Equal(t, "error", outcomes[0].status())
	assert.True(t, outcomes[1].OK())
	assert.Equal(t, int32(1), sheet.calls.Load(), "sheet must be attempted even when email fails")
	assert.Equal(t, testRecord, sheet.got[0])
}

func TestDispatchRecoversPanics(t *testing.T) {
	d := newDispatcher(time.Second, &fakeSink{name: SinkEmail, panics: true}, &fakeSink{name: SinkSheet})

	outcomes := d.Dispatch(context.Background(), testRecord)
	require.Len(t, outcomes, 2)
	assert.ErrorIs(t, outcomes[0].Err, ErrSinkPanic)
	assert.True(t, outcomes[1].OK())
}

func TestDispatchBoundsSlowSinks(t *testing.T) {
	slow := &fakeSink{name: SinkSheet, delay: 2 * time.Second}
	fast := &fakeSink{name: SinkEmail}
	d := newDispatcher(50*time.Millisecond, fast, slow)

	start := time.Now()
	outcomes := d.Dispatch(context.Background(), testRecord)
	elapsed := time.Since(start)

	require.Len(t, outcomes, 2)
	assert.Less(t, elapsed, time.Second, "dispatch must not wait for a sink past the timeout")
	assert.True(t, outcomes[0].OK())
	assert.ErrorIs(t, outcomes[1].Err, ErrSinkTimeout)
	assert.Equal(t, "timeout", outcomes[1].status())
}

func TestDispatchRunsSinksConcurrently(t *testing.T) {
	a := &fakeSink{name: SinkEmail, delay: 200 * time.Millisecond}
	b := &fakeSink{name: SinkSheet, delay: 200 * time.Millisecond}
	d := newDispatcher(time.Second, a, b)

	start := time.Now()
	d.Dispatch(context.Background(), testRecord)
	assert.Less(t, time.Since(start), 350*time.Millisecond)
}

func TestDispatchIgnoresCallerCancellation(t *testing.T) {
	sink := &fakeSink{name: SinkEmail, delay: 20 * time.Millisecond}
	d := newDispatcher(time.Second, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := d.Dispatch(ctx, testRecord)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].OK())
}
