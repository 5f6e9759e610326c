package metrics

import (
	"sync"
	"time"
)

type callStats struct {
	calls           int
	errors          int
	rejected        int
	lastStatus      int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about remote store calls and
// repository operations, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*callStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*callStats),
		otel:  otel,
	}
}

// RecordRemoteCall increments counters for a remote store call and stores the last observed latency.
func (r *Recorder) RecordRemoteCall(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.update(op, func(stats *callStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordRemoteCall(op, duration, err)
	}
}

// RecordRejected tracks a non-2xx answer from the remote store.
func (r *Recorder) RecordRejected(op string, status int) {
	if r == nil {
		return
	}

	r.update(op, func(stats *callStats) {
		stats.rejected++
		stats.lastStatus = status
	})
	if r.otel != nil {
		r.otel.recordRejected(op, status)
	}
}

// RemoteCalls returns the total attempts recorded for an operation.
func (r *Recorder) RemoteCalls(op string) int {
	return r.Snapshot(op).Calls
}

// RemoteErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) RemoteErrors(op string) int {
	return r.Snapshot(op).Errors
}

// Rejections returns the number of non-2xx answers seen for an operation.
func (r *Recorder) Rejections(op string) int {
	return r.Snapshot(op).Rejected
}

// LastCallLatency returns the last recorded latency for an operation.
func (r *Recorder) LastCallLatency(op string) time.Duration {
	return r.Snapshot(op).LastCallLatency
}

// Snapshot returns a copy of the current stats for the operation.
type Snapshot struct {
	Calls           int
	Errors          int
	Rejected        int
	LastStatus      int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(op)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Rejected:        stats.rejected,
		LastStatus:      stats.lastStatus,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRepositoryOp tracks a storage operation on the server side.
func (r *Recorder) RecordRepositoryOp(op string, duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRepositoryOp(op, duration, err)
}

func (r *Recorder) update(op string, fn func(*callStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[op]
	if !ok {
		stats = &callStats{}
		r.stats[op] = stats
	}
	fn(stats)
}

func (r *Recorder) snapshot(op string) callStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[op]; ok && stats != nil {
		return *stats
	}
	return callStats{}
}
