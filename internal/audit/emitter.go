package audit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sink persists audit records. *postgres.Client satisfies it; tests use
// in-memory fakes.
type Sink interface {
	Append(ts time.Time, event, skeletonID string, components, fixCount int, fixes []string, durationMS int64) error
}

var buffer = NewRingBuffer(256)

var (
	sink            Sink
	sinkMu          sync.RWMutex
	sinkErrorLogged bool

	logger = zap.NewNop()
)

// SetLogger sets the logger used for sink failures.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// SetSink sets the persistence sink for audit records. Passing nil disables
// persistence; setting a sink re-arms the one-shot failure log.
func SetSink(s Sink) {
	sinkMu.Lock()
	sink = s
	sinkErrorLogged = false
	sinkMu.Unlock()
}

// Emit records one repair run. The record is stamped, buffered, broadcast,
// and appended to the sink when one is set. A failing sink is logged once
// and never propagates to the caller.
func Emit(event, skeletonID string, components, fixCount int, fixes []string, duration time.Duration) (Record, error) {
	if err := Validate(event); err != nil {
		return Record{}, err
	}

	ts := time.Now().UTC()
	r := Record{
		Timestamp:  ts.Format(time.RFC3339Nano),
		Event:      event,
		SkeletonID: skeletonID,
		Components: components,
		FixCount:   fixCount,
		Fixes:      fixes,
		DurationMS: duration.Milliseconds(),
	}

	buffer.Add(r)
	broadcast(r)

	sinkMu.RLock()
	s := sink
	sinkMu.RUnlock()

	if s != nil {
		if err := s.Append(ts, r.Event, r.SkeletonID, r.Components, r.FixCount, r.Fixes, r.DurationMS); err != nil {
			// Log once to avoid spam; the trail must never fail a request.
			sinkMu.Lock()
			first := !sinkErrorLogged
			sinkErrorLogged = true
			sinkMu.Unlock()
			if first {
				logger.Error("audit sink append failed", zap.Error(err))
			}
		}
	}

	return r, nil
}

// Snapshot returns the buffered records, oldest first.
func Snapshot() []Record {
	return buffer.Snapshot()
}

// Clear resets the record buffer. Used for testing.
func Clear() {
	buffer.Clear()
}
