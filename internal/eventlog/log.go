package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Logger is the deterministic, append-only event stream for one
// simulation run. Every Emit call appends to the in-memory log in order;
// nothing here ever drops an event — determinism requires a
// byte-identical log for a given seed and configuration.
type Logger struct {
	mu     sync.Mutex // guards concurrent reads from an HTTP tail endpoint
	events []Event
	seq    uint64
}

// New returns an empty logger.
func New() *Logger { return &Logger{events: make([]Event, 0, 1024)} }

// Emit appends an event, assigning the next sequence number.
func (l *Logger) Emit(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.Sequence = l.seq
	l.seq++
	l.events = append(l.events, e)
}

// EmitSimple is a convenience wrapper for the common case of a unit/target
// pair plus a flat data map.
func (l *Logger) EmitSimple(tick uint32, kind Kind, unitID uint64, hasTarget bool, targetID uint64, data map[string]any) {
	e := Event{Tick: tick, Kind: kind, Data: data}
	if unitID != 0 {
		e.UnitID = idPtr(unitID)
	}
	if hasTarget {
		e.TargetID = idPtr(targetID)
	}
	l.Emit(e)
}

// Events returns a snapshot copy of the log so far.
func (l *Logger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len reports how many events have been recorded.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// AsyncWriter drains a Logger to an io.Writer in rate-limited batches,
// off the engine's tick-critical path. Unlike the live-arena ancestor of
// this type, the limiter here throttles disk-flush frequency only — it
// never causes an event to be dropped, since the in-memory Logger is
// always the complete, canonical record.
type AsyncWriter struct {
	logger  *Logger
	w       io.Writer
	limiter *rate.Limiter
	written int
}

// NewAsyncWriter returns a writer that flushes at most flushesPerSecond
// times per second.
func NewAsyncWriter(logger *Logger, w io.Writer, flushesPerSecond float64) *AsyncWriter {
	if flushesPerSecond <= 0 {
		flushesPerSecond = 20
	}
	return &AsyncWriter{logger: logger, w: w, limiter: rate.NewLimiter(rate.Limit(flushesPerSecond), 1)}
}

// Run drains new events to w as newline-delimited JSON until ctx is
// cancelled, then performs one final flush.
func (a *AsyncWriter) Run(ctx context.Context) error {
	bw := bufio.NewWriter(a.w)
	defer bw.Flush()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.flush(bw)
			return bw.Flush()
		case <-ticker.C:
			if a.limiter.Allow() {
				a.flush(bw)
			}
		}
	}
}

// FlushAll writes every event (regardless of what's already been flushed)
// as newline-delimited JSON, synchronously, so the output is complete even
// if the async drain fell behind.
func (a *AsyncWriter) FlushAll() error {
	bw := bufio.NewWriter(a.w)
	enc := json.NewEncoder(bw)
	for _, e := range a.logger.Events() {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (a *AsyncWriter) flush(bw *bufio.Writer) {
	events := a.logger.Events()
	enc := json.NewEncoder(bw)
	for ; a.written < len(events); a.written++ {
		_ = enc.Encode(events[a.written])
	}
}

// WriteHeader writes the replay header as the first JSONL line.
func WriteHeader(w io.Writer, h Header) error {
	enc := json.NewEncoder(w)
	return enc.Encode(h)
}
