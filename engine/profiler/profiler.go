package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Stats is a snapshot of the configuration statistics collected so far.
type Stats struct {
	// Configurations is the number of configurations attempted.
	Configurations int
	// Failures is the number of configurations that returned an error.
	Failures int
	// Last is the duration of the most recent configuration.
	Last time.Duration
	// Max is the longest configuration duration seen.
	Max time.Duration
	// Total is the summed duration of every configuration.
	Total time.Duration
	// LastAllocBytes is the heap allocated by the most recent configuration.
	LastAllocBytes uint64
}

// Average returns the mean configuration duration, 0 before the first configuration.
func (s Stats) Average() time.Duration {
	if s.Configurations == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Configurations)
}

// Profiler tracks how long graph configurations take and how much they allocate.
// It is safe for concurrent use so batch compilation can share one instance.
type Profiler struct {
	mu     sync.Mutex
	stats  Stats
	logger *slog.Logger
}

// Span measures one configuration. Obtain it from Begin and close it with End.
type Span struct {
	p          *Profiler
	label      string
	start      time.Time
	startAlloc uint64
}

// NewProfiler creates a new Profiler logging through the given logger.
//
// Parameters:
//   - logger: the logger, slog.Default() if nil
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{logger: logger.With("component", "profiler")}
}

// Begin starts measuring a configuration.
//
// Parameters:
//   - label: a label for the log line, usually the resolution
//
// Returns:
//   - *Span: the running measurement
func (p *Profiler) Begin(label string) *Span {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return &Span{p: p, label: label, start: time.Now(), startAlloc: ms.TotalAlloc}
}

// End stops the measurement, records it and logs a summary line.
//
// Parameters:
//   - err: the configuration result, counted as a failure when non-nil
//
// Returns:
//   - time.Duration: the measured duration
func (s *Span) End(err error) time.Duration {
	elapsed := time.Since(s.start)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	// TotalAlloc is cumulative, so the delta is what this configuration allocated (plus concurrent noise)
	alloc := ms.TotalAlloc - s.startAlloc

	s.p.mu.Lock()
	st := &s.p.stats
	st.Configurations++
	if err != nil {
		st.Failures++
	}
	st.Last = elapsed
	st.Total += elapsed
	st.Max = max(st.Max, elapsed)
	st.LastAllocBytes = alloc
	snapshot := *st
	s.p.mu.Unlock()

	s.p.logger.Info("configuration",
		"label", s.label,
		"ok", err == nil,
		"elapsed", elapsed,
		"avg", snapshot.Average(),
		"max", snapshot.Max,
		"allocKB", float64(alloc)/1024,
		"count", snapshot.Configurations,
	)
	return elapsed
}

// Stats returns a snapshot of the collected statistics.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
