package embedding

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports build progress to a writer at a configurable
// interval. It is safe for concurrent use by the builder's workers. A nil
// writer disables output while keeping the counters live.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	reportInterval int

	mu           sync.Mutex
	processed    int
	lastReported int
	startTime    time.Time
}

// NewProgressTracker returns a tracker for total units of work that reports
// every reportInterval units. Intervals below 1 are raised to 1.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start records the start time for rate calculation.
func (t *ProgressTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startTime = time.Now()
}

// Update adds n processed units and reports if the interval was crossed.
func (t *ProgressTracker) Update(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed += n
	if t.processed-t.lastReported >= t.reportInterval || t.processed >= t.total {
		t.report()
		t.lastReported = t.processed
	}
}

// Increment adds a single processed unit.
func (t *ProgressTracker) Increment() {
	t.Update(1)
}

// Processed returns the number of units recorded so far.
func (t *ProgressTracker) Processed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

// Elapsed returns the time since Start was called.
func (t *ProgressTracker) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Finish emits a final report with the total elapsed time.
func (t *ProgressTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writer == nil {
		return
	}
	elapsed := time.Since(t.startTime)
	fmt.Fprintf(t.writer, "\nEmbedded %d entries in %s\n", t.processed, elapsed.Round(time.Millisecond))
}

// report writes a single progress line. Callers must hold t.mu.
func (t *ProgressTracker) report() {
	if t.writer == nil {
		return
	}

	percent := 0.0
	if t.total > 0 {
		percent = float64(t.processed) / float64(t.total) * 100
	}

	rate := 0.0
	if elapsed := time.Since(t.startTime).Seconds(); elapsed > 0 {
		rate = float64(t.processed) / elapsed
	}

	fmt.Fprintf(t.writer, "\rProgress: %d/%d (%.1f%%) - %.1f entries/s", t.processed, t.total, percent, rate)
}
