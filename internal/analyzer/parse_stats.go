package analyzer

import (
	"fmt"
	"sync/atomic"

	"github.com/penwyp/go-sensor-verify/internal/util"
)

// PayloadStats holds per-run counters for payload cell parsing.
type PayloadStats struct {
	totalCells  int64
	parsedCells int64
	emptyCells  int64
	failures    int64
}

// NewPayloadStats creates a new PayloadStats instance.
func NewPayloadStats() *PayloadStats {
	return &PayloadStats{}
}

// IncrementParsed records a cell that produced a structured value.
func (ps *PayloadStats) IncrementParsed() {
	atomic.AddInt64(&ps.totalCells, 1)
	atomic.AddInt64(&ps.parsedCells, 1)
}

// IncrementEmpty records a cell that was empty on input.
func (ps *PayloadStats) IncrementEmpty() {
	atomic.AddInt64(&ps.totalCells, 1)
	atomic.AddInt64(&ps.emptyCells, 1)
}

// IncrementFailure records a cell that failed every parser stage.
func (ps *PayloadStats) IncrementFailure() {
	atomic.AddInt64(&ps.totalCells, 1)
	atomic.AddInt64(&ps.failures, 1)
}

// GetStats returns the current counters and parse success rate.
func (ps *PayloadStats) GetStats() (total, parsed, empty, failures int64, parseRate float64) {
	total = atomic.LoadInt64(&ps.totalCells)
	parsed = atomic.LoadInt64(&ps.parsedCells)
	empty = atomic.LoadInt64(&ps.emptyCells)
	failures = atomic.LoadInt64(&ps.failures)

	if total > 0 {
		parseRate = float64(parsed) / float64(total) * 100
	}
	return
}

// PrintFinalStats logs the final payload parsing statistics.
func (ps *PayloadStats) PrintFinalStats() {
	total, parsed, empty, failures, parseRate := ps.GetStats()

	util.LogInfo(fmt.Sprintf("Payload parsing complete: total cells %d, parse rate %.1f%% (%d parsed/%d empty/%d failures)",
		total, parseRate, parsed, empty, failures))
}
