package obs

import (
	"sync/atomic"
	"time"

	"main/internal/bus"
)

// Stage identifies one processing stage of the pipeline.
type Stage uint8

const (
	StageQuote Stage = iota
	StageOrderBook
	StageStream
	StageExecution
	StageTrade
	StagePosition
	StageRisk
	StageInquiry
	stageCount
)

var stageNames = [stageCount]string{
	"quote", "orderbook", "stream", "execution",
	"trade", "position", "risk", "inquiry",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Metrics collects lightweight counters and latency stats.
type Metrics struct {
	stageCounts   [stageCount]uint64
	ingestLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	StageCounts   map[Stage]uint64
	IngestLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncStage increments the counter for one stage.
func (m *Metrics) IncStage(stage Stage) {
	if m == nil {
		return
	}
	idx := int(stage)
	if idx >= 0 && idx < len(m.stageCounts) {
		atomic.AddUint64(&m.stageCounts[idx], 1)
	}
}

// ObserveIngest measures the duration of one ingest pass.
func (m *Metrics) ObserveIngest(d time.Duration) {
	if m == nil {
		return
	}
	m.ingestLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	stageCounts := make(map[Stage]uint64)
	for i := range m.stageCounts {
		if v := atomic.LoadUint64(&m.stageCounts[i]); v > 0 {
			stageCounts[Stage(i)] = v
		}
	}
	return Snapshot{
		StageCounts:   stageCounts,
		IngestLatency: m.ingestLatency.Snapshot(),
	}
}

// CountListener adapts a stage counter into a hub listener.
func CountListener[V any](m *Metrics, stage Stage) bus.Listener[V] {
	return bus.ListenerFuncs[V]{Add: func(V) { m.IncStage(stage) }}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
