package obs

import (
	"testing"
	"time"
)

func TestMetricsStageCounts(t *testing.T) {
	m := NewMetrics()
	m.IncStage(StageQuote)
	m.IncStage(StageQuote)
	m.IncStage(StageRisk)

	snap := m.Snapshot()
	if snap.StageCounts[StageQuote] != 2 {
		t.Fatalf("quote count = %d, want 2", snap.StageCounts[StageQuote])
	}
	if snap.StageCounts[StageRisk] != 1 {
		t.Fatalf("risk count = %d, want 1", snap.StageCounts[StageRisk])
	}
	if _, ok := snap.StageCounts[StageTrade]; ok {
		t.Fatal("zero counters must not appear in the snapshot")
	}
}

func TestCountListener(t *testing.T) {
	m := NewMetrics()
	l := CountListener[int](m, StageExecution)
	l.OnAdd(1)
	l.OnAdd(2)

	if got := m.Snapshot().StageCounts[StageExecution]; got != 2 {
		t.Fatalf("execution count = %d, want 2", got)
	}
}

func TestLatencyStats(t *testing.T) {
	m := NewMetrics()
	m.ObserveIngest(10 * time.Millisecond)
	m.ObserveIngest(30 * time.Millisecond)

	snap := m.Snapshot().IngestLatency
	if snap.Count != 2 {
		t.Fatalf("count = %d, want 2", snap.Count)
	}
	if snap.Min != 10*time.Millisecond || snap.Max != 30*time.Millisecond {
		t.Fatalf("min/max = %v/%v", snap.Min, snap.Max)
	}
	if snap.Avg != 20*time.Millisecond {
		t.Fatalf("avg = %v, want 20ms", snap.Avg)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.IncStage(StageQuote)
	m.ObserveIngest(time.Second)
	if snap := m.Snapshot(); len(snap.StageCounts) != 0 {
		t.Fatalf("nil metrics snapshot should be empty, got %v", snap.StageCounts)
	}
}
