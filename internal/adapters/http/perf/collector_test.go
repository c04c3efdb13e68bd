package perf

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /gallery", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /gallery", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /", StatusCode: 200, DurationMs: 5, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "query", DurationMs: 2, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.Requests != 3 || snap.Queries != 1 {
		t.Fatalf("requests=%d queries=%d, want 3 and 1", snap.Requests, snap.Queries)
	}
	if len(snap.SlowestRoutes) != 2 {
		t.Fatalf("SlowestRoutes len = %d, want 2", len(snap.SlowestRoutes))
	}
	top := snap.SlowestRoutes[0]
	if top.Path != "GET /gallery" || top.AvgMs != 20 || top.MaxMs != 30 || top.Count != 2 {
		t.Errorf("top route = %+v", top)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries len = %d, want 1", len(snap.SlowestQueries))
	}
}

func TestCollector_RingBufferOverwrites(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /x", DurationMs: float64(i), Timestamp: now})
	}
	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.SlowestRoutes[0].Count != 3 {
		t.Errorf("Count = %d, want 3", snap.SlowestRoutes[0].Count)
	}
	// entries 2, 3, 4 survive
	if snap.SlowestRoutes[0].AvgMs != 3 {
		t.Errorf("AvgMs = %v, want 3", snap.SlowestRoutes[0].AvgMs)
	}
}

func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()
	for i := 1; i <= 101; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /p", DurationMs: float64(i), Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 5)
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"p50", snap.RequestP50Ms, 51},
		{"p95", snap.RequestP95Ms, 96},
		{"p99", snap.RequestP99Ms, 100},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollector_SinceFiltersOldEntries(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 100, Timestamp: now.Add(-2 * time.Hour)})
	c.Record(Entry{Kind: KindRequest, Path: "GET /new", DurationMs: 1, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Hour), 10)
	if len(snap.SlowestRoutes) != 1 || snap.SlowestRoutes[0].Path != "GET /new" {
		t.Errorf("SlowestRoutes = %+v, want only GET /new", snap.SlowestRoutes)
	}
}

func TestCollector_TopNLimit(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	for _, p := range []string{"GET /a", "GET /b", "GET /c"} {
		c.Record(Entry{Kind: KindRequest, Path: p, DurationMs: 1, Timestamp: now})
	}
	if got := len(c.Snapshot(now.Add(-time.Minute), 2).SlowestRoutes); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}
}

func TestCollector_EmptySnapshot(t *testing.T) {
	snap := NewCollector(0).Snapshot(time.Now().Add(-time.Hour), 5)
	if snap.Requests != 0 || snap.RequestP99Ms != 0 || len(snap.SlowestRoutes) != 0 {
		t.Errorf("empty snapshot = %+v", snap)
	}
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Record(Entry{Kind: KindQuery, Path: "exec", DurationMs: 1, Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()
	if c.TotalRecorded() != 800 {
		t.Errorf("TotalRecorded = %d, want 800", c.TotalRecorded())
	}
}
