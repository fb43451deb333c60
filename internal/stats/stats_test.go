package stats

import (
	"testing"
	"time"
)

func TestSnapshotPercentiles(t *testing.T) {
	s := New(time.Hour)
	s.Record(".pdf", 100)
	s.Record(".pdf", 200)
	s.Record(".txt", 300)
	s.Record(".txt", 400)
	s.Record(".txt", 500)

	snap := s.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestSnapshotCountsByFormat(t *testing.T) {
	s := New(time.Hour)
	s.Record(".pdf", 10)
	s.Record(".pdf", 20)
	s.Record(".docx", 30)
	s.Record("", 40) // unknown format is counted but not broken down

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("expected count=4, got %d", snap.Count)
	}
	if snap.ByFormat[".pdf"] != 2 || snap.ByFormat[".docx"] != 1 {
		t.Fatalf("unexpected format breakdown: %v", snap.ByFormat)
	}
	if _, ok := snap.ByFormat[""]; ok {
		t.Fatal("empty format must not appear in the breakdown")
	}
}

func TestPrunesExpiredSamples(t *testing.T) {
	s := New(10 * time.Millisecond)
	s.Record(".txt", 100)
	time.Sleep(25 * time.Millisecond)

	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	s.Record(".txt", 200)
	snap = s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestRecordClampsNegativeDuration(t *testing.T) {
	s := New(time.Hour)
	s.Record(".txt", -10)
	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
