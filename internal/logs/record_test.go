package logs

import (
	"errors"
	"testing"
	"time"
)

func TestProduceIDs(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		start int
		count int
	}{
		{0, 1},
		{0, 100},
		{95, 10},
		{999_900, 100},
	}

	for _, tt := range tests {
		recs, err := Produce(tt.start, tt.count, now)
		if err != nil {
			t.Fatalf("Produce(%d, %d) failed: %v", tt.start, tt.count, err)
		}
		if len(recs) != tt.count {
			t.Fatalf("Produce(%d, %d) returned %d records", tt.start, tt.count, len(recs))
		}
		for i, r := range recs {
			if want := RecordID(tt.start + i); r.ID != want {
				t.Errorf("record %d: expected ID %q, got %q", i, want, r.ID)
			}
		}
	}
}

func TestProduceInvalidRange(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		start int
		count int
	}{
		{"negative start", -1, 10},
		{"zero count", 0, 0},
		{"negative count", 5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Produce(tt.start, tt.count, now)
			var rangeErr *InvalidRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected InvalidRangeError, got %v", err)
			}
			if rangeErr.Start != tt.start || rangeErr.Count != tt.count {
				t.Errorf("error carries wrong range: %+v", rangeErr)
			}
		})
	}
}

// Content is index-determined; only the timestamp follows the clock.
func TestGenerateStableAcrossTime(t *testing.T) {
	early := time.UnixMilli(1_700_000_000_000)
	late := early.Add(90 * time.Minute)

	for _, i := range []int{0, 1, 7, 50, 12345, 999_999} {
		a := Generate(i, early)
		b := Generate(i, late)

		if a.ID != b.ID || a.Level != b.Level || a.Source != b.Source || a.Message != b.Message {
			t.Errorf("index %d: content differs: %+v vs %+v", i, a, b)
		}
		if b.Timestamp-a.Timestamp != 90*60*1000 {
			t.Errorf("index %d: expected timestamps to follow the clock, got %d and %d", i, a.Timestamp, b.Timestamp)
		}
	}
}

func TestGenerateTimestampWithinDay(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	for i := range 1000 {
		r := Generate(i, now)
		age := now.UnixMilli() - r.Timestamp
		if age < 0 || age >= dayMillis {
			t.Fatalf("index %d: timestamp %d outside trailing day", i, r.Timestamp)
		}
	}
}

func TestHashKnownValues(t *testing.T) {
	tests := []struct {
		index int
		want  uint32
	}{
		{0, 0},
		{1, 2654435761},
		{2, 1013904226}, // 5308871522 mod 2^32
	}

	for _, tt := range tests {
		if got := Hash(tt.index); got != tt.want {
			t.Errorf("Hash(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestGenerateLookup(t *testing.T) {
	now := time.Now()

	// hash(1) = 2654435761: %3 = 1, /3 %5 = 0, /15 %8 = 0
	r := Generate(1, now)
	if r.Level != LevelWarn {
		t.Errorf("expected level warn, got %s", r.Level)
	}
	if r.Source != SourceServer {
		t.Errorf("expected source server, got %s", r.Source)
	}
	if r.Message != "Request processed successfully" {
		t.Errorf("expected 'Request processed successfully', got %q", r.Message)
	}

	r = Generate(0, now)
	if r.Level != LevelInfo || r.Source != SourceServer || r.Message != messages[0] {
		t.Errorf("index 0 should map to first table entries, got %+v", r)
	}
}
