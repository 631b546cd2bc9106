package viewport

import (
	"testing"

	"github.com/vovakirdan/logview/internal/logs"
)

func TestWindowRows(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   int
	}{
		{"plain", Window{Height: 24, RowHeight: 1, HeaderHeight: 4}, 20},
		{"double rows", Window{Height: 24, RowHeight: 2, HeaderHeight: 4}, 10},
		{"tiny terminal", Window{Height: 3, RowHeight: 1, HeaderHeight: 4}, 1},
		{"zero row height", Window{Height: 10, HeaderHeight: 0}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.Rows(); got != tt.want {
				t.Errorf("Rows() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWindowScrollClamps(t *testing.T) {
	w := Window{Total: 100, Height: 14, RowHeight: 1, HeaderHeight: 4}

	w.ScrollBy(-5)
	if w.Offset != 0 {
		t.Errorf("expected offset 0, got %d", w.Offset)
	}

	w.PageDown()
	if w.Offset != 10 {
		t.Errorf("expected offset 10 after page down, got %d", w.Offset)
	}

	w.End()
	if w.Offset != 90 {
		t.Errorf("expected offset 90 at end, got %d", w.Offset)
	}

	w.ScrollBy(50)
	if w.Offset != 90 {
		t.Errorf("expected offset clamped to 90, got %d", w.Offset)
	}

	w.PageUp()
	if w.Offset != 80 {
		t.Errorf("expected offset 80 after page up, got %d", w.Offset)
	}

	w.Home()
	if w.Offset != 0 {
		t.Errorf("expected offset 0 at home, got %d", w.Offset)
	}
}

func TestWindowVisible(t *testing.T) {
	w := Window{Total: 1000, Height: 24, RowHeight: 1, HeaderHeight: 4}
	w.ScrollTo(95)

	start, stop := w.Visible()
	if start != 95 || stop != 114 {
		t.Errorf("Visible() = %d..%d, want 95..114", start, stop)
	}

	w.End()
	start, stop = w.Visible()
	if start != 980 || stop != 999 {
		t.Errorf("Visible() at end = %d..%d, want 980..999", start, stop)
	}
}

func TestWindowResizeKeepsOffsetValid(t *testing.T) {
	w := Window{Total: 30, Height: 14, RowHeight: 1, HeaderHeight: 4}
	w.End()
	if w.Offset != 20 {
		t.Fatalf("expected offset 20, got %d", w.Offset)
	}

	w.Resize(34)
	if w.Offset != 0 {
		t.Errorf("expected offset 0 once everything fits, got %d", w.Offset)
	}
}

func TestWindowEmpty(t *testing.T) {
	w := Window{Height: 10, RowHeight: 1}
	if start, stop := w.Visible(); stop >= start {
		t.Errorf("empty window should have no visible rows, got %d..%d", start, stop)
	}
}

func TestRecordStoreSparse(t *testing.T) {
	s := NewRecordStore(1_000_000, 100)
	if _, ok := s.At(500_000); ok {
		t.Error("new store should be unpopulated")
	}

	recs := []logs.Record{{ID: "log-999998"}, {ID: "log-999999"}, {ID: "past-end"}}
	if added := s.Merge(999_998, recs); added != 2 {
		t.Errorf("expected 2 slots added, got %d", added)
	}
	if s.Loaded() != 2 {
		t.Errorf("expected 2 loaded, got %d", s.Loaded())
	}
	if len(s.pages) != 1 {
		t.Errorf("expected a single page allocated, got %d", len(s.pages))
	}
	if _, ok := s.At(-1); ok {
		t.Error("negative index should be unpopulated")
	}
}

func TestBatchLedger(t *testing.T) {
	l := NewBatchLedger()
	if !l.Mark(3) {
		t.Error("first mark should succeed")
	}
	if l.Mark(3) {
		t.Error("second mark should report already requested")
	}
	if !l.Has(3) || l.Has(4) {
		t.Error("Has() mismatch")
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}
}
