package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logview/internal/config"
	"github.com/vovakirdan/logview/internal/logs"
	"github.com/vovakirdan/logview/internal/producer"
	"github.com/vovakirdan/logview/internal/viewport"
)

func testConfig() config.LogViewerConfig {
	cfg := config.DefaultLogViewerConfig()
	cfg.TotalLogs = 10_000
	cfg.BatchSize = 100
	return cfg
}

func newTestModel(t *testing.T) LogViewerModel {
	t.Helper()
	m := NewLogViewerModel(testConfig(), 100, 25, nil)
	m.Init()
	t.Cleanup(m.Close)
	return m
}

func batchMsg(t *testing.T, start, count int) BatchMsg {
	t.Helper()
	recs, err := logs.Produce(start, count, time.Now())
	if err != nil {
		t.Fatalf("Produce() failed: %v", err)
	}
	return BatchMsg{Response: producer.Response{Logs: recs, StartIndex: start}}
}

func update(t *testing.T, m LogViewerModel, msg tea.Msg) LogViewerModel {
	t.Helper()
	next, _ := m.Update(msg)
	lv, ok := next.(LogViewerModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return lv
}

func TestLogViewerLoadingView(t *testing.T) {
	m := newTestModel(t)

	if m.Controller().State() != viewport.StateLoading {
		t.Fatalf("expected loading state, got %s", m.Controller().State())
	}
	if !m.Controller().Requested(0) {
		t.Error("first batch should be requested on init")
	}

	view := m.View()
	if !strings.Contains(view, "Loading logs...") {
		t.Errorf("expected loading view, got:\n%s", view)
	}
	if !strings.Contains(view, "Total entries: 10,000") {
		t.Errorf("expected formatted total in header, got:\n%s", view)
	}
}

func TestLogViewerRendersBatch(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, batchMsg(t, 0, 100))

	if m.Controller().State() != viewport.StateReady {
		t.Fatalf("expected ready state, got %s", m.Controller().State())
	}

	view := m.View()
	if !strings.Contains(view, "Loaded entries: 100") {
		t.Errorf("expected loaded count in header, got:\n%s", view)
	}
	first := logs.Generate(0, time.Now())
	if !strings.Contains(view, first.Message) {
		t.Errorf("expected first record message %q in view", first.Message)
	}
	if strings.Contains(view, "Loading logs...") {
		t.Error("spinner should be gone once data is ready")
	}
}

func TestLogViewerScrollDispatches(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, batchMsg(t, 0, 100))

	// First render reports the visible range, which prefetches batch 1.
	if !m.Controller().Requested(1) {
		t.Error("look-ahead batch should be requested after first render")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if !m.Controller().Requested(99) {
		t.Error("jumping to the end should request the last batch")
	}
	if m.Controller().Requested(50) {
		t.Error("batches never scrolled through should not be requested")
	}

	// Placeholders show for the unloaded tail.
	if view := m.View(); !strings.Contains(view, "Loading...") {
		t.Errorf("expected placeholder rows, got:\n%s", view)
	}
}

func TestLogViewerErrorView(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, batchMsg(t, 0, 100))
	m = update(t, m, BatchMsg{Response: producer.Response{StartIndex: 100, Err: "generator exploded"}})

	if m.Controller().State() != viewport.StateError {
		t.Fatalf("expected error state, got %s", m.Controller().State())
	}

	view := m.View()
	if !strings.Contains(view, "generator exploded") {
		t.Errorf("expected error message, got:\n%s", view)
	}
	if strings.Contains(view, "Loaded entries") {
		t.Error("error view must replace the list entirely")
	}
}

func TestLogViewerQuitTearsDown(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(LogViewerModel)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.Controller().TornDown() {
		t.Error("quit should tear down the controller")
	}

	loaded := m.Controller().LoadedCount()
	m = update(t, m, batchMsg(t, 0, 100))
	if m.Controller().LoadedCount() != loaded {
		t.Error("batches after teardown must not be merged")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestLogViewerResize(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, batchMsg(t, 0, 100))
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 45})

	start, stop := m.window.Visible()
	if start != 0 || stop != 39 {
		t.Errorf("expected 40 visible rows after resize, got %d..%d", start, stop)
	}
}

func TestRenderRowPlaceholder(t *testing.T) {
	out := RenderRow(viewport.Row{Index: 5}, 80)
	if !strings.Contains(out, "Loading...") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestRenderRowTruncatesMessage(t *testing.T) {
	rec := logs.Record{
		ID:        "log-1",
		Timestamp: time.Date(2024, 1, 1, 12, 34, 56, 789_000_000, time.Local).UnixMilli(),
		Level:     logs.LevelWarn,
		Source:    logs.SourceAPI,
		Message:   "Invalid authentication token",
	}

	out := RenderRow(viewport.Row{Index: 1, Record: rec, Loaded: true}, 40)
	if !strings.Contains(out, "12:34:56.789") {
		t.Errorf("expected formatted timestamp, got %q", out)
	}
	if strings.Contains(out, "Invalid authentication token") {
		t.Errorf("message should be truncated at width 40, got %q", out)
	}
}

func TestLogViewerRendersOnlyVisibleRows(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, batchMsg(t, 0, 100))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})

	// 25 rows minus the footer and a 4-row header leaves 20 list rows.
	if got := strings.Count(m.View(), "Loading..."); got != 20 {
		t.Errorf("expected 20 placeholder rows, got %d", got)
	}
}
