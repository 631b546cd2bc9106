// Package tui provides the Bubble Tea integration for the log viewer.
// It bridges producer responses onto the UI event queue, maps keys to
// scrolling, and renders only the visible slice of the record set.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logview/internal/producer"
)

// BatchMsg delivers one producer response to the update loop.
type BatchMsg struct {
	Response producer.Response
}

// waitForBatch returns a command that blocks until the worker produces a
// response or stops. A stopped worker yields a nil message, which Bubble
// Tea drops.
func waitForBatch(w *producer.Worker) tea.Cmd {
	return func() tea.Msg {
		select {
		case resp := <-w.Results():
			return BatchMsg{Response: resp}
		case <-w.Done():
			return nil
		}
	}
}
