package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/logview/internal/config"
	"github.com/vovakirdan/logview/internal/producer"
	"github.com/vovakirdan/logview/internal/viewport"
)

// footerHeight is the row reserved for the help bar below the list.
const footerHeight = 1

// LogViewerModel is the Bubble Tea model for the virtualized log viewer.
// Each model owns one producer worker and one controller.
type LogViewerModel struct {
	config     config.LogViewerConfig
	worker     *producer.Worker
	controller *viewport.Controller
	window     viewport.Window
	keys       LogViewerKeyMap
	help       help.Model
	spinner    spinner.Model
	logger     *log.Logger
	width      int
	quitting   bool
}

// NewLogViewerModel creates a log viewer sized for a width x height terminal.
// A nil logger discards output.
func NewLogViewerModel(cfg config.LogViewerConfig, width, height int, logger *log.Logger) LogViewerModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	worker := producer.NewWorker(
		producer.Config{
			Workers:   cfg.Producer.Workers,
			QueueSize: cfg.Producer.QueueSize,
		},
		producer.WithLogger(logger.WithPrefix("producer")),
	)

	controller := viewport.NewController(worker, viewport.Options{
		TotalCount: cfg.TotalLogs,
		BatchSize:  cfg.BatchSize,
		Logger:     logger.WithPrefix("viewport"),
	})

	h := help.New()
	h.Width = width

	return LogViewerModel{
		config:     cfg,
		worker:     worker,
		controller: controller,
		window: viewport.Window{
			Total:        cfg.TotalLogs,
			Height:       height - footerHeight,
			RowHeight:    cfg.RowHeight,
			HeaderHeight: cfg.HeaderHeight,
		},
		keys:    DefaultLogViewerKeyMap(),
		help:    h,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		logger:  logger,
		width:   width,
	}
}

// Init starts the producer and requests the first batch.
func (m LogViewerModel) Init() tea.Cmd {
	m.worker.Start()
	if err := m.controller.Initialize(); err != nil {
		m.logger.Error("failed to initialize viewer", "error", err)
		return nil
	}
	return tea.Batch(waitForBatch(m.worker), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m LogViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.window.Resize(msg.Height - footerHeight)
		m.notifyViewport()
		return m, nil

	case BatchMsg:
		return m.handleBatch(msg)

	case spinner.TickMsg:
		if m.controller.State() != viewport.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m LogViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.controller.Teardown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.window.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.window.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.window.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.window.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.window.Home()
	case key.Matches(msg, m.keys.End):
		m.window.End()
	default:
		return m, nil
	}

	m.notifyViewport()
	return m, nil
}

// handleBatch merges a producer response and keeps listening.
func (m LogViewerModel) handleBatch(msg BatchMsg) (tea.Model, tea.Cmd) {
	wasLoading := m.controller.State() == viewport.StateLoading
	m.controller.OnBatchReceived(msg.Response)

	// The list is rendered for the first time: report its visible range.
	if wasLoading && m.controller.State() == viewport.StateReady {
		m.notifyViewport()
	}

	if m.controller.TornDown() || m.controller.State() == viewport.StateError {
		return m, nil
	}
	return m, waitForBatch(m.worker)
}

// notifyViewport reports the visible range once the list is on screen.
func (m LogViewerModel) notifyViewport() {
	if m.controller.State() != viewport.StateReady {
		return
	}
	start, stop := m.window.Visible()
	m.controller.OnViewportChanged(start, stop)
}

// View renders the current state to a string for display.
func (m LogViewerModel) View() string {
	if m.quitting {
		return ""
	}

	if m.controller.State() == viewport.StateError {
		return m.renderError()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	if m.controller.State() != viewport.StateReady {
		b.WriteString("\n")
		b.WriteString(centerText(m.spinner.View()+" Loading logs...", m.width))
		return b.String()
	}

	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHeader renders the header chrome, padded to HeaderHeight rows.
func (m LogViewerModel) renderHeader() string {
	lines := []string{
		titleStyle.Render("Log Viewer"),
		headerStyle.Render(fmt.Sprintf("Total entries: %s", humanize.Comma(int64(m.controller.TotalCount())))),
		headerStyle.Render(fmt.Sprintf("Loaded entries: %s", humanize.Comma(int64(m.controller.LoadedCount())))),
	}

	for len(lines) < m.config.HeaderHeight {
		lines = append(lines, "")
	}
	if len(lines) > m.config.HeaderHeight {
		lines = lines[:m.config.HeaderHeight]
	}
	return strings.Join(lines, "\n")
}

// renderList renders only the rows inside the visible window.
func (m LogViewerModel) renderList() string {
	rows := m.controller.Slice(m.window.Visible())

	rowHeight := m.config.RowHeight
	if rowHeight < 1 {
		rowHeight = 1
	}
	pad := strings.Repeat("\n", rowHeight-1)

	var b strings.Builder
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(RenderRow(row, m.width))
		b.WriteString(pad)
	}
	return b.String()
}

// renderError renders the full-viewport error view.
func (m LogViewerModel) renderError() string {
	msg := "Unknown error"
	if err := m.controller.Err(); err != nil {
		msg = err.Error()
	}
	return centerText(errorStyle.Render(msg), m.width)
}

// Close stops the producer. It is safe to call from any goroutine and is
// used when the program ends without a quit key (e.g. SSH disconnect).
func (m LogViewerModel) Close() {
	m.worker.Stop()
}

// Controller exposes the read side of the viewer state.
func (m LogViewerModel) Controller() *viewport.Controller {
	return m.controller
}

// RunOptions configures Run.
type RunOptions struct {
	Width  int
	Height int
	Logger *log.Logger
}

// Run starts the Bubble Tea program for the log viewer.
func Run(cfg config.LogViewerConfig, opts RunOptions) error {
	model := NewLogViewerModel(cfg, opts.Width, opts.Height, opts.Logger)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
