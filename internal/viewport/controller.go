// Package viewport owns the logical record set behind a virtualized list.
// The Controller decides which batches to fetch as the visible window moves,
// merges returned batches, and answers row lookups for the render layer.
//
// A Controller is not safe for concurrent use; all calls are expected from
// the UI update goroutine. Only requests and responses cross goroutines.
package viewport

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/logview/internal/logs"
	"github.com/vovakirdan/logview/internal/producer"
)

// State is the controller lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateLoading             // Initialized, no batch landed yet
	StateReady               // At least one batch landed
	StateError               // Terminal for the session
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Dispatcher hands batch requests to a producer without waiting for them.
type Dispatcher interface {
	Send(req producer.Request) error
}

// Options configures a Controller.
type Options struct {
	TotalCount int
	BatchSize  int
	Logger     *log.Logger
}

// Row is a read-only view of one slot.
type Row struct {
	Index  int
	Record logs.Record
	Loaded bool
}

// Controller implements the viewport state machine.
type Controller struct {
	dispatcher Dispatcher
	total      int
	batchSize  int
	logger     *log.Logger

	state    State
	err      error
	store    *RecordStore
	ledger   *BatchLedger
	tornDown bool
}

// NewController creates an uninitialized controller.
func NewController(d Dispatcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		dispatcher: d,
		total:      opts.TotalCount,
		batchSize:  opts.BatchSize,
		logger:     logger,
		store:      NewRecordStore(0, 1),
		ledger:     NewBatchLedger(),
	}
}

// Initialize allocates the store, clears the ledger and requests the
// first batch. On dispatch failure the controller enters StateError and
// the error is returned.
func (c *Controller) Initialize() error {
	if c.state != StateUninitialized || c.tornDown {
		return ErrAlreadyInitialized
	}
	if c.total <= 0 || c.batchSize <= 0 {
		c.fail(ErrInvalidOptions)
		return ErrInvalidOptions
	}

	c.store = NewRecordStore(c.total, c.batchSize)
	c.ledger = NewBatchLedger()
	c.state = StateLoading

	c.logger.Info("initialized", "total", c.total, "batch", c.batchSize)

	if _, err := c.request(0); err != nil {
		return err
	}
	return nil
}

// OnViewportChanged requests the batch containing visibleStart and the
// batch after it. Batches already requested or past the end are skipped.
// It returns the requests actually dispatched.
func (c *Controller) OnViewportChanged(visibleStart, visibleStop int) []producer.Request {
	if c.tornDown || c.state == StateUninitialized || c.state == StateError {
		return nil
	}
	if visibleStart < 0 {
		visibleStart = 0
	}

	current := (visibleStart / c.batchSize) * c.batchSize
	next := current + c.batchSize

	var sent []producer.Request
	for _, start := range []int{current, next} {
		req, err := c.request(start)
		if err != nil {
			break
		}
		if req != nil {
			sent = append(sent, *req)
		}
	}

	if len(sent) > 0 {
		c.logger.Debug("viewport changed", "start", visibleStart, "stop", visibleStop, "dispatched", len(sent))
	}
	return sent
}

// request dispatches the batch starting at start unless it is out of
// range or already ledgered. A nil request with nil error means skipped.
func (c *Controller) request(start int) (*producer.Request, error) {
	if start >= c.total {
		return nil, nil
	}
	if !c.ledger.Mark(start / c.batchSize) {
		return nil, nil
	}

	req := producer.Request{BatchSize: c.batchSize, StartIndex: start}
	c.logger.Debug("requesting batch", "batch", start/c.batchSize, "start", start)

	if err := c.dispatcher.Send(req); err != nil {
		unavailable := &ProducerUnavailableError{Err: err}
		c.fail(unavailable)
		return nil, unavailable
	}
	return &req, nil
}

// OnBatchReceived merges a producer response into the store. Failure
// responses move the controller into StateError. Responses arriving after
// Teardown, or after an error, are ignored. It returns the number of newly
// populated slots.
func (c *Controller) OnBatchReceived(resp producer.Response) int {
	if c.tornDown || c.state == StateUninitialized || c.state == StateError {
		return 0
	}
	if resp.Failed() {
		c.OnProducerFailure(&BatchDeliveryError{StartIndex: resp.StartIndex, Message: resp.Err})
		return 0
	}

	added := c.store.Merge(resp.StartIndex, resp.Logs)
	if c.state == StateLoading {
		c.state = StateReady
	}

	c.logger.Debug("batch received", "start", resp.StartIndex, "count", len(resp.Logs), "loaded", c.store.Loaded())
	return added
}

// OnProducerFailure moves the controller into the terminal error state.
// No retry is attempted.
func (c *Controller) OnProducerFailure(err error) {
	if c.tornDown || c.state == StateError {
		return
	}
	if err == nil {
		err = errors.New("unknown producer failure")
	}
	c.fail(err)
}

func (c *Controller) fail(err error) {
	c.err = err
	c.state = StateError
	c.logger.Error("producer failure", "error", err)
}

// Teardown detaches the controller. The dispatcher is stopped if it can
// be, and later responses are never applied.
func (c *Controller) Teardown() {
	if c.tornDown {
		return
	}
	c.tornDown = true

	if s, ok := c.dispatcher.(interface{ Stop() }); ok {
		s.Stop()
	}
	c.logger.Info("torn down", "loaded", c.store.Loaded())
}

// RowAt returns the record at index, or false for a placeholder.
func (c *Controller) RowAt(index int) (logs.Record, bool) {
	return c.store.At(index)
}

// Slice returns rows for [start, stop], clamped to the store.
func (c *Controller) Slice(start, stop int) []Row {
	if start < 0 {
		start = 0
	}
	if stop >= c.total {
		stop = c.total - 1
	}
	if stop < start {
		return nil
	}

	rows := make([]Row, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		rec, ok := c.store.At(i)
		rows = append(rows, Row{Index: i, Record: rec, Loaded: ok})
	}
	return rows
}

// TotalCount returns the logical number of records.
func (c *Controller) TotalCount() int { return c.total }

// BatchSize returns the number of records per request.
func (c *Controller) BatchSize() int { return c.batchSize }

// LoadedCount returns the number of populated slots.
func (c *Controller) LoadedCount() int { return c.store.Loaded() }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Err returns the error that moved the controller into StateError.
func (c *Controller) Err() error { return c.err }

// Requested reports whether the batch with the given index was dispatched.
func (c *Controller) Requested(batch int) bool { return c.ledger.Has(batch) }

// TornDown reports whether Teardown was called.
func (c *Controller) TornDown() bool { return c.tornDown }
