// Package producer runs log generation off the UI goroutine.
// Requests are queued without blocking the caller and responses come back
// over a channel. The worker keeps no state between requests, so responses
// may arrive in any order.
package producer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/logview/internal/logs"
)

// ErrStopped is returned by Send once the worker has been stopped.
var ErrStopped = errors.New("producer: worker stopped")

// ErrNotStarted is returned by Send before Start has been called.
var ErrNotStarted = errors.New("producer: worker not started")

// Request asks the worker for BatchSize records starting at StartIndex.
type Request struct {
	BatchSize  int `json:"batchSize"`
	StartIndex int `json:"startIndex"`
}

// Response carries either a generated batch or a failure message.
type Response struct {
	Logs       []logs.Record `json:"logs,omitempty"`
	StartIndex int           `json:"startIndex"`
	Err        string        `json:"error,omitempty"`
}

// Failed reports whether the response is a failure payload.
func (r Response) Failed() bool {
	return r.Err != ""
}

// Config holds worker tuning.
type Config struct {
	Workers   int // Concurrent generator goroutines
	QueueSize int // Completed response buffer
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:   2,
		QueueSize: 64,
	}
}

// Option customizes a Worker.
type Option func(*Worker)

// WithClock replaces the wall clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

// WithLogger sets the worker logger.
func WithLogger(l *log.Logger) Option {
	return func(w *Worker) { w.logger = l }
}

// WithProduceFunc replaces the generator. Used to inject failures.
func WithProduceFunc(fn func(start, count int, now time.Time) ([]logs.Record, error)) Option {
	return func(w *Worker) { w.produce = fn }
}

// Worker generates batches on background goroutines.
type Worker struct {
	config  Config
	logger  *log.Logger
	now     func() time.Time
	produce func(start, count int, now time.Time) ([]logs.Record, error)

	results chan Response
	done    chan struct{}
	notify  chan struct{} // cap 1, signals pending work

	mu       sync.Mutex
	started  bool
	pending  []Request
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWorker creates a stopped worker. Call Start before sending requests.
func NewWorker(cfg Config, opts ...Option) *Worker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}

	w := &Worker{
		config:  cfg,
		logger:  log.New(io.Discard),
		now:     time.Now,
		produce: logs.Produce,
		results: make(chan Response, cfg.QueueSize),
		done:    make(chan struct{}),
		notify:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the generator goroutines. Calling Start twice is a no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return
	}
	w.started = true

	w.logger.Debug("starting", "workers", w.config.Workers, "queue", w.config.QueueSize)
	for range w.config.Workers {
		w.wg.Add(1)
		go w.loop()
	}
}

// Stop terminates the worker and discards pending requests.
// Responses not yet received are dropped.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.wg.Wait()

		w.mu.Lock()
		dropped := len(w.pending)
		w.pending = nil
		w.mu.Unlock()

		w.logger.Debug("stopped", "dropped", dropped)
	})
}

// Send queues a request and returns immediately. It never waits for a
// generator or for Results to be drained.
func (w *Worker) Send(req Request) error {
	select {
	case <-w.done:
		return ErrStopped
	default:
	}

	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return ErrNotStarted
	}
	w.pending = append(w.pending, req)
	w.mu.Unlock()

	w.wake()
	return nil
}

// wake signals an idle generator without blocking.
func (w *Worker) wake() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// next pops the oldest pending request.
func (w *Worker) next() (Request, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return Request{}, false
	}
	req := w.pending[0]
	w.pending[0] = Request{}
	w.pending = w.pending[1:]
	if len(w.pending) > 0 {
		w.wake()
	}
	return req, true
}

// Results delivers completed responses.
func (w *Worker) Results() <-chan Response {
	return w.results
}

// Done is closed when the worker stops.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// loop processes requests until the worker is stopped.
func (w *Worker) loop() {
	defer w.wg.Done()

	for {
		req, ok := w.next()
		if !ok {
			select {
			case <-w.notify:
				continue
			case <-w.done:
				return
			}
		}

		select {
		case <-w.done:
			return
		default:
		}

		resp := w.handle(req)
		select {
		case w.results <- resp:
		case <-w.done:
			return
		}
	}
}

// handle generates a single batch, converting errors and panics into
// failure responses.
func (w *Worker) handle(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("generator panicked", "start", req.StartIndex, "panic", r)
			resp = Response{StartIndex: req.StartIndex, Err: fmt.Sprintf("producer: panic: %v", r)}
		}
	}()

	w.logger.Debug("generating", "start", req.StartIndex, "count", req.BatchSize)

	records, err := w.produce(req.StartIndex, req.BatchSize, w.now())
	if err != nil {
		w.logger.Error("error generating logs", "start", req.StartIndex, "error", err)
		return Response{StartIndex: req.StartIndex, Err: err.Error()}
	}

	w.logger.Debug("generated", "start", req.StartIndex, "count", len(records))
	return Response{Logs: records, StartIndex: req.StartIndex}
}
