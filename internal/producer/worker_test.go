package producer

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/vovakirdan/logview/internal/logs"
)

func fixedClock() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func receive(t *testing.T, w *Worker) Response {
	t.Helper()
	select {
	case resp := <-w.Results():
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response")
		return Response{}
	}
}

func TestWorkerProducesBatch(t *testing.T) {
	w := NewWorker(DefaultConfig(), WithClock(fixedClock))
	w.Start()
	defer w.Stop()

	if err := w.Send(Request{BatchSize: 100, StartIndex: 200}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	resp := receive(t, w)
	if resp.Failed() {
		t.Fatalf("unexpected failure: %s", resp.Err)
	}
	if resp.StartIndex != 200 {
		t.Errorf("expected start index 200, got %d", resp.StartIndex)
	}
	if len(resp.Logs) != 100 {
		t.Fatalf("expected 100 logs, got %d", len(resp.Logs))
	}
	if resp.Logs[0].ID != "log-200" || resp.Logs[99].ID != "log-299" {
		t.Errorf("unexpected IDs %s..%s", resp.Logs[0].ID, resp.Logs[99].ID)
	}
	if want := logs.Generate(250, fixedClock()); resp.Logs[50] != want {
		t.Errorf("expected %+v, got %+v", want, resp.Logs[50])
	}
}

func TestWorkerInvalidRangeBecomesFailure(t *testing.T) {
	w := NewWorker(DefaultConfig())
	w.Start()
	defer w.Stop()

	if err := w.Send(Request{BatchSize: 0, StartIndex: 10}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	resp := receive(t, w)
	if !resp.Failed() {
		t.Fatal("expected failure response")
	}
	if resp.StartIndex != 10 {
		t.Errorf("failure should carry start index 10, got %d", resp.StartIndex)
	}
	if len(resp.Logs) != 0 {
		t.Errorf("failure should carry no logs, got %d", len(resp.Logs))
	}
}

func TestWorkerRecoversPanic(t *testing.T) {
	boom := func(start, count int, now time.Time) ([]logs.Record, error) {
		panic("boom")
	}
	w := NewWorker(DefaultConfig(), WithProduceFunc(boom))
	w.Start()
	defer w.Stop()

	if err := w.Send(Request{BatchSize: 1, StartIndex: 0}); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	if resp := receive(t, w); !resp.Failed() {
		t.Fatal("expected failure response after panic")
	}
}

func TestWorkerSendBeforeStart(t *testing.T) {
	w := NewWorker(DefaultConfig())
	if err := w.Send(Request{BatchSize: 1}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestWorkerSendAfterStop(t *testing.T) {
	w := NewWorker(DefaultConfig())
	w.Start()
	w.Stop()
	w.Stop() // idempotent

	if err := w.Send(Request{BatchSize: 1}); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}

	select {
	case <-w.Done():
	default:
		t.Error("Done() should be closed after Stop")
	}
}

func TestWorkerMultipleInFlight(t *testing.T) {
	w := NewWorker(Config{Workers: 4, QueueSize: 16}, WithClock(fixedClock))
	w.Start()
	defer w.Stop()

	starts := []int{0, 100, 200, 300, 400, 500}
	for _, s := range starts {
		if err := w.Send(Request{BatchSize: 100, StartIndex: s}); err != nil {
			t.Fatalf("Send(%d) failed: %v", s, err)
		}
	}

	var got []int
	for range starts {
		resp := receive(t, w)
		if resp.Failed() {
			t.Fatalf("unexpected failure: %s", resp.Err)
		}
		got = append(got, resp.StartIndex)
	}

	sort.Ints(got)
	for i, s := range starts {
		if got[i] != s {
			t.Errorf("expected responses for %v, got %v", starts, got)
			break
		}
	}
}

func TestWorkerSendDoesNotWaitForResults(t *testing.T) {
	w := NewWorker(Config{Workers: 1, QueueSize: 0}, WithClock(fixedClock))
	w.Start()
	defer w.Stop()

	done := make(chan error, 1)
	go func() {
		// Nothing reads Results, so every generator ends up blocked.
		for i := range 500 {
			if err := w.Send(Request{BatchSize: 10, StartIndex: i * 10}); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Send() failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send blocked while results were not drained")
	}

	// Queued requests are still delivered once someone reads.
	if resp := receive(t, w); resp.StartIndex != 0 {
		t.Errorf("expected oldest request first, got start %d", resp.StartIndex)
	}
	if resp := receive(t, w); resp.StartIndex != 10 {
		t.Errorf("expected second request next, got start %d", resp.StartIndex)
	}
}
