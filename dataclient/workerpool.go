package dataclient

import "context"

// worker serializes blocking calls that cannot honor a context deadline
// (an SNMP walk, for instance) onto a single background goroutine, mirroring
// the single-worker ThreadPoolExecutor the original SNMP client dispatches
// its blocking nextCmd call through: the read loop awaits the result
// without ever blocking on the call itself.
type worker struct {
	jobs chan func()
}

func newWorker() *worker {
	w := &worker{jobs: make(chan func(), 1)}
	go func() {
		for job := range w.jobs {
			job()
		}
	}()
	return w
}

// do runs fn on the worker goroutine and waits for it to finish or for ctx
// to be cancelled first. A cancelled call still lets fn run to completion
// in the background; only the caller stops waiting for it.
func (w *worker) do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	w.jobs <- func() { done <- fn() }
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *worker) close() { close(w.jobs) }
