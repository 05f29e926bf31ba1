// Package pool runs thumbnail production tasks on a small fixed set of
// worker goroutines.
//
// The pool is an explicitly owned instance, constructed by the gallery and
// shut down with it. Tasks queue FIFO behind a mutex+cond; completed results
// are delivered on a single channel that only the gallery loop consumes, so
// no worker ever touches cache or scheduler state directly.
package pool

import (
	"fmt"
	"image"
	"sync"

	"github.com/wb-go/wbf/zlog"
)

// Task is one unit of background work: a pure function over its inputs plus
// the correlation id and path used to route the result back.
type Task struct {
	ID   string
	Path string
	Run  func() (image.Image, error)
}

// Result is a completed task. OK is false when the source was unreadable;
// per the error taxonomy that is a silent skip, not a failure.
type Result struct {
	ID    string
	Path  string
	Image image.Image
	OK    bool
}

type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	done    chan struct{}
	results chan Result
	wg      sync.WaitGroup
}

// New starts a pool with the given worker count. The results channel is
// buffered so a burst of completions does not stall workers while the
// consumer is mid-scan. A non-positive worker count is a programming defect
// and panics.
func New(workers, resultBuffer int) *Pool {
	if workers <= 0 {
		panic(fmt.Sprintf("pool: workers must be positive, got %d", workers))
	}
	if resultBuffer < workers {
		resultBuffer = workers
	}

	p := &Pool{
		done:    make(chan struct{}),
		results: make(chan Result, resultBuffer),
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	zlog.Logger.Info().Int("workers", workers).Msg("worker pool started")
	return p
}

// Submit enqueues a task. Callers are responsible for single-flight
// deduplication; the pool itself accepts whatever it is handed. Submitting
// to a closed pool drops the task.
func (p *Pool) Submit(t Task) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		zlog.Logger.Warn().Str("task_id", t.ID).Str("path", t.Path).Msg("submit on closed pool dropped")
		return
	}
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	p.cond.Signal()
}

// Results returns the delivery channel. It is closed after Close once all
// workers have exited.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops the pool. Queued tasks that have not started are discarded
// and undelivered results are dropped; late results are cheap to lose
// because the next viewport scan re-requests anything still needed.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.queue = nil
	p.mu.Unlock()

	close(p.done)
	p.cond.Broadcast()
	p.wg.Wait()
	close(p.results)

	zlog.Logger.Info().Msg("worker pool stopped")
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		img, err := t.Run()
		res := Result{ID: t.ID, Path: t.Path, Image: img, OK: err == nil && img != nil}
		if err != nil {
			zlog.Logger.Debug().
				Err(err).
				Str("task_id", t.ID).
				Str("path", t.Path).
				Int("worker", id).
				Msg("thumbnail task failed, cell stays in placeholder state")
		}

		select {
		case p.results <- res:
		case <-p.done:
			return
		}
	}
}
