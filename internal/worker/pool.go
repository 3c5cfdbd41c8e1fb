package worker

import (
	"context"
	"sync"
	"time"
)

// Task is one unit of work. Key identifies it in the matching Result.
type Task struct {
	Key string
	Run func(ctx context.Context) error
}

type Result struct {
	Key string
	Err error
}

// Pool runs submitted tasks on a fixed number of goroutines, optionally
// throttled to a number of task starts per second. Start Run before Submit
// when the buffer is smaller than the number of tasks.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// Submit enqueues t. It returns false if ctx ends first.
func (p *Pool) Submit(ctx context.Context, t Task) bool {
	if p == nil || t.Run == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

// Close stops accepting tasks. Workers drain what is queued and exit.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) stopTicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Run starts the workers. The returned channel closes after every worker has
// exited, which happens once Close was called and the queue is empty, or ctx
// is done.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t.Run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Key: t.Key, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.stopTicker()
		close(out)
	}()

	return out
}
