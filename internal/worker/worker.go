// File: internal/worker/worker.go
package worker

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs background tasks such as revenue cache invalidation.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*16)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				run(job)
			}
		}()
	}
	return p
}

// run 執行單一工作，panic 只記錄不影響 worker
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("worker task panicked")
		}
	}()
	job()
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

// Submit 在 Stop 之後直接丟棄工作
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		logrus.Warn("worker pool stopped, task dropped")
		return
	}
	p.jobs <- t
}

// Stop drains queued tasks and waits for the workers. Safe to call twice.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
