// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel runs independent tasks on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Task is one unit of work.
type Task func() error

// Pool runs tasks on a fixed number of workers. Each worker owns a queue
// and steals from the others once its own queue is empty.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// mu orders enqueues against Close: nothing is queued once done is
	// closed.
	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool. If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every task and waits for all of them. The result holds the
// error of task i at index i. Tasks that find their queue full, or the
// pool closed, run on the calling goroutine.
func (p *Pool) Run(tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, t := range tasks {
		fn := func() {
			defer wg.Done()
			errs[i] = t()
		}
		if !p.enqueue(i%p.workers, fn) {
			fn()
		}
	}
	wg.Wait()
	return errs
}

// enqueue hands fn to worker id. It reports false when the pool is closed
// or the queue is full, in which case the caller runs fn itself.
func (p *Pool) enqueue(id int, fn func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queues[id] <- fn:
		return true
	default:
		return false
	}
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }

// Close stops the workers after the queued tasks finish. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}
