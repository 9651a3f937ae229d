package analyzer

import (
	"sync"
	"sync/atomic"
)

// analysisExecutor serializes analysis jobs onto a single goroutine.
//
// The analyzer's last-result slot is single-writer by contract: at most
// one analysis may be in flight at a time, so the executor runs exactly
// one worker and rejects submissions while a job is running.
type analysisExecutor struct {
	jobQueue chan func()
	busy     atomic.Bool
	once     sync.Once
	done     sync.WaitGroup
}

// newAnalysisExecutor creates a stopped executor; Start launches the
// worker.
func newAnalysisExecutor() *analysisExecutor {
	return &analysisExecutor{
		jobQueue: make(chan func(), 1),
	}
}

// Start launches the single worker goroutine. Safe to call more than
// once.
func (e *analysisExecutor) Start() {
	e.once.Do(func() {
		e.done.Add(1)
		go e.worker()
	})
}

func (e *analysisExecutor) worker() {
	defer e.done.Done()
	for job := range e.jobQueue {
		job()
		e.busy.Store(false)
	}
}

// TrySubmit queues a job unless one is already in flight. It returns
// false when the executor is busy; the caller decides whether that means
// reject or retry.
func (e *analysisExecutor) TrySubmit(job func()) bool {
	if !e.busy.CompareAndSwap(false, true) {
		return false
	}
	e.jobQueue <- job
	return true
}

// Close shuts the executor down after the in-flight job, if any,
// completes.
func (e *analysisExecutor) Close() {
	close(e.jobQueue)
	e.done.Wait()
}
