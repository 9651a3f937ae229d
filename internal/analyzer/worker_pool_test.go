package analyzer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAnalysisExecutor_RunsSubmittedJob(t *testing.T) {
	e := newAnalysisExecutor()
	e.Start()
	defer e.Close()

	done := make(chan struct{})
	if !e.TrySubmit(func() { close(done) }) {
		t.Fatal("Expected submission to be accepted")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for job")
	}
}

func TestAnalysisExecutor_RejectsWhileBusy(t *testing.T) {
	e := newAnalysisExecutor()
	e.Start()
	defer e.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	if !e.TrySubmit(func() {
		close(started)
		<-release
	}) {
		t.Fatal("Expected first submission to be accepted")
	}
	<-started

	if e.TrySubmit(func() {}) {
		t.Error("Expected submission to be rejected while a job runs")
	}

	close(release)

	// The slot frees once the job finishes.
	deadline := time.After(time.Second)
	for {
		if e.TrySubmit(func() {}) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("Executor never freed after job completion")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestAnalysisExecutor_JobsRunSequentially(t *testing.T) {
	e := newAnalysisExecutor()
	e.Start()
	defer e.Close()

	var running atomic.Int32
	var overlapped atomic.Bool
	var wg atomic.Int32

	submit := func() {
		for !e.TrySubmit(func() {
			if running.Add(1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			wg.Add(1)
		}) {
			time.Sleep(time.Millisecond)
		}
	}

	for i := 0; i < 5; i++ {
		submit()
	}

	deadline := time.After(2 * time.Second)
	for wg.Load() < 5 {
		select {
		case <-deadline:
			t.Fatalf("Only %d of 5 jobs finished", wg.Load())
		case <-time.After(time.Millisecond):
		}
	}
	if overlapped.Load() {
		t.Error("Jobs overlapped on the single worker")
	}
}

func TestAnalysisExecutor_StartIsIdempotent(t *testing.T) {
	e := newAnalysisExecutor()
	e.Start()
	e.Start()
	defer e.Close()

	done := make(chan struct{})
	if !e.TrySubmit(func() { close(done) }) {
		t.Fatal("Expected submission to be accepted")
	}
	<-done
}

func TestAnalysisExecutor_CloseWaitsForInFlight(t *testing.T) {
	e := newAnalysisExecutor()
	e.Start()

	var finished atomic.Bool
	if !e.TrySubmit(func() {
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	}) {
		t.Fatal("Expected submission to be accepted")
	}

	e.Close()
	if !finished.Load() {
		t.Error("Close returned before the in-flight job finished")
	}
}
