package observer

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordingObserver captures events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	name   string
	events []AnalysisEvent
}

func (r *recordingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) GetObserverName() string { return r.name }

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// panickingObserver always panics on events.
type panickingObserver struct{}

func (p *panickingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	panic("observer failure")
}

func (p *panickingObserver) GetObserverName() string { return "panicking_observer" }

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Condition not met in time")
}

func TestEventPublisher_NotifiesSubscribers(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &recordingObserver{name: "recording"}
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{
		EventType: AnalysisStarted,
		Timestamp: time.Now(),
	})

	waitFor(t, func() bool { return obs.count() == 1 })
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher()
	obs := &recordingObserver{name: "recording"}
	publisher.Subscribe(obs)
	publisher.Unsubscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})

	time.Sleep(50 * time.Millisecond)
	if obs.count() != 0 {
		t.Errorf("Expected no events after unsubscribe, got %d", obs.count())
	}
}

func TestEventPublisher_PanickingObserverIsolated(t *testing.T) {
	publisher := NewEventPublisher()
	publisher.Subscribe(&panickingObserver{})
	obs := &recordingObserver{name: "recording"}
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisCompleted})

	// The healthy observer still receives the event.
	waitFor(t, func() bool { return obs.count() == 1 })
}

func TestStatsObserver_Counters(t *testing.T) {
	stats := NewStatsObserver()
	ctx := context.Background()

	stats.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted})
	stats.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted})
	stats.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, ProcessingTime: 100 * time.Millisecond})
	stats.OnEvent(ctx, AnalysisEvent{EventType: AnalysisFailed})
	stats.OnEvent(ctx, AnalysisEvent{EventType: SequenceRepaired})

	got := stats.GetStats()
	if got["total_analyses"] != int64(2) {
		t.Errorf("total_analyses = %v", got["total_analyses"])
	}
	if got["successful_analyses"] != int64(1) {
		t.Errorf("successful_analyses = %v", got["successful_analyses"])
	}
	if got["failed_analyses"] != int64(1) {
		t.Errorf("failed_analyses = %v", got["failed_analyses"])
	}
	if got["repaired_sequences"] != int64(1) {
		t.Errorf("repaired_sequences = %v", got["repaired_sequences"])
	}
	if got["avg_processing_time"] != 100*time.Millisecond {
		t.Errorf("avg_processing_time = %v", got["avg_processing_time"])
	}
}

func TestStatsObserver_AverageWithNoSuccesses(t *testing.T) {
	stats := NewStatsObserver()

	if got := stats.GetStats()["avg_processing_time"]; got != time.Duration(0) {
		t.Errorf("avg_processing_time = %v, want 0", got)
	}
}
