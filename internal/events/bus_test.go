package events

import (
	"errors"
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("expected non-nil bus")
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestBusSubscribe(t *testing.T) {
	bus := NewBus()

	ch1 := bus.Subscribe()
	if bus.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", bus.SubscriberCount())
	}

	ch2 := bus.Subscribe()
	if bus.SubscriberCount() != 2 {
		t.Errorf("expected 2 subscribers, got %d", bus.SubscriberCount())
	}

	if ch1 == nil || ch2 == nil {
		t.Error("expected non-nil channels")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe()
	if bus.SubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", bus.SubscriberCount())
	}

	bus.Unsubscribe(ch)
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestBusPublish(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe()

	event := NewWorkerSpawnedEvent("worker1", 1)
	bus.Publish(event)

	select {
	case received := <-ch:
		if received.Type != EventWorkerSpawned {
			t.Errorf("expected type %s, got %s", EventWorkerSpawned, received.Type)
		}
		if received.WorkerID != "worker1" {
			t.Errorf("expected worker1, got %s", received.WorkerID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for event")
	}
}

func TestBusPublishMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()

	event := NewWorkerCompletedEvent("worker0", 3.14, time.Second)
	bus.Publish(event)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.Type != EventWorkerCompleted {
				t.Errorf("subscriber %d: expected type %s, got %s", i, EventWorkerCompleted, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestBusPublishNonBlocking(t *testing.T) {
	bus := NewBusWithBuffer(1)

	ch := bus.Subscribe()

	// Fill the buffer
	bus.Publish(NewWorkerSpawnedEvent("worker0", 0))
	bus.Publish(NewWorkerSpawnedEvent("worker1", 1))
	bus.Publish(NewWorkerSpawnedEvent("worker2", 2))

	if bus.Dropped() != 2 {
		t.Errorf("expected 2 dropped deliveries, got %d", bus.Dropped())
	}

	select {
	case ev := <-ch:
		if ev.WorkerID != "worker0" {
			t.Errorf("expected first event to be kept, got %s", ev.WorkerID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for first event")
	}
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := NewBus()
	bus.Close()

	ch := bus.Subscribe()
	if _, ok := <-ch; ok {
		t.Error("expected closed channel from a closed bus")
	}
	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", bus.SubscriberCount())
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe()
	bus.Close()

	if bus.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers after close, got %d", bus.SubscriberCount())
	}

	// Channel should be closed
	_, ok := <-ch
	if ok {
		t.Error("expected channel to be closed")
	}
}

func TestEventCreation(t *testing.T) {
	t.Run("WorkerSpawnFailed", func(t *testing.T) {
		event := NewWorkerSpawnFailedEvent("worker2", 2, errors.New("no threads left"))
		if event.Type != EventWorkerSpawnFailed {
			t.Errorf("expected %s, got %s", EventWorkerSpawnFailed, event.Type)
		}
		if event.Data.Index != 2 {
			t.Errorf("expected index 2, got %d", event.Data.Index)
		}
		if event.Data.Error != "no threads left" {
			t.Errorf("unexpected error text: %s", event.Data.Error)
		}
	})

	t.Run("WorkerCompleted", func(t *testing.T) {
		event := NewWorkerCompletedEvent("worker0", 3.1415, 1500*time.Millisecond)
		if event.Data.Estimate != 3.1415 {
			t.Errorf("expected 3.1415, got %v", event.Data.Estimate)
		}
		if event.Data.Elapsed != "1.5s" {
			t.Errorf("expected 1.5s, got %s", event.Data.Elapsed)
		}
	})

	t.Run("WorkerPanickedWithoutError", func(t *testing.T) {
		event := NewWorkerPanickedEvent("worker1", nil)
		if event.Type != EventWorkerPanicked {
			t.Errorf("expected %s, got %s", EventWorkerPanicked, event.Type)
		}
		if event.Data.Error != "" {
			t.Errorf("expected empty error, got %s", event.Data.Error)
		}
	})

	t.Run("RunCompleted", func(t *testing.T) {
		event := NewRunCompletedEvent(4, 2*time.Second)
		if event.WorkerID != "" {
			t.Errorf("run events carry no worker id, got %s", event.WorkerID)
		}
		if event.Data.Workers != 4 {
			t.Errorf("expected 4 workers, got %d", event.Data.Workers)
		}
	})
}
