// Package events provides lifecycle notifications for estimation runs.
package events

import "time"

// EventType represents the type of event
type EventType string

const (
	// EventWorkerSpawned is emitted when a worker thread has been started
	EventWorkerSpawned EventType = "worker_spawned"
	// EventWorkerSpawnFailed is emitted when a worker could not be started
	EventWorkerSpawnFailed EventType = "worker_spawn_failed"
	// EventWorkerCompleted is emitted when a worker has produced its result
	EventWorkerCompleted EventType = "worker_completed"
	// EventWorkerPanicked is emitted when a worker terminated abnormally
	EventWorkerPanicked EventType = "worker_panicked"
	// EventRunCompleted is emitted once every handle has been collected
	EventRunCompleted EventType = "run_completed"
)

// Event represents a worker or run lifecycle event
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	WorkerID  string    `json:"worker_id,omitempty"`
	Data      EventData `json:"data,omitempty"`
}

// EventData contains event-specific data
type EventData struct {
	Index    int     `json:"index,omitempty"`
	Estimate float64 `json:"estimate,omitempty"`
	Elapsed  string  `json:"elapsed,omitempty"`
	Workers  int     `json:"workers,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// NewWorkerSpawnedEvent creates a worker spawned event
func NewWorkerSpawnedEvent(workerID string, index int) Event {
	return Event{
		Type:      EventWorkerSpawned,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Index: index,
		},
	}
}

// NewWorkerSpawnFailedEvent creates a spawn failure event
func NewWorkerSpawnFailedEvent(workerID string, index int, err error) Event {
	return Event{
		Type:      EventWorkerSpawnFailed,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Index: index,
			Error: errString(err),
		},
	}
}

// NewWorkerCompletedEvent creates a worker completed event
func NewWorkerCompletedEvent(workerID string, estimate float64, elapsed time.Duration) Event {
	return Event{
		Type:      EventWorkerCompleted,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Estimate: estimate,
			Elapsed:  elapsed.String(),
		},
	}
}

// NewWorkerPanickedEvent creates a worker panicked event
func NewWorkerPanickedEvent(workerID string, err error) Event {
	return Event{
		Type:      EventWorkerPanicked,
		Timestamp: time.Now(),
		WorkerID:  workerID,
		Data: EventData{
			Error: errString(err),
		},
	}
}

// NewRunCompletedEvent creates a run completed event
func NewRunCompletedEvent(workers int, total time.Duration) Event {
	return Event{
		Type:      EventRunCompleted,
		Timestamp: time.Now(),
		Data: EventData{
			Workers: workers,
			Elapsed: total.String(),
		},
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
