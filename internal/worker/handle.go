package worker

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"montecarlo-pi/internal/sampler"
)

// State はタスクの状態を表す
type State int32

const (
	StateCreated State = iota
	StateRunning
	StateCompleted
	StateFailedToStart
	StatePanicked
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailedToStart:
		return "failed_to_start"
	case StatePanicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// ErrWorkerPanicked はタスクが異常終了したことを示す
var ErrWorkerPanicked = errors.New("worker terminated abnormally")

// ExecutionError は実行中に異常終了したタスクのエラー
type ExecutionError struct {
	ID    string
	Value any
	Stack []byte
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.ID, ErrWorkerPanicked, e.Value)
}

// Unwrap は ErrWorkerPanicked と、panic 値が error ならそれも返す
func (e *ExecutionError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrWorkerPanicked, err}
	}
	return []error{ErrWorkerPanicked}
}

// Handle は起動済みタスクへの参照
type Handle struct {
	index int
	id    string
	state atomic.Int32
	done  chan struct{}

	// written once by the task goroutine before done is closed
	result sampler.Result
	err    error
}

func newHandle(index int, id string) *Handle {
	return &Handle{
		index: index,
		id:    id,
		done:  make(chan struct{}),
	}
}

// ID はワーカーIDを返す
func (h *Handle) ID() string {
	return h.id
}

// Index は起動順のインデックスを返す
func (h *Handle) Index() int {
	return h.index
}

// State は現在の状態を返す
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Done はタスク終了時に閉じられるチャネルを返す
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait はタスクの終了を待って結果を返す
func (h *Handle) Wait() (sampler.Result, error) {
	<-h.done
	return h.result, h.err
}

// run executes task on the calling goroutine and resolves the handle.
func (h *Handle) run(task Task) {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			h.err = &ExecutionError{ID: h.id, Value: r, Stack: debug.Stack()}
			h.state.Store(int32(StatePanicked))
		}
	}()

	h.state.Store(int32(StateRunning))
	h.result = task.Run()
	h.state.Store(int32(StateCompleted))
}
