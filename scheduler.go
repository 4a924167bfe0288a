package optsync

import (
	"sync"
	"sync/atomic"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It returns false when the
	// task already ran or was cancelled before.
	Cancel() bool
}

// Scheduler queues callbacks to run on a later turn of the host's UI loop.
// Schedule must never invoke fn before returning.
type Scheduler interface {
	Schedule(fn func()) Task
}

// TaskQueue is a FIFO of callbacks drained explicitly by the host loop, once
// per turn. Scheduling is safe from any goroutine; RunPending must be called
// from the UI loop.
type TaskQueue struct {
	mu      sync.Mutex
	pending []*queuedTask
}

// NewTaskQueue constructs an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

type queuedTask struct {
	fn    func()
	state atomic.Int32
}

const (
	taskPending int32 = iota
	taskDone
	taskCancelled
)

func (t *queuedTask) Cancel() bool {
	return t.state.CompareAndSwap(taskPending, taskCancelled)
}

func (t *queuedTask) run() bool {
	if !t.state.CompareAndSwap(taskPending, taskDone) {
		return false
	}
	t.fn()
	return true
}

// Schedule implements Scheduler.
func (q *TaskQueue) Schedule(fn func()) Task {
	task := &queuedTask{fn: fn}
	if fn == nil {
		task.state.Store(taskDone)
		return task
	}
	q.mu.Lock()
	q.pending = append(q.pending, task)
	q.mu.Unlock()
	return task
}

// RunPending runs every task queued before the call and returns how many
// ran. Tasks scheduled while draining wait for the next call.
func (q *TaskQueue) RunPending() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	ran := 0
	for _, task := range batch {
		if task.run() {
			ran++
		}
	}
	return ran
}

// Len reports how many queued tasks are still runnable.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	count := 0
	for _, task := range q.pending {
		if task.state.Load() == taskPending {
			count++
		}
	}
	return count
}

// DispatchScheduler adapts a host dispatch hook (a function that posts a
// callback onto the UI thread) to Scheduler.
type DispatchScheduler struct {
	dispatch func(callback func())
}

// NewDispatchScheduler wraps dispatch. dispatch must post the callback rather
// than call it inline.
func NewDispatchScheduler(dispatch func(callback func())) *DispatchScheduler {
	return &DispatchScheduler{dispatch: dispatch}
}

// Schedule implements Scheduler. Without a dispatch hook the task is returned
// already cancelled.
func (s *DispatchScheduler) Schedule(fn func()) Task {
	task := &queuedTask{fn: fn}
	if s == nil || s.dispatch == nil || fn == nil {
		task.state.Store(taskCancelled)
		return task
	}
	s.dispatch(func() {
		task.run()
	})
	return task
}
