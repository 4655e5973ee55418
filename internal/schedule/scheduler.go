// Package schedule defers picker work to a later frame and lets newer edit
// sessions cancel work queued by older ones.
package schedule

// Scheduler runs functions at some later point on the caller's goroutine.
type Scheduler interface {
	Schedule(fn func()) *Task
}

// Task is a scheduled function that may still be canceled.
type Task struct {
	fn       func()
	canceled bool
	done     bool
}

// Cancel prevents the task from running. It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	if t == nil || t.done || t.canceled {
		return false
	}
	t.canceled = true
	return true
}

// Pending reports whether the task has neither run nor been canceled.
func (t *Task) Pending() bool {
	return t != nil && !t.done && !t.canceled
}

func (t *Task) run() bool {
	if !t.Pending() {
		return false
	}
	t.done = true
	t.fn()
	return true
}

// Queue collects tasks until Flush, like work waiting for the next frame.
type Queue struct {
	tasks []*Task
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn to the queue.
func (q *Queue) Schedule(fn func()) *Task {
	t := &Task{fn: fn}
	q.tasks = append(q.tasks, t)
	return t
}

// Flush runs the tasks queued so far in order and returns how many ran.
// Tasks scheduled while flushing wait for the next Flush.
func (q *Queue) Flush() int {
	tasks := q.tasks
	q.tasks = nil

	ran := 0
	for _, t := range tasks {
		if t.run() {
			ran++
		}
	}
	return ran
}

// Len returns the number of queued tasks that are still pending.
func (q *Queue) Len() int {
	n := 0
	for _, t := range q.tasks {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Immediate runs every task as soon as it is scheduled.
type Immediate struct{}

// Schedule runs fn and returns the finished task.
func (Immediate) Schedule(fn func()) *Task {
	t := &Task{fn: fn}
	t.run()
	return t
}

// Sessions numbers edit sessions. Work deferred in one session never runs
// once a newer session has begun.
type Sessions struct {
	generation uint64
	pending    []*Task
}

// Begin starts a new session and cancels everything deferred by older ones.
func (s *Sessions) Begin() uint64 {
	for _, t := range s.pending {
		t.Cancel()
	}
	s.pending = nil
	s.generation++
	return s.generation
}

// Generation returns the current session number.
func (s *Sessions) Generation() uint64 {
	return s.generation
}

// Defer schedules fn on sched for the current session.
func (s *Sessions) Defer(sched Scheduler, fn func()) *Task {
	generation := s.generation
	t := sched.Schedule(func() {
		if generation != s.generation {
			return
		}
		fn()
	})
	if t.Pending() {
		s.pending = append(s.pending, t)
	}
	return t
}
