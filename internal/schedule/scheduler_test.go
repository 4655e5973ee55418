package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_Flush(t *testing.T) {
	q := NewQueue()
	var order []int

	q.Schedule(func() { order = append(order, 1) })
	q.Schedule(func() {
		order = append(order, 2)
		q.Schedule(func() { order = append(order, 3) })
	})

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2, q.Flush())
	assert.Equal(t, []int{1, 2}, order)

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Flush())
}

func TestTask_Cancel(t *testing.T) {
	q := NewQueue()
	ran := false
	task := q.Schedule(func() { ran = true })

	assert.True(t, task.Pending())
	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel())
	assert.False(t, task.Pending())
	assert.Equal(t, 0, q.Len())

	assert.Equal(t, 0, q.Flush())
	assert.False(t, ran)
}

func TestTask_CancelAfterRun(t *testing.T) {
	task := Immediate{}.Schedule(func() {})
	assert.False(t, task.Pending())
	assert.False(t, task.Cancel())

	var nilTask *Task
	assert.False(t, nilTask.Cancel())
	assert.False(t, nilTask.Pending())
}

func TestImmediate(t *testing.T) {
	ran := 0
	Immediate{}.Schedule(func() { ran++ })
	assert.Equal(t, 1, ran)
}

func TestSessions_NewSessionCancelsStaleWork(t *testing.T) {
	q := NewQueue()
	var s Sessions
	var commits []string

	s.Begin()
	s.Defer(q, func() { commits = append(commits, "first") })

	second := s.Begin()
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, second, s.Generation())
	s.Defer(q, func() { commits = append(commits, "second") })

	q.Flush()
	assert.Equal(t, []string{"second"}, commits)
}

func TestSessions_GuardsAgainstLateGenerationChange(t *testing.T) {
	q := NewQueue()
	var s Sessions
	ran := false

	s.Begin()
	s.Defer(q, func() { ran = true })
	// Forget the pending list so only the generation check protects the task.
	s.pending = nil
	s.Begin()

	assert.Equal(t, 1, q.Flush())
	assert.False(t, ran)
}

func TestSessions_DeferImmediate(t *testing.T) {
	var s Sessions
	ran := false
	s.Begin()
	task := s.Defer(Immediate{}, func() { ran = true })

	assert.True(t, ran)
	assert.False(t, task.Pending())
	assert.Empty(t, s.pending)
}
