package sched_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferret/internal/msg"
	"ferret/internal/sched"
)

func logTask(priority int, text string) sched.Task {
	return sched.NewTask(priority, msg.External{Kind: msg.LogInfo, Input: text}, nil)
}

func popText(t *testing.T, q *sched.Queue) string {
	t.Helper()
	task, ok := q.Pop()
	require.True(t, ok)
	return task.Msg.(msg.External).Input
}

func TestPopOrdersByPriorityThenFIFO(t *testing.T) {
	q := sched.NewQueue()
	q.Push(logTask(2, "third"))
	q.Push(logTask(1, "first"))
	q.Push(logTask(1, "second"))
	q.Push(logTask(3, "fourth"))

	assert.Equal(t, "first", popText(t, q))
	assert.Equal(t, "second", popText(t, q))
	assert.Equal(t, "third", popText(t, q))
	assert.Equal(t, "fourth", popText(t, q))

	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestEqualPriorityIsStrictlyFIFO(t *testing.T) {
	q := sched.NewQueue()
	want := []string{"a", "b", "c", "d", "e", "f"}
	for _, text := range want {
		q.Push(logTask(0, text))
	}

	var got []string
	for {
		task, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, task.Msg.(msg.External).Input)
	}
	assert.Equal(t, want, got)
}

func TestPopOnEmptyQueue(t *testing.T) {
	q := sched.NewQueue()
	_, ok := q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestConcurrentEnqueue(t *testing.T) {
	q := sched.NewQueue()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(logTask(j%3, "x"))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 800, q.Len())

	last := -1
	for {
		task, ok := q.Pop()
		if !ok {
			break
		}
		assert.GreaterOrEqual(t, task.Priority, last)
		last = task.Priority
	}
}
