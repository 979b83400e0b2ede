// Package sched implements the priority+FIFO task queue driving the engine.
// Tasks with a numerically smaller priority are processed first; within a
// priority, strictly in enqueue order. The queue is safe for concurrent
// enqueue from multiple producers with a single draining consumer.
package sched

import (
	"container/heap"
	"sync"
	"time"

	"ferret/internal/input"
	"ferret/internal/msg"
)

// Task is one scheduled message, optionally tagged with the key event that
// produced it.
type Task struct {
	Priority  int
	Msg       msg.In
	Key       *input.Key
	CreatedAt time.Time

	seq uint64 // assigned at enqueue, breaks priority ties FIFO
}

func NewTask(priority int, m msg.In, key *input.Key) Task {
	return Task{
		Priority:  priority,
		Msg:       m,
		Key:       key,
		CreatedAt: time.Now(),
	}
}

type taskHeap []Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(Task)) }

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	task := old[n-1]
	*h = old[:n-1]
	return task
}

// Queue is a mutex-guarded min-heap of tasks.
type Queue struct {
	mu   sync.Mutex
	heap taskHeap
	seq  uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push enqueues a task, stamping it with the next sequence number.
func (q *Queue) Push(t Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	t.seq = q.seq
	q.seq++
	heap.Push(&q.heap, t)
}

// Pop removes and returns the highest-priority (then earliest) task.
func (q *Queue) Pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.heap) == 0 {
		return Task{}, false
	}
	return heap.Pop(&q.heap).(Task), true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}
