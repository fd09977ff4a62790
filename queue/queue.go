package queue

import (
	"fmt"
)

// Queue represents a first-in first-out queue where
// tasks to develop tree nodes are pushed and pulled
// in order.
type Queue interface {
	// Push takes a task and stores it at the end of
	// the queue.
	Push(*Task)
	// Pull removes and returns the task at the head of
	// the queue, or nil if the queue is empty.
	Pull() *Task
	// Len returns the number of pending tasks.
	Len() int
}

type memQueue struct {
	pendingTasks []*Task
	head         int
	tail         int
	pending      int
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memQueue{}
}

func (mq *memQueue) Push(t *Task) {
	if mq.pending == len(mq.pendingTasks) {
		mq.reorder()
		mq.pendingTasks = append(mq.pendingTasks, t)
		mq.tail = len(mq.pendingTasks) % cap(mq.pendingTasks)
		mq.pendingTasks = mq.pendingTasks[:cap(mq.pendingTasks)]
	} else {
		mq.pendingTasks[mq.tail] = t
		mq.tail = (mq.tail + 1) % len(mq.pendingTasks)
	}
	mq.pending++
}

func (mq *memQueue) Pull() *Task {
	if mq.pending == 0 {
		return nil
	}
	mq.pending--
	task := mq.pendingTasks[mq.head]
	mq.pendingTasks[mq.head] = nil
	mq.head = (mq.head + 1) % len(mq.pendingTasks)
	return task
}

func (mq *memQueue) Len() int {
	return mq.pending
}

func (mq *memQueue) String() string {
	return fmt.Sprintf("{Queue pending: %d (%v head:%d tail:%d)}", mq.pending, mq.pendingTasks, mq.head, mq.tail)
}

// reorder moves the head of a full ring to the start of the slice
func (mq *memQueue) reorder() {
	if mq.head == 0 {
		return
	}
	mq.pendingTasks = append(mq.pendingTasks[mq.head:], mq.pendingTasks[0:mq.head]...)
	mq.head = 0
}
