// Package schedule runs fire-and-forget delayed callbacks on the caller's
// event loop.
//
// Tasks are never cancelled. Tasks due at the same instant run in the order
// they were scheduled, so when two callbacks race to write the same target
// the one scheduled last wins.
package schedule

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// Scheduler accepts delayed callbacks.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts a function to the Scheduler interface.
type Func func(d time.Duration, fn func())

func (f Func) After(d time.Duration, fn func()) { f(d, fn) }

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

func byDueThenSeq(a, b interface{}) int {
	ta, tb := a.(*task), b.(*task)
	switch {
	case ta.due.Before(tb.due):
		return -1
	case ta.due.After(tb.due):
		return 1
	case ta.seq < tb.seq:
		return -1
	case ta.seq > tb.seq:
		return 1
	}
	return 0
}

// Queue is a deterministic Scheduler. The host drains it by calling RunDue
// from its event loop whenever Next reports a task is ready. Queue is not
// safe for concurrent use.
type Queue struct {
	clock clock.Clock
	tasks *priorityqueue.Queue
	seq   uint64
}

var _ Scheduler = (*Queue)(nil)

// NewQueue creates a queue reading time from c. A nil clock uses wall time.
func NewQueue(c clock.Clock) *Queue {
	if c == nil {
		c = clock.New()
	}
	return &Queue{clock: c, tasks: priorityqueue.NewWith(byDueThenSeq)}
}

// Clock returns the time source of the queue.
func (q *Queue) Clock() clock.Clock { return q.clock }

// After schedules fn to run d from now. Negative delays run on the next
// drain.
func (q *Queue) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	q.seq++
	q.tasks.Enqueue(&task{due: q.clock.Now().Add(d), seq: q.seq, fn: fn})
}

// Len reports the number of pending tasks.
func (q *Queue) Len() int { return q.tasks.Size() }

// Next reports how long until the earliest pending task is due.
func (q *Queue) Next() (time.Duration, bool) {
	head, ok := q.tasks.Peek()
	if !ok {
		return 0, false
	}
	wait := head.(*task).due.Sub(q.clock.Now())
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

// RunDue runs every task whose due time has passed, including tasks that
// become due while draining, and returns how many ran.
func (q *Queue) RunDue() int {
	ran := 0
	now := q.clock.Now()
	for {
		head, ok := q.tasks.Peek()
		if !ok || head.(*task).due.After(now) {
			return ran
		}
		q.tasks.Dequeue()
		head.(*task).fn()
		ran++
	}
}

// Advance moves a mock clock forward by d, stopping at each pending due time
// so tasks observe the clock value they were scheduled for.
func Advance(m *clock.Mock, q *Queue, d time.Duration) {
	target := m.Now().Add(d)
	for {
		head, ok := q.tasks.Peek()
		if !ok {
			break
		}
		due := head.(*task).due
		if due.After(target) {
			break
		}
		if due.After(m.Now()) {
			m.Set(due)
		}
		q.RunDue()
	}
	if target.After(m.Now()) {
		m.Set(target)
	}
}
