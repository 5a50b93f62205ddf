// Package events provides a single-worker task queue for host calls that
// are dispatched fire-and-forget with a completion continuation. Tasks run
// strictly in submission order, one at a time, so no task in this
// mechanism ever races another.
package events

import "sync"

type task struct {
	run  func() error
	done func(error)
}

// Queue runs submitted tasks on one goroutine, FIFO. Submissions never
// block, even while the worker is stalled in a task.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []task
	closed bool
	wg     sync.WaitGroup
}

// NewQueue starts the worker goroutine.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	q.wg.Add(1)
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer q.wg.Done()
	q.mu.Lock()
	for {
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		t := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		err := t.run()
		if t.done != nil {
			t.done(err)
		}

		q.mu.Lock()
	}
}

// Submit enqueues run for execution; done, if non-nil, is invoked on the
// worker goroutine with run's error once it completes. Submit does not
// wait for the task. Submitting to a closed queue drops the task.
func (q *Queue) Submit(run func() error, done func(error)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.tasks = append(q.tasks, task{run: run, done: done})
	q.cond.Signal()
}

// Close drains pending tasks and stops the worker.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Signal()
	}
	q.mu.Unlock()
	q.wg.Wait()
}
