package dom

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// TaskQueue is the task source of a single-threaded event loop.
// https://html.spec.whatwg.org/#task-queue
//
// Tasks never run inside Queue; they run when the owner drains the queue
// with RunPending or Run.
type TaskQueue struct {
	mu     sync.Mutex
	tasks  []func()
	notify chan struct{}
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{notify: make(chan struct{}, 1)}
}

// Queue appends fn to the queue.
func (q *TaskQueue) Queue(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *TaskQueue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	task := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return task, true
}

// RunPending runs tasks in FIFO order until the queue is empty, including
// tasks queued by the tasks it runs. It returns the number of tasks run.
func (q *TaskQueue) RunPending() int {
	ran := 0
	for {
		task, ok := q.next()
		if !ok {
			break
		}
		task()
		ran++
	}
	if ran > 0 {
		logrus.WithField("method", "RunPending").Debugf("ran %d tasks", ran)
	}
	return ran
}

// Run processes tasks as they are queued until ctx is done.
func (q *TaskQueue) Run(ctx context.Context) error {
	for {
		q.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}
