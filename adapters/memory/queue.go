package memory

import (
	"context"
	"log"
	"sync"

	"datacraft/domain/core"
	"datacraft/ports"
)

// TaskHandler executes one task and returns its result payload.
type TaskHandler func(ctx context.Context, task ports.Task) (interface{}, error)

// TaskQueue runs tasks on in-process goroutines. It keeps the submit/poll
// contract of an external broker so the API layer is unchanged when one is
// swapped in.
type TaskQueue struct {
	handler TaskHandler

	mu   sync.RWMutex
	jobs map[core.JobID]ports.JobResult
}

func NewTaskQueue(handler TaskHandler) *TaskQueue {
	return &TaskQueue{
		handler: handler,
		jobs:    make(map[core.JobID]ports.JobResult),
	}
}

func (q *TaskQueue) Submit(ctx context.Context, task ports.Task) (core.JobID, error) {
	id := core.JobID(core.NewID())

	q.mu.Lock()
	q.jobs[id] = ports.JobResult{Status: ports.JobPending}
	q.mu.Unlock()

	go q.run(id, task)
	return id, nil
}

func (q *TaskQueue) run(id core.JobID, task ports.Task) {
	result, err := q.handler(context.Background(), task)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		log.Printf("[TaskQueue] job %s (%s) failed: %v", id, task.Type, err)
		q.jobs[id] = ports.JobResult{Status: ports.JobFailure, Error: err.Error()}
		return
	}
	q.jobs[id] = ports.JobResult{Status: ports.JobSuccess, Result: result}
}

func (q *TaskQueue) Status(ctx context.Context, id core.JobID) (ports.JobResult, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	result, ok := q.jobs[id]
	if !ok {
		return ports.JobResult{}, core.ErrJobNotFound
	}
	return result, nil
}

var _ ports.TaskQueue = (*TaskQueue)(nil)
