package testinfra

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
)

// Enqueuer records enqueued tasks instead of sending them to Redis.
type Enqueuer struct {
	mu    sync.Mutex
	Tasks []*asynq.Task
	Err   error
}

func (e *Enqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Err != nil {
		return nil, e.Err
	}
	e.Tasks = append(e.Tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Queue: "default"}, nil
}
