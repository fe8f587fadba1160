package service

import (
	"context"

	"kanbanBoard/internal/models/task"

	"github.com/google/uuid"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	Update(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	Delete(context.Context, uuid.UUID) error
	List(context.Context) ([]*task.Task, error)
	ListByStatus(context.Context, task.Status) ([]*task.Task, error)
	Reorder(ctx context.Context, id uuid.UUID, newIndex int, status task.Status) error
	ReplaceAll(context.Context, []*task.Task) error
}

// Snapshot — сквозная запись коллекции в blob-хранилище
type Snapshot interface {
	SaveTasks(context.Context, []*task.Task) error
	LoadTasks(context.Context) []*task.Task
}
