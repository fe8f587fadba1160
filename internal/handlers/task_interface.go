package handlers

import (
	"context"
	"time"

	"kanbanBoard/internal/models/task"
	"kanbanBoard/internal/models/user"
	"kanbanBoard/internal/service"

	"github.com/google/uuid"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, title, description string, status task.Status, responsible task.Responsible, dueDate time.Time) (*task.Task, error)
	GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	AllTasks(ctx context.Context) ([]*task.Task, error)
	ListTasks(ctx context.Context, f service.TaskFilter, by service.SortField, order service.SortOrder) ([]*task.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, options ...service.TaskOption) (*task.Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status) (*task.Task, error)
	ReorderTask(ctx context.Context, id uuid.UUID, newIndex int, status task.Status) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
	Columns(ctx context.Context) ([]task.Column, error)
	OverdueTasks(ctx context.Context) ([]*task.Task, error)
	SearchTasks(ctx context.Context, query string) ([]*task.Task, error)
	Responsibles(ctx context.Context) ([]string, error)
}

type Auth interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*user.User, error)
	VerifyToken(tokenString string) (string, error)
}
