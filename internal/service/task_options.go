package service

import (
	"time"

	"kanbanBoard/internal/models/task"
)

// TaskOption — функция частичного обновления: применяется к задаче по месту
type TaskOption func(*task.Task)

func WithTitle(title string) TaskOption {
	return func(t *task.Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(t *task.Task) {
		t.Description = description
	}
}

func WithStatus(status task.Status) TaskOption {
	return func(t *task.Task) {
		t.Status = status
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	return func(t *task.Task) {
		t.DueDate = dueDate
	}
}

func WithResponsible(responsible task.Responsible) TaskOption {
	return func(t *task.Task) {
		t.Responsible = responsible
	}
}
