package dto

import (
	"time"

	"kanbanBoard/internal/metrics"
	"kanbanBoard/internal/models/task"
	"kanbanBoard/internal/models/user"
	"kanbanBoard/internal/service"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      task.Status      `json:"status,omitempty"`
	Responsible task.Responsible `json:"responsible"`
	DueDate     time.Time        `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Status      *task.Status      `json:"status,omitempty"`
	Responsible *task.Responsible `json:"responsible,omitempty"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
}

// Options переводит непустые поля запроса в функции частичного обновления
func (r *UpdateTaskRequest) Options() []service.TaskOption {
	options := []service.TaskOption{}
	if r.Title != nil {
		options = append(options, service.WithTitle(*r.Title))
	}
	if r.Description != nil {
		options = append(options, service.WithDescription(*r.Description))
	}
	if r.Status != nil {
		options = append(options, service.WithStatus(*r.Status))
	}
	if r.Responsible != nil {
		options = append(options, service.WithResponsible(*r.Responsible))
	}
	if r.DueDate != nil {
		options = append(options, service.WithDueDate(*r.DueDate))
	}
	return options
}

type UpdateStatusRequest struct {
	Status task.Status `json:"status"`
}

type ReorderRequest struct {
	NewIndex int         `json:"new_index"`
	Status   task.Status `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

type TaskResponse struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Responsible task.Responsible `json:"responsible"`
	CreatedAt   time.Time        `json:"createdAt"`
	DueDate     time.Time        `json:"dueDate"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	DaysOverdue int              `json:"daysOverdue"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Responsible: t.Responsible,
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
		DaysOverdue: service.DaysOverdue(t.DueDate, time.Now()),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type MetricsSummaryResponse struct {
	CompletionRate        metrics.CompletionRate `json:"completionRate"`
	AverageCompletionDays int                    `json:"averageCompletionDays"`
	OverdueRate           int                    `json:"overdueRate"`
	InProgressRate        int                    `json:"inProgressRate"`
}

type DayBucket struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}
