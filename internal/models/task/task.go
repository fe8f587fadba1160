package task

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID                     uuid.UUID   `json:"id"`
	Title                  string      `json:"title"`
	Description            string      `json:"description"`
	Status                 Status      `json:"status"`
	Responsible            Responsible `json:"responsible"`
	CreatedAt              time.Time   `json:"createdAt"`
	DueDate                time.Time   `json:"dueDate"`
	UpdatedAt              time.Time   `json:"updatedAt"`
	CompletedAt            *time.Time  `json:"completedAt,omitempty"`
	LastManualStatusChange *time.Time  `json:"lastManualStatusChange,omitempty"`
}

// Responsible — ответственный за задачу; встроен в задачу, отдельной сущностью не является
type Responsible struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Status string

const StatusTodo Status = "todo"
const StatusInProgress Status = "in_progress"
const StatusOverdue Status = "overdue"
const StatusCompleted Status = "completed"

// AllStatuses — порядок колонок на доске
var AllStatuses = []Status{StatusTodo, StatusInProgress, StatusOverdue, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusOverdue, StatusCompleted:
		return true
	}
	return false
}
