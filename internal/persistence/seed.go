package persistence

import (
	"time"

	"kanbanBoard/internal/models/task"

	"github.com/google/uuid"
)

// SeedTasks — стартовый набор задач для первого запуска и для
// восстановления после повреждённого снимка
func SeedTasks() []*task.Task {
	now := time.Now()
	admin := task.Responsible{Name: "Administrador Demo", Email: "admin@kanban.com"}
	demo := task.Responsible{Name: "Usuário Demo", Email: "user@kanban.com"}
	completedAt := now.Add(-24 * time.Hour)

	return []*task.Task{
		{
			ID:          uuid.New(),
			Title:       "Подготовить макет доски",
			Description: "Черновой вариант колонок и карточек",
			Status:      task.StatusTodo,
			Responsible: demo,
			CreatedAt:   now.Add(-72 * time.Hour),
			DueDate:     now.Add(48 * time.Hour),
			UpdatedAt:   now.Add(-72 * time.Hour),
		},
		{
			ID:          uuid.New(),
			Title:       "Настроить метрики",
			Description: "Дашборд: процент выполнения и просрочка",
			Status:      task.StatusInProgress,
			Responsible: admin,
			CreatedAt:   now.Add(-48 * time.Hour),
			DueDate:     now.Add(24 * time.Hour),
			UpdatedAt:   now.Add(-6 * time.Hour),
		},
		{
			ID:          uuid.New(),
			Title:       "Согласовать счёт за сентябрь",
			Description: "Invoice отправлен на проверку бухгалтерии",
			Status:      task.StatusTodo,
			Responsible: admin,
			CreatedAt:   now.Add(-24 * time.Hour),
			DueDate:     now.Add(72 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          uuid.New(),
			Title:       "Завести демо-пользователей",
			Description: "Две учётные записи для показа",
			Status:      task.StatusCompleted,
			Responsible: demo,
			CreatedAt:   now.Add(-96 * time.Hour),
			DueDate:     now.Add(-24 * time.Hour),
			UpdatedAt:   completedAt,
			CompletedAt: &completedAt,
		},
	}
}
