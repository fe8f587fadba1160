package service

import (
	"time"

	"kanbanBoard/internal/models/task"
)

// GraceWindow — окно после ручной смены статуса, в течение которого
// автоматическая проверка просрочки задачу не трогает
const GraceWindow = 5 * time.Minute

// Sweep пересчитывает статус "просрочено" по дедлайнам.
// Правила, в порядке приоритета:
//  1. выполненные задачи не трогаем;
//  2. недавняя ручная смена статуса (окно GraceWindow по настенным часам)
//     подавляет проверку;
//  3. дедлайн сравнивается по календарным суткам: просрочена задача,
//     чья полночь дедлайна раньше сегодняшней полночи.
//
// Часы пунктов 2 и 3 намеренно не согласованы между собой.
// Возвращает число задач, сменивших статус.
func Sweep(tasks []*task.Task, now time.Time) int {
	today := startOfDay(now)
	changed := 0

	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			continue
		}

		if t.LastManualStatusChange != nil && now.Sub(*t.LastManualStatusChange) < GraceWindow {
			continue
		}

		if startOfDay(t.DueDate).Before(today) {
			if t.Status != task.StatusOverdue {
				changed++
			}
			t.Status = task.StatusOverdue
			t.UpdatedAt = now
		}
	}

	return changed
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysOverdue — на сколько календарных дней просрочен дедлайн; 0, если не просрочен
func DaysOverdue(dueDate, now time.Time) int {
	diff := startOfDay(dueDate).Sub(startOfDay(now))
	days := int(diff.Hours() / 24)
	if days < 0 {
		return -days
	}
	return 0
}
