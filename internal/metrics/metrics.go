// Package metrics — чистые функции показателей дашборда.
// Все расчёты выполняются по текущей коллекции задач и ничего не изменяют.
package metrics

import (
	"math"
	"time"

	"kanbanBoard/internal/models/task"
)

type CompletionRate struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Total int `json:"total"`
}

type ProductivityMetrics struct {
	CompletionRate float64 `json:"completionRate"`
	OverdueRate    float64 `json:"overdueRate"`
	Efficiency     float64 `json:"efficiency"`
	Workload       int     `json:"workload"`
}

// CalculateCompletionRate — процент выполненных за сегодня, за неделю
// (с последнего понедельника) и за всё время; при пустой коллекции — нули
func CalculateCompletionRate(tasks []*task.Task, now time.Time) CompletionRate {
	if len(tasks) == 0 {
		return CompletionRate{}
	}

	weekStart := StartOfWeek(now)

	completedToday := 0
	completedThisWeek := 0
	totalCompleted := 0
	for _, t := range tasks {
		if t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		totalCompleted++
		if isSameDay(*t.CompletedAt, now) {
			completedToday++
		}
		if !t.CompletedAt.Before(weekStart) {
			completedThisWeek++
		}
	}

	return CompletionRate{
		Today: roundPercent(completedToday, len(tasks)),
		Week:  roundPercent(completedThisWeek, len(tasks)),
		Total: roundPercent(totalCompleted, len(tasks)),
	}
}

// CalculateAverageCompletionTime — среднее число календарных дней от
// создания до выполнения (каждая задача округляется вверх); 0, если
// выполненных задач нет
func CalculateAverageCompletionTime(tasks []*task.Task) int {
	totalDays := 0
	completed := 0
	for _, t := range tasks {
		if t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		days := math.Ceil(t.CompletedAt.Sub(t.CreatedAt).Hours() / 24)
		totalDays += int(days)
		completed++
	}

	if completed == 0 {
		return 0
	}
	return int(math.Round(float64(totalDays) / float64(completed)))
}

func OverdueRate(tasks []*task.Task) int {
	return roundPercent(countByStatus(tasks, task.StatusOverdue), len(tasks))
}

func InProgressRate(tasks []*task.Task) int {
	return roundPercent(countByStatus(tasks, task.StatusInProgress), len(tasks))
}

// TasksByDayOfWeek — число выполненных задач по дням недели завершения,
// 7 корзин Вс..Сб
func TasksByDayOfWeek(tasks []*task.Task) [7]int {
	var buckets [7]int
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		buckets[int(t.CompletedAt.Weekday())]++
	}
	return buckets
}

// CalculateProductivity — сводные показатели продуктивности; доли не округляются
func CalculateProductivity(tasks []*task.Task) ProductivityMetrics {
	total := len(tasks)
	completed := countByStatus(tasks, task.StatusCompleted)
	overdue := countByStatus(tasks, task.StatusOverdue)
	inProgress := countByStatus(tasks, task.StatusInProgress)

	m := ProductivityMetrics{Workload: inProgress}
	if total > 0 {
		m.CompletionRate = float64(completed) / float64(total) * 100
		m.OverdueRate = float64(overdue) / float64(total) * 100
	}
	if completed > 0 {
		m.Efficiency = float64(completed) / float64(completed+overdue) * 100
	}
	return m
}

// StartOfWeek — полночь последнего понедельника; воскресенье считается
// шестым днём предыдущей недели
func StartOfWeek(now time.Time) time.Time {
	day := int(now.Weekday())
	diff := day - 1
	if day == 0 {
		diff = 6
	}
	monday := now.AddDate(0, 0, -diff)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func countByStatus(tasks []*task.Task, status task.Status) int {
	count := 0
	for _, t := range tasks {
		if t.Status == status {
			count++
		}
	}
	return count
}

func roundPercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
