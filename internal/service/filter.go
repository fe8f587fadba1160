package service

import (
	"sort"
	"strings"

	"kanbanBoard/internal/models/task"
)

// TaskFilter — условия отбора для отображения; пустое поле (или "all")
// пропускает всё, условия объединяются по И
type TaskFilter struct {
	Status      string
	Responsible string
	Search      string
}

type SortField string

const SortByCreatedAt SortField = "createdAt"
const SortByDueDate SortField = "dueDate"

type SortOrder string

const OrderAsc SortOrder = "asc"
const OrderDesc SortOrder = "desc"

func Filter(tasks []*task.Task, f TaskFilter) []*task.Task {
	res := []*task.Task{}
	for _, t := range tasks {
		if !matches(t, f) {
			continue
		}
		res = append(res, t)
	}
	return res
}

func matches(t *task.Task, f TaskFilter) bool {
	if f.Status != "" && f.Status != "all" && string(t.Status) != f.Status {
		return false
	}

	if f.Responsible != "" && f.Responsible != "all" {
		if !strings.Contains(strings.ToLower(t.Responsible.Name), strings.ToLower(f.Responsible)) {
			return false
		}
	}

	if f.Search != "" {
		search := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			return false
		}
	}

	return true
}

// SortTasks — устойчивая сортировка по дате: задачи с равными датами
// сохраняют взаимный порядок исходной последовательности
func SortTasks(tasks []*task.Task, by SortField, order SortOrder) []*task.Task {
	res := make([]*task.Task, len(tasks))
	copy(res, tasks)

	key := func(t *task.Task) int64 {
		if by == SortByDueDate {
			return t.DueDate.UnixNano()
		}
		return t.CreatedAt.UnixNano()
	}

	sort.SliceStable(res, func(i, j int) bool {
		if order == OrderDesc {
			return key(res[i]) > key(res[j])
		}
		return key(res[i]) < key(res[j])
	})

	return res
}
