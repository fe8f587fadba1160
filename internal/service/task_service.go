package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kanbanBoard/internal/logger"
	"kanbanBoard/internal/models/task"
	rep "kanbanBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService — бизнес-правила жизненного цикла задач: мутации поверх
// хранилища, наложение проверки просрочки и сквозная запись снимка.
// mtx сериализует мутации, фоновую проверку и запись снимка между
// HTTP-запросами и воркером; наружу коллекция отдаётся копиями.
type TaskService struct {
	repo     TaskRepository
	snapshot Snapshot
	mtx      sync.Mutex
}

func NewTaskService(repo TaskRepository, snapshot Snapshot) *TaskService {
	return &TaskService{
		repo:     repo,
		snapshot: snapshot,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// LoadFromSnapshot восстанавливает коллекцию из сохранённого снимка
// (или из стартового набора, если снимка нет)
func (s *TaskService) LoadFromSnapshot(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks := s.snapshot.LoadTasks(ctx)
	if err := s.repo.ReplaceAll(ctx, tasks); err != nil {
		return fmt.Errorf("загрузка снимка: %w", err)
	}
	logger.Info("Service: Коллекция задач загружена", zap.Int("count", len(tasks)))
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, title, description string, status task.Status, responsible task.Responsible, dueDate time.Time) (*task.Task, error) {
	if title == "" {
		return nil, NewValidationError("title", "название не может быть пустым")
	}
	if status == "" {
		status = task.StatusTodo
	}
	if !status.Valid() {
		return nil, NewValidationError("status", "неизвестный статус")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	t := &task.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Responsible: responsible,
		DueDate:     dueDate,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	s.persist(ctx)
	return cloneTask(t), nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
			return nil, fmt.Errorf("задача %s не найдена: %w", id.String(), err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return cloneTask(t), nil
}

func (s *TaskService) AllTasks(ctx context.Context) ([]*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return cloneTasks(tasks), nil
}

// ListTasks — отфильтрованное и отсортированное представление без изменения коллекции
func (s *TaskService) ListTasks(ctx context.Context, f TaskFilter, by SortField, order SortOrder) ([]*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	res := Filter(cloneTasks(tasks), f)
	if by != "" {
		res = SortTasks(res, by, order)
	}
	return res, nil
}

// UpdateTask — частичное обновление; несуществующий id — безобидный no-op
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, options ...TaskOption) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Обновление несуществующей задачи пропущено",
				zap.String("target_id", id.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	s.sweepAndPersist(ctx)
	return cloneTask(t), nil
}

// UpdateTaskStatus — явная (ручная) смена статуса: фиксирует момент смены,
// чтобы ближайшая автоматическая проверка не перебила решение пользователя
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status) (*task.Task, error) {
	if !status.Valid() {
		return nil, NewValidationError("status", "неизвестный статус")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Смена статуса несуществующей задачи пропущена",
				zap.String("target_id", id.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	now := time.Now()
	t.Status = status
	if status == task.StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	t.LastManualStatusChange = &now

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("смена статуса: %w", err)
	}

	s.sweepAndPersist(ctx)
	return cloneTask(t), nil
}

// ReorderTask — результат перетаскивания на карточку того же статуса
func (s *TaskService) ReorderTask(ctx context.Context, id uuid.UUID, newIndex int, status task.Status) error {
	if !status.Valid() {
		return NewValidationError("status", "неизвестный статус")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.repo.Reorder(ctx, id, newIndex, status); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Перестановка несуществующей задачи пропущена",
				zap.String("target_id", id.String()))
			return nil
		}
		return fmt.Errorf("перестановка задачи: %w", err)
	}

	s.sweepAndPersist(ctx)
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Удаление несуществующей задачи пропущено",
				zap.String("target_id", id.String()))
			return nil
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	s.persist(ctx)
	return nil
}

// Columns — производные колонки доски; пересчитываются из коллекции, не хранятся
func (s *TaskService) Columns(ctx context.Context) ([]task.Column, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	columns := make([]task.Column, 0, len(task.BoardColumns))
	for _, spec := range task.BoardColumns {
		col := task.Column{
			ID:       spec.ID,
			Title:    spec.Title,
			Tasks:    []*task.Task{},
			WIPLimit: spec.WIPLimit,
			Color:    spec.Color,
		}
		for _, t := range tasks {
			if t.Status == spec.ID {
				col.Tasks = append(col.Tasks, cloneTask(t))
			}
		}
		col.WIPExceeded = spec.WIPLimit != nil && len(col.Tasks) > *spec.WIPLimit
		columns = append(columns, col)
	}
	return columns, nil
}

func (s *TaskService) TasksByStatus(ctx context.Context, status task.Status) ([]*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("получение задач по статусу: %w", err)
	}
	return cloneTasks(tasks), nil
}

func (s *TaskService) OverdueTasks(ctx context.Context) ([]*task.Task, error) {
	return s.TasksByStatus(ctx, task.StatusOverdue)
}

// SearchTasks — широкий поиск: название, описание, имя и почта ответственного
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	search := strings.ToLower(query)
	res := []*task.Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.Description), search) ||
			strings.Contains(strings.ToLower(t.Responsible.Name), search) ||
			strings.Contains(strings.ToLower(t.Responsible.Email), search) {
			res = append(res, cloneTask(t))
		}
	}
	return res, nil
}

// Responsibles — уникальные имена ответственных для фильтра доски
func (s *TaskService) Responsibles(ctx context.Context) ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, t := range tasks {
		if t.Responsible.Name == "" || seen[t.Responsible.Name] {
			continue
		}
		seen[t.Responsible.Name] = true
		names = append(names, t.Responsible.Name)
	}
	return names, nil
}

// SweepNow — немедленный проход проверки просрочки по всей коллекции
func (s *TaskService) SweepNow(ctx context.Context) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("получение задач: %w", err)
	}

	changed := Sweep(tasks, time.Now())
	s.persist(ctx)
	return changed, nil
}

// sweepAndPersist накладывает проверку просрочки поверх мутации:
// только что вручную переставленная задача защищена окном GraceWindow.
// Вызывается только под s.mtx.
func (s *TaskService) sweepAndPersist(ctx context.Context) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения задач для проверки просрочки", err)
		return
	}

	Sweep(tasks, time.Now())
	if err := s.snapshot.SaveTasks(ctx, tasks); err != nil {
		logger.Error("Service: Ошибка сохранения снимка", err)
	}
}

// persist вызывается только под s.mtx
func (s *TaskService) persist(ctx context.Context) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения задач для сохранения", err)
		return
	}

	if err := s.snapshot.SaveTasks(ctx, tasks); err != nil {
		logger.Error("Service: Ошибка сохранения снимка", err)
	}
}

// cloneTask — копия задачи для выдачи наружу: коллекция не делит
// указатели с обработчиками
func cloneTask(t *task.Task) *task.Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.LastManualStatusChange != nil {
		v := *t.LastManualStatusChange
		c.LastManualStatusChange = &v
	}
	return &c
}

func cloneTasks(tasks []*task.Task) []*task.Task {
	res := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		res[i] = cloneTask(t)
	}
	return res
}
