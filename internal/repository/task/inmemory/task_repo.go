package inmemory

import (
	"context"
	"sync"
	"time"

	"kanbanBoard/internal/models/task"
	repo "kanbanBoard/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage — авторитетная коллекция задач в памяти.
// Порядок задач хранится неявно: последовательностью в срезе ids.
type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now

	s.storage[taskToCreate.ID] = taskToCreate
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	taskToUpdate.UpdatedAt = time.Now()
	s.storage[taskToUpdate.ID] = taskToUpdate
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet, nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// List — все задачи в порядке следования коллекции
func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id])
	}
	return res, nil
}

func (s *TaskStorage) ListByStatus(ctx context.Context, status task.Status) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		if s.storage[id].Status == status {
			res = append(res, s.storage[id])
		}
	}
	return res, nil
}

// Reorder — переставляет задачу на позицию newIndex среди задач со статусом status.
// Позиции задач других статусов не затрагиваются. Перестановка на собственную
// позицию — no-op.
func (s *TaskStorage) Reorder(ctx context.Context, id uuid.UUID, newIndex int, status task.Status) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}

	// задачи того же статуса без перетаскиваемой, в текущем порядке
	others := []uuid.UUID{}
	oldIndex := -1
	pos := 0
	for _, cur := range s.ids {
		if s.storage[cur].Status != status {
			continue
		}
		if cur == id {
			oldIndex = pos
		} else {
			others = append(others, cur)
		}
		pos++
	}

	if t.Status == status && oldIndex == newIndex {
		return nil
	}

	now := time.Now()
	t.Status = status
	t.UpdatedAt = now

	if len(others) == 0 {
		// единственная задача статуса — глобальная позиция не меняется
		return nil
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(others) {
		newIndex = len(others)
	}

	rest := make([]uuid.UUID, 0, len(s.ids)-1)
	for _, cur := range s.ids {
		if cur != id {
			rest = append(rest, cur)
		}
	}

	insertAt := len(rest)
	var anchor uuid.UUID
	if newIndex < len(others) {
		anchor = others[newIndex]
	} else {
		anchor = others[len(others)-1]
	}
	for ind, cur := range rest {
		if cur == anchor {
			insertAt = ind
			if newIndex >= len(others) {
				insertAt = ind + 1
			}
			break
		}
	}

	s.ids = append(rest[:insertAt], append([]uuid.UUID{id}, rest[insertAt:]...)...)
	return nil
}

// ReplaceAll — полная замена коллекции (загрузка снимка из хранилища)
func (s *TaskStorage) ReplaceAll(ctx context.Context, tasks []*task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage = make(map[uuid.UUID]*task.Task, len(tasks))
	s.ids = make([]uuid.UUID, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := s.storage[t.ID]; ok {
			continue
		}
		s.storage[t.ID] = t
		s.ids = append(s.ids, t.ID)
	}
	return nil
}
