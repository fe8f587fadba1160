package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kanbanBoard/internal/logger"
	"kanbanBoard/internal/models/task"
	"kanbanBoard/internal/models/user"
	repo "kanbanBoard/internal/repository"
	"kanbanBoard/internal/repository/kv"

	"go.uber.org/zap"
)

const TasksKey = "kanban-tasks"
const UserKey = "kanban-user"

// Adapter сериализует коллекцию задач целиком под одним ключом.
// Последняя запись побеждает: без диффов, без версионирования.
type Adapter struct {
	store kv.Store
}

func NewAdapter(store kv.Store) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	blob, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("сериализация задач: %w", err)
	}
	if err := a.store.Set(ctx, TasksKey, string(blob)); err != nil {
		return fmt.Errorf("сохранение задач: %w", err)
	}
	return nil
}

// LoadTasks читает снимок коллекции; при отсутствии или порче blob-а
// возвращает встроенный стартовый набор — ошибка не фатальна
func (a *Adapter) LoadTasks(ctx context.Context) []*task.Task {
	blob, err := a.store.Get(ctx, TasksKey)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			logger.Error("Persistence: Ошибка чтения хранилища", err)
		}
		return SeedTasks()
	}

	var tasks []*task.Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		logger.Error("Persistence: Повреждённый снимок задач, загружаем стартовый набор", err,
			zap.String("key", TasksKey))
		return SeedTasks()
	}
	// JSON-значение null проходит Unmarshal без ошибки; пустой массив — валидный снимок
	if tasks == nil {
		logger.Warn("Persistence: Снимок задач не является массивом, загружаем стартовый набор",
			zap.String("key", TasksKey))
		return SeedTasks()
	}
	return tasks
}

func (a *Adapter) SaveUser(ctx context.Context, u *user.User) error {
	blob, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("сериализация пользователя: %w", err)
	}
	if err := a.store.Set(ctx, UserKey, string(blob)); err != nil {
		return fmt.Errorf("сохранение пользователя: %w", err)
	}
	return nil
}

func (a *Adapter) LoadUser(ctx context.Context) (*user.User, error) {
	blob, err := a.store.Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}

	var u user.User
	if err := json.Unmarshal([]byte(blob), &u); err != nil {
		return nil, fmt.Errorf("повреждённая запись пользователя: %w", err)
	}
	return &u, nil
}

func (a *Adapter) ClearUser(ctx context.Context) error {
	return a.store.Delete(ctx, UserKey)
}
