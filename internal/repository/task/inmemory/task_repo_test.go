package inmemory_test

import (
	"context"
	"testing"
	"time"

	"kanbanBoard/internal/models/task"
	"kanbanBoard/internal/repository"
	"kanbanBoard/internal/repository/task/inmemory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(title string, status task.Status) *task.Task {
	return &task.Task{
		ID:          uuid.New(),
		Title:       title,
		Status:      status,
		Responsible: task.Responsible{Name: "Usuário Demo", Email: "user@kanban.com"},
		DueDate:     time.Now().Add(24 * time.Hour),
	}
}

// TestTaskStorage_New тестирует создание хранилища
func TestTaskStorage_New(t *testing.T) {
	storage := inmemory.NewTaskStorage()
	assert.NotNil(t, storage)
}

// TestTaskStorage_Create тестирует создание задачи
func TestTaskStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	taskToCreate := newTask("Test Task", task.StatusTodo)
	err := storage.Create(ctx, taskToCreate)
	require.NoError(t, err)

	// Проверяем, что временные поля заполнены
	assert.False(t, taskToCreate.CreatedAt.IsZero())
	assert.Equal(t, taskToCreate.CreatedAt, taskToCreate.UpdatedAt)

	retrieved, err := storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Task", retrieved.Title)
}

// TestTaskStorage_GetByID тестирует получение задачи по ID
func TestTaskStorage_GetByID(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	taskToCreate := newTask("Test Get Task", task.StatusInProgress)
	require.NoError(t, storage.Create(ctx, taskToCreate))

	retrieved, err := storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, taskToCreate.ID, retrieved.ID)

	// Несуществующая задача
	_, err = storage.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_Update тестирует обновление задачи
func TestTaskStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	taskToCreate := newTask("Original Title", task.StatusTodo)
	require.NoError(t, storage.Create(ctx, taskToCreate))
	createdAt := taskToCreate.UpdatedAt

	taskToCreate.Title = "Updated Title"
	err := storage.Update(ctx, taskToCreate)
	require.NoError(t, err)

	retrieved, err := storage.GetByID(ctx, taskToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", retrieved.Title)
	assert.True(t, !retrieved.UpdatedAt.Before(createdAt))

	// Обновление несуществующей задачи
	ghost := newTask("Ghost", task.StatusTodo)
	assert.ErrorIs(t, storage.Update(ctx, ghost), repository.ErrNotFound)
}

// TestTaskStorage_Delete тестирует удаление задачи
func TestTaskStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	taskToDelete := newTask("To Delete", task.StatusTodo)
	require.NoError(t, storage.Create(ctx, taskToDelete))

	require.NoError(t, storage.Delete(ctx, taskToDelete.ID))

	_, err := storage.GetByID(ctx, taskToDelete.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Повторное удаление — ErrNotFound
	assert.ErrorIs(t, storage.Delete(ctx, taskToDelete.ID), repository.ErrNotFound)
}

// TestTaskStorage_List тестирует порядок следования коллекции
func TestTaskStorage_List(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	first := newTask("First", task.StatusTodo)
	second := newTask("Second", task.StatusInProgress)
	third := newTask("Third", task.StatusTodo)

	require.NoError(t, storage.Create(ctx, first))
	require.NoError(t, storage.Create(ctx, second))
	require.NoError(t, storage.Create(ctx, third))

	list, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
	assert.Equal(t, "Third", list[2].Title)

	todos, err := storage.ListByStatus(ctx, task.StatusTodo)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "First", todos[0].Title)
	assert.Equal(t, "Third", todos[1].Title)
}

// TestTaskStorage_Reorder тестирует перестановку внутри колонки
func TestTaskStorage_Reorder(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	x := newTask("X", task.StatusTodo)
	y := newTask("Y", task.StatusTodo)
	other := newTask("Other", task.StatusInProgress)
	z := newTask("Z", task.StatusTodo)

	require.NoError(t, storage.Create(ctx, x))
	require.NoError(t, storage.Create(ctx, y))
	require.NoError(t, storage.Create(ctx, other))
	require.NoError(t, storage.Create(ctx, z))

	// Z на позицию 0 среди todo: [X,Y,Z] -> [Z,X,Y]
	require.NoError(t, storage.Reorder(ctx, z.ID, 0, task.StatusTodo))

	todos, err := storage.ListByStatus(ctx, task.StatusTodo)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "Z", todos[0].Title)
	assert.Equal(t, "X", todos[1].Title)
	assert.Equal(t, "Y", todos[2].Title)

	// Задачи других колонок не затронуты
	inProgress, err := storage.ListByStatus(ctx, task.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, "Other", inProgress[0].Title)

	// Ни одна задача не потеряна и не продублирована
	list, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
	seen := map[string]bool{}
	for _, item := range list {
		assert.False(t, seen[item.Title])
		seen[item.Title] = true
	}
}

// TestTaskStorage_Reorder_NoOp тестирует перестановку на собственную позицию
func TestTaskStorage_Reorder_NoOp(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	x := newTask("X", task.StatusTodo)
	y := newTask("Y", task.StatusTodo)
	z := newTask("Z", task.StatusTodo)

	require.NoError(t, storage.Create(ctx, x))
	require.NoError(t, storage.Create(ctx, y))
	require.NoError(t, storage.Create(ctx, z))

	before, err := storage.List(ctx)
	require.NoError(t, err)
	updatedBefore := y.UpdatedAt

	require.NoError(t, storage.Reorder(ctx, y.ID, 1, task.StatusTodo))

	after, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
	assert.Equal(t, updatedBefore, y.UpdatedAt)
}

// TestTaskStorage_Reorder_CrossStatus тестирует перенос в другую колонку с позицией
func TestTaskStorage_Reorder_CrossStatus(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	a := newTask("A", task.StatusInProgress)
	b := newTask("B", task.StatusTodo)
	c := newTask("C", task.StatusTodo)

	require.NoError(t, storage.Create(ctx, a))
	require.NoError(t, storage.Create(ctx, b))
	require.NoError(t, storage.Create(ctx, c))

	require.NoError(t, storage.Reorder(ctx, a.ID, 1, task.StatusTodo))

	assert.Equal(t, task.StatusTodo, a.Status)

	todos, err := storage.ListByStatus(ctx, task.StatusTodo)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "B", todos[0].Title)
	assert.Equal(t, "A", todos[1].Title)
	assert.Equal(t, "C", todos[2].Title)
}

// TestTaskStorage_Reorder_NotFound тестирует перестановку несуществующей задачи
func TestTaskStorage_Reorder_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	err := storage.Reorder(ctx, uuid.New(), 0, task.StatusTodo)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_ReplaceAll тестирует загрузку снимка
func TestTaskStorage_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	old := newTask("Old", task.StatusTodo)
	require.NoError(t, storage.Create(ctx, old))

	loaded := []*task.Task{
		newTask("Loaded 1", task.StatusTodo),
		newTask("Loaded 2", task.StatusCompleted),
	}
	require.NoError(t, storage.ReplaceAll(ctx, loaded))

	list, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Loaded 1", list[0].Title)
	assert.Equal(t, "Loaded 2", list[1].Title)

	_, err = storage.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
