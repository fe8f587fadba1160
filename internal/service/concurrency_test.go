package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"kanbanBoard/internal/models/task"
	"kanbanBoard/internal/persistence"
	kvinmemory "kanbanBoard/internal/repository/kv/inmemory"
	taskinmemory "kanbanBoard/internal/repository/task/inmemory"
	"kanbanBoard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTaskService_ConcurrentSweep тестирует одновременную работу фоновой
// проверки и ручных мутаций над общей коллекцией
func TestTaskService_ConcurrentSweep(t *testing.T) {
	ctx := context.Background()
	repo := taskinmemory.NewTaskStorage()
	adapter := persistence.NewAdapter(kvinmemory.NewKVStorage())
	svc := service.NewTaskService(repo, adapter)

	responsible := task.Responsible{Name: "Usuário Demo", Email: "user@kanban.com"}
	overdueDue := time.Now().Add(-48 * time.Hour)

	ids := make([]uuid.UUID, 0, 10)
	for i := 0; i < 10; i++ {
		created, err := svc.CreateTask(ctx, fmt.Sprintf("Task %d", i), "", task.StatusTodo, responsible, overdueDue)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := svc.SweepNow(ctx)
				assert.NoError(t, err)
			}
		}()
	}
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := svc.UpdateTaskStatus(ctx, id, task.StatusInProgress)
				assert.NoError(t, err)
			}
		}(id)
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := svc.Columns(ctx)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// Ни одна задача не потеряна
	tasks, err := svc.AllTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 10)
}

// TestTaskService_ReturnsCopies тестирует, что наружу отдаются копии задач
func TestTaskService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := taskinmemory.NewTaskStorage()
	adapter := persistence.NewAdapter(kvinmemory.NewKVStorage())
	svc := service.NewTaskService(repo, adapter)

	responsible := task.Responsible{Name: "Usuário Demo", Email: "user@kanban.com"}
	created, err := svc.CreateTask(ctx, "Original", "", task.StatusTodo, responsible, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	created.Title = "Scribbled"
	created.Status = task.StatusCompleted

	got, err := svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
	assert.Equal(t, task.StatusTodo, got.Status)

	// Копии из списка тоже не связаны с коллекцией
	list, err := svc.AllTasks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].Title = "Scribbled again"

	got, err = svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}
