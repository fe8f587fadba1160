package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kanbanBoard/internal/auth"
	"kanbanBoard/internal/config"
	"kanbanBoard/internal/handlers"
	"kanbanBoard/internal/logger"
	"kanbanBoard/internal/middleware"
	"kanbanBoard/internal/persistence"
	taskinmemory "kanbanBoard/internal/repository/task/inmemory"
	kvsqlite "kanbanBoard/internal/repository/kv/sqlite"
	"kanbanBoard/internal/service"
	"kanbanBoard/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	worker    *worker.SweepWorker
	shutdowns []func() // функции для graceful shutdown, выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	kvStore, err := kvsqlite.NewKVStorage(a.config.Storage.Path)
	if err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	adapter := persistence.NewAdapter(kvStore)

	taskRepo := taskinmemory.NewTaskStorage()
	taskService := service.NewTaskService(taskRepo, adapter)
	if err := taskService.LoadFromSnapshot(ctx); err != nil {
		return fmt.Errorf("восстановление коллекции: %w", err)
	}

	authService := auth.NewAuthService(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL, adapter)

	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)

	a.worker = worker.NewSweepWorker(taskService, a.config.Sweep.Interval)
	if err := a.worker.Start(ctx); err != nil {
		return fmt.Errorf("запуск фоновой проверки: %w", err)
	}
	a.shutdowns = append(a.shutdowns, a.worker.Stop)

	a.router = buildRouter(taskHandler, authHandler, authService)
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return nil
}

func buildRouter(taskHandler handlers.TaskHandler, authHandler handlers.AuthHandler, verifier middleware.TokenVerifier) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.Post("/auth/login", authHandler.Login)
	r.Get("/health", taskHandler.HealthCheck)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Get("/board", taskHandler.GetBoard)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.GetTasks)   // GET /tasks
			r.Post("/", taskHandler.PostTask)  // POST /tasks

			r.Get("/search", taskHandler.SearchTasks)         // GET /tasks/search?q=
			r.Get("/overdue", taskHandler.GetOverdueTasks)    // GET /tasks/overdue
			r.Get("/responsibles", taskHandler.GetResponsibles) // GET /tasks/responsibles

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
				r.Put("/", taskHandler.UpdateTaskByID)    // PUT /tasks/{id}
				r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /tasks/{id}

				r.Post("/status", taskHandler.UpdateTaskStatus) // POST /tasks/{id}/status
				r.Post("/reorder", taskHandler.ReorderTask)     // POST /tasks/{id}/reorder
			})
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/summary", taskHandler.GetMetricsSummary)   // GET /metrics/summary
			r.Get("/by-day", taskHandler.GetMetricsByDay)      // GET /metrics/by-day
			r.Get("/productivity", taskHandler.GetProductivity) // GET /metrics/productivity
		})
	})

	return r
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return fmt.Errorf("ошибка сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Server: Завершение работы...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server: Ошибка остановки", err)
	}

	a.runShutdowns()
	return nil
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
