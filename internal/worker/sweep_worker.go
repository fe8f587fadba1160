package worker

import (
	"context"
	"fmt"
	"time"

	"kanbanBoard/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SweepService interface {
	SweepNow(ctx context.Context) (int, error)
}

// SweepWorker — периодическая проверка просрочки поверх коллекции задач.
// Запускается сразу при старте, далее по расписанию; окно ручной смены
// статуса учитывает сам сервис.
type SweepWorker struct {
	service  SweepService
	interval time.Duration
	cron     *cron.Cron
}

func NewSweepWorker(service SweepService, interval time.Duration) *SweepWorker {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &SweepWorker{
		service:  service,
		interval: interval,
		cron:     cron.New(),
	}
}

func (w *SweepWorker) Start(ctx context.Context) error {
	// немедленная проверка при старте
	w.Check(ctx)

	seconds := int(w.interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)

	if _, err := w.cron.AddFunc(spec, func() { w.Check(ctx) }); err != nil {
		return fmt.Errorf("регистрация расписания проверки: %w", err)
	}

	w.cron.Start()
	logger.Info("Worker: Фоновая проверка просрочки запущена",
		zap.Duration("interval", w.interval))
	return nil
}

// Stop останавливает расписание и дожидается завершения текущего прохода
func (w *SweepWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info("Worker: Фоновая проверка остановлена")
}

func (w *SweepWorker) Check(ctx context.Context) {
	start := time.Now()

	changed, err := w.service.SweepNow(ctx)
	if err != nil {
		logger.Warn("Worker: Ошибка проверки задач", zap.Error(err))
		return
	}

	logger.Info("Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("overdue", changed))
}
