package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kanbanBoard/internal/app"
	"kanbanBoard/internal/config"
)

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		// без config.yml работаем на значениях по умолчанию
		fmt.Printf("config.yml не прочитан (%v), используем значения по умолчанию\n", err)
		cfg = config.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		fmt.Printf("инициализация приложения: %v\n", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		fmt.Printf("остановка приложения: %v\n", err)
		os.Exit(1)
	}
}
