package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/symphogen/mimer-admin/internal/app"
	"github.com/symphogen/mimer-admin/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	ctx := context.Background()
	if err := application.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := application.Run(); err != nil {
			log.Printf("server error: %v", err)
		}
	}()

	fmt.Printf("server listening on port %s\n", cfg.Server.Port)

	<-sigChan
	fmt.Println("\nstopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Printf("failed to stop server cleanly: %v", err)
		os.Exit(1)
	}

	fmt.Println("server stopped")
}
