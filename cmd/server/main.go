package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"audio-weaver/internal/config"
	"audio-weaver/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container := config.NewContainer()

	// Router
	router := handler.NewRouter(container)

	// Stale-output cleanup
	if err := container.Janitor.Start(); err != nil {
		container.Logger.Error("Failed to start cleanup job", err)
		os.Exit(1)
	}

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	container.Janitor.Stop()
	_ = server.Close()

	container.Logger.Info("Server exited")
}
