package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wavelink-server/internal/handler"

	"github.com/gorilla/mux"
)

func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	// Hub event loop runs on its own goroutine for the process lifetime.
	go app.Hub.Run()

	r := mux.NewRouter()
	r.HandleFunc("/ws", app.Handler.HandleConnection).Methods("GET")
	r.HandleFunc("/health", handler.Health).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + app.Config.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The listener goroutine reports back instead of exiting so the deferred
	// cleanup still closes the store connections on a failed bind.
	serverErrors := make(chan error, 1)
	go func() {
		app.Log.Info("server starting", "port", app.Config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.Log.Error("server failed", "error", err)
	case <-quit:
		app.Log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			app.Log.Error("forced shutdown", "error", err)
		}
	}
	app.Hub.Stop()

	app.Log.Info("server exited")
}
