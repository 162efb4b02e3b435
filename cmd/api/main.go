package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/task-service/internal/auth"
	"github.com/Dan9191/task-service/internal/config"
	"github.com/Dan9191/task-service/internal/handler"
	"github.com/Dan9191/task-service/internal/health"
	"github.com/Dan9191/task-service/internal/repository"
	"github.com/Dan9191/task-service/internal/service"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	logger := newLogger("")

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(parseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DBConn, cfg.DBConnectRetries, cfg.DBConnectDelay, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	checker := health.NewChecker(db, logger)
	if err := checker.Start(cfg.HealthSchedule); err != nil {
		logger.Fatalf("Failed to start health heartbeat: %v", err)
	}
	defer checker.Stop()

	// Initialize layers
	repo := repository.NewRepository(db)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	svc, err := service.NewService(repo, tokens, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc, checker, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Routes(tokens, cfg.CORSOrigin),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatalf("Failed to listen on %s: %v", addr, err)
	}

	logger.Infof("Starting server on %s", addr)
	if err := serve(ctx, server, ln, logger); err != nil {
		logger.Errorf("Server failed: %v", err)
		return
	}
	logger.Info("Server stopped")
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(parseLevel(level))
	return logger
}

// parseLevel falls back to Info for an empty or unknown level.
func parseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// serve runs server on ln until ctx is cancelled. It returns only after
// Shutdown has drained in-flight requests, so deferred cleanup in main never
// races a running handler.
func serve(ctx context.Context, server *http.Server, ln net.Listener, log logrus.FieldLogger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
