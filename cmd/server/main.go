package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rgould/sprintdeck/internal/config"
	"github.com/rgould/sprintdeck/internal/domain/project"
	"github.com/rgould/sprintdeck/internal/domain/sprint"
	"github.com/rgould/sprintdeck/internal/domain/task"
	"github.com/rgould/sprintdeck/internal/memory"
	"github.com/rgould/sprintdeck/internal/repository"
	"github.com/rgould/sprintdeck/internal/sqlite"
	"github.com/rgould/sprintdeck/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	projectRepo, sprintRepo, taskRepo, ping, closeStore, err := openStore(cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	projectSvc := project.NewService(projectRepo, logger)
	sprintSvc := sprint.NewService(sprintRepo, projectRepo, logger)
	taskSvc := task.NewService(taskRepo, projectRepo, logger)

	server := transport.NewServer(projectSvc, sprintSvc, taskSvc, logger)
	router := server.Router(transport.RouterConfig{
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		CORSOrigins:    cfg.Server.CORSOrigins,
		Ping:           ping,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.Store.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func openStore(cfg config.StoreConfig, logger *slog.Logger) (
	repository.ProjectRepository,
	repository.SprintRepository,
	repository.TaskRepository,
	func(ctx context.Context) error,
	func(),
	error,
) {
	if cfg.Driver == "memory" {
		logger.Warn("using in-memory store, data will not survive restarts")
		store := memory.NewStore()
		return store.Projects(), store.Sprints(), store.Tasks(), store.Ping, func() {}, nil
	}

	if err := ensureDBDir(cfg.Path); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, nil, nil, nil, err
	}

	return sqlite.NewProjectRepository(db),
		sqlite.NewSprintRepository(db),
		sqlite.NewTaskRepository(db),
		db.PingContext,
		func() { db.Close() },
		nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
