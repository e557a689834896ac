package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dyluth/taskboard/internal/board"
	"github.com/dyluth/taskboard/internal/config"
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/storage/sqlite"
	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/redis/go-redis/v9"
)

// session is one CLI invocation's view of the board: the loaded config, the
// open storage backend and a hydrated board on top of it.
type session struct {
	cfg     *config.Config
	storage taskboard.Storage
	board   *board.Board
}

// Close releases the storage backend.
func (s *session) Close() error {
	return s.storage.Close()
}

// loadConfig reads --config, falling back to defaults when the file is missing.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			fmt.Sprintf("Error: %v", err),
			map[string]string{"Config": configPath},
			[]string{"Fix the file, or regenerate it:\n  taskboard init --force"},
		)
	}
	return cfg, nil
}

// openStorage connects to the backend selected in cfg.
func openStorage(ctx context.Context, cfg *config.Config) (taskboard.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return taskboard.NewMemoryStorage(), nil

	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.Storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}

		client, err := taskboard.NewClient(opts, cfg.Instance)
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			client.Close()
			return nil, printer.ErrorWithContext(
				"redis unavailable",
				fmt.Sprintf("Could not reach Redis: %v", err),
				map[string]string{"URL": cfg.Storage.RedisURL},
				[]string{
					"Start Redis locally:\n  docker run -d -p 6379:6379 redis:7-alpine",
					"Switch to the SQLite backend:\n  TASKBOARD_STORAGE=sqlite taskboard ...",
				},
			)
		}
		return client, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, printer.ErrorWithContext(
				"cannot open board file",
				fmt.Sprintf("Error: %v", err),
				map[string]string{"Path": cfg.Storage.SQLitePath},
				nil,
			)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// openSession loads config, opens storage and hydrates the board.
// Caller must Close the session.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	b := board.New(storage, board.Options{
		InstanceName: cfg.Instance,
		FetchLatency: cfg.FetchLatency(),
	})

	if err := b.Hydrate(ctx); err != nil {
		storage.Close()
		return nil, printer.Error(
			"failed to load board",
			fmt.Sprintf("Error: %v", err),
			nil,
		)
	}

	return &session{cfg: cfg, storage: storage, board: b}, nil
}
