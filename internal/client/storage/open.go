package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/waitlistadmin/internal/filex"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Options struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	Logger        logging.Logger
}

// Backend bundles a repository with the watcher matching it.
type Backend struct {
	Repository Repository
	Watcher    Watcher
	closeFn    func() error
}

func (b *Backend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}

// Open builds the backend selected by opts.Backend; an empty value means SQLite.
func Open(ctx context.Context, opts Options) (*Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	switch opts.Backend {
	case "", BackendSQLite:
		if opts.Path == "" {
			return nil, errors.New("storage path is required for sqlite backend")
		}
		path, err := filex.EnsureParentDir(opts.Path)
		if err != nil {
			return nil, err
		}
		db, err := InitDatabase(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		logger.Debug(ctx, "sqlite storage opened", "path", path)
		return &Backend{
			Repository: NewSQLiteRepository(db),
			Watcher:    NewFileWatcher(path, DefaultDebounce, logger),
			closeFn:    db.Close,
		}, nil

	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New("redis address is required for redis backend")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Debug(ctx, "redis storage opened", "addr", opts.RedisAddr, "prefix", opts.RedisPrefix)
		return &Backend{
			Repository: NewRedisRepository(rdb, opts.RedisPrefix),
			Watcher:    NewRedisWatcher(rdb, opts.RedisPrefix),
			closeFn:    rdb.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
