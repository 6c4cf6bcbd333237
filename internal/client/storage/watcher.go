package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// DefaultDebounce coalesces the handful of file events one SQLite commit produces.
const DefaultDebounce = 50 * time.Millisecond

// FileWatcher watches the directory of an SQLite database and fires when
// the database file or its journal/WAL changes.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   logging.Logger
}

func NewFileWatcher(dbPath string, debounce time.Duration, logger logging.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{path: dbPath, debounce: debounce, logger: logger.With("module", "file_watcher")}
}

// relevant reports whether an event touches the database. The -shm index is
// skipped because readers update it too.
func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(w.path)
	name := filepath.Base(ev.Name)
	if name == base {
		return true
	}
	suffix, ok := strings.CutPrefix(name, base+"-")
	return ok && suffix != "shm"
}

func (w *FileWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer fw.Close()

		timer := time.NewTimer(w.debounce)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if w.relevant(ev) {
					timer.Reset(w.debounce)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn(ctx, "watch error", "error", err)
			case <-timer.C:
				notify(out)
			}
		}
	}()
	return out, nil
}

// RedisWatcher listens on the channel RedisRepository publishes to.
type RedisWatcher struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisWatcher(rdb redis.UniversalClient, prefix string) *RedisWatcher {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisWatcher{rdb: rdb, channel: changeChannel(prefix)}
}

// Watch returns once the subscription is confirmed, so no publish made after
// it returns is missed.
func (w *RedisWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := w.rdb.Subscribe(ctx, w.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", w.channel, err)
	}

	out := make(chan struct{}, 1)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				notify(out)
			}
		}
	}()
	return out, nil
}
