package text

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/logger"
)

// notifyInterval is the minimum gap between two rounds of change
// notifications. Events arriving while a round waits are merged into it,
// so a file written in several steps is reported once per round.
const notifyInterval = 250 * time.Millisecond

// Watch streams the kind of every data file that is written, created,
// renamed or removed. The directories holding the files are watched rather
// than the files themselves so that files replaced by rename are still seen.
// The channel is closed when ctx is cancelled or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan domain.Kind, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, dir := range s.dirs() {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	out := make(chan domain.Kind)
	limiter := rate.NewLimiter(rate.Every(notifyInterval), 1)

	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.Events:
				if !ok {
					return
				}
				pending := make(map[domain.Kind]bool)
				s.collect(pending, event)
				if len(pending) == 0 {
					continue
				}
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				open := s.drain(pending, w.Events)
				for _, kind := range domain.Kinds() {
					if !pending[kind] {
						continue
					}
					select {
					case out <- kind:
					case <-ctx.Done():
						return
					}
				}
				if !open {
					return
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watching %s: %v", s.dir, err)
			}
		}
	}()

	return out, nil
}

// collect marks the kind an event concerns as pending.
func (s *Store) collect(pending map[domain.Kind]bool, event fsnotify.Event) {
	kind, relevant := s.kindForEvent(event)
	if !relevant {
		return
	}
	logger.Debug("%s changed (%s)", event.Name, event.Op)
	pending[kind] = true
}

// drain merges every event already queued into pending without blocking.
// It returns false if the events channel was closed.
func (s *Store) drain(pending map[domain.Kind]bool, events <-chan fsnotify.Event) bool {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			s.collect(pending, event)
		default:
			return true
		}
	}
}

// kindForEvent reports which kind an event concerns, ignoring chmod-only
// events and files that are not data files.
func (s *Store) kindForEvent(event fsnotify.Event) (domain.Kind, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	return s.kindForFile(event.Name)
}
