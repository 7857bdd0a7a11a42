// Package queue implements the best-effort background file cleaner. Deleting
// a product must never wait on, or fail because of, filesystem cleanup of its
// photos, so deletions run on worker goroutines and failures are only logged.
package queue

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/api/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
)

// FileCleaner fans stored-file paths out to a fixed set of delete workers.
type FileCleaner struct {
	jobs   chan string
	remove func(string) error
	log    zerolog.Logger
}

// NewFileCleaner creates a FileCleaner. The remove function defaults to
// os.Remove when nil.
func NewFileCleaner(remove func(string) error, log zerolog.Logger) *FileCleaner {
	if remove == nil {
		remove = os.Remove
	}
	return &FileCleaner{
		jobs:   make(chan string, channelBuffer),
		remove: remove,
		log:    log,
	}
}

// Start launches the delete workers. Workers stop when ctx is cancelled.
func (c *FileCleaner) Start(ctx context.Context) {
	for i := 0; i < defaultWorkers; i++ {
		go c.runWorker(ctx, i)
	}
}

// Enqueue schedules paths for deletion. Callers never learn whether the
// deletes succeed; a full buffer blocks until a worker drains it.
func (c *FileCleaner) Enqueue(paths ...string) {
	for _, p := range paths {
		c.jobs <- p
		metrics.CleanupQueueDepth.Set(float64(len(c.jobs)))
	}
}

func (c *FileCleaner) runWorker(ctx context.Context, id int) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-c.jobs:
			if !ok {
				return
			}
			metrics.CleanupQueueDepth.Set(float64(len(c.jobs)))
			if err := c.remove(path); err != nil {
				metrics.CleanupDeletedTotal.WithLabelValues("error").Inc()
				c.log.Warn().Err(err).
					Str("path", path).
					Str("worker_id", worker).
					Msg("file cleanup failed")
				continue
			}
			metrics.CleanupDeletedTotal.WithLabelValues("ok").Inc()
			c.log.Debug().Str("path", path).Msg("file removed")
		}
	}
}
