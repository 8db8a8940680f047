package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/ports"
)

const channelBuffer = 256

// Cleaner removes orphaned image binaries after their owning note is
// deleted. Deletion handlers only enqueue the stored filename; a single
// worker goroutine performs the filesystem removal, so a slow disk never
// delays the HTTP response.
type Cleaner struct {
	ch    chan string
	store ports.ImageStore
	log   zerolog.Logger
}

func NewCleaner(store ports.ImageStore, log zerolog.Logger) *Cleaner {
	return &Cleaner{
		ch:    make(chan string, channelBuffer),
		store: store,
		log:   log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// Enqueue hands a stored filename to the worker. Non-blocking: if the buffer
// is full the removal is skipped and logged, leaving an orphaned file rather
// than a blocked request.
func (c *Cleaner) Enqueue(name string) {
	select {
	case c.ch <- name:
	default:
		c.log.Warn().Str("image", name).Msg("image cleanup queue full, file left behind")
	}
}

func (c *Cleaner) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case name := <-c.ch:
			if err := c.store.Remove(name); err != nil {
				c.log.Error().Err(err).Str("image", name).Msg("image cleanup failed")
				continue
			}
			c.log.Debug().Str("image", name).Msg("orphaned image removed")
		}
	}
}
