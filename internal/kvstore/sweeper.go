package kvstore

import (
	"context"
	"sync"
	"time"

	"github.com/page-comments-api/internal/database"
	"github.com/rs/zerolog"
)

// Sweeper periodically deletes expired kv_entries rows
type Sweeper struct {
	db       *database.DB
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSweeper creates a sweeper running every interval
func NewSweeper(db *database.DB, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		db:       db,
		interval: interval,
		log:      log.With().Str("component", "kv-sweeper").Logger(),
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled or Stop is called.
// It blocks; callers run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	defer close(done)

	s.log.Info().Dur("interval", s.interval).Msg("KV sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("KV sweeper stopping")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// Stop cancels the loop and waits for it to exit
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false
	s.log.Info().Msg("KV sweeper stopped")
}

// SweepOnce deletes expired rows and returns how many were removed
func (s *Sweeper) SweepOnce(ctx context.Context) int64 {
	removed, err := DeleteExpired(ctx, s.db, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to delete expired kv entries")
		return 0
	}
	if removed > 0 {
		s.log.Debug().Int64("removed", removed).Msg("Expired kv entries deleted")
	}
	return removed
}
