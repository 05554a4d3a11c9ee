package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultSweepInterval = 15 * time.Minute

// ListingExpirer expires listings whose expiry has passed.
type ListingExpirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically expires stale listings.
type Sweeper struct {
	expirer  ListingExpirer
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

func NewSweeper(expirer ListingExpirer, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		log:      log,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval until ctx is
// cancelled. Done is closed when the loop has exited.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) Done() <-chan struct{} {
	return s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.once.Do(func() { close(s.done) })

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.expirer.ExpireStale(ctx, s.now()); err != nil && ctx.Err() == nil {
		s.log.Warn().Err(err).Msg("listing expiry sweep failed")
	}
}
