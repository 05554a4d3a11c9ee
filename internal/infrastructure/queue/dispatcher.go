package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecomama/marketplace/internal/api/metrics"
	"github.com/ecomama/marketplace/internal/core/domain"
	"github.com/ecomama/marketplace/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Dispatcher persists community activity off the request path. Entries are
// routed to a fixed set of workers by hashing the community id, so the
// entries of one community are stored in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
		now:     time.Now,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues an entry without blocking. The entry is dropped when its
// worker's buffer is full.
func (d *Dispatcher) Record(entry domain.Activity) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = d.now().UTC()
	}

	idx := d.shardIndex(entry.CommunityID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("community_id", entry.CommunityID).
			Str("action", string(entry.Action)).
			Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps a community id deterministically to a worker index.
func (d *Dispatcher) shardIndex(communityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(communityID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case entry := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Dec()
			d.persist(ctx, id, entry)
		}
	}
}

// drain persists whatever is still buffered once the worker is told to stop.
func (d *Dispatcher) drain(id int, ch <-chan domain.Activity) {
	label := strconv.Itoa(id)
	for {
		select {
		case entry := <-ch:
			metrics.ActivityQueueDepth.WithLabelValues(label).Dec()
			d.persist(context.Background(), id, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, workerID int, entry domain.Activity) {
	start := time.Now()
	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	if err := d.repo.Insert(insertCtx, &entry); err != nil {
		metrics.ActivityProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		d.log.Error().Err(err).
			Str("community_id", entry.CommunityID).
			Str("action", string(entry.Action)).
			Int("worker_id", workerID).
			Msg("activity persistence failed")
		return
	}
	metrics.ActivityProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
}
