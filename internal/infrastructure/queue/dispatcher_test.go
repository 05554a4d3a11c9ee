package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/ecomama/marketplace/internal/core/domain"
)

type memActivityRepo struct {
	mu      sync.Mutex
	entries []domain.Activity
	failFor string
	stored  chan struct{}
}

func newMemActivityRepo() *memActivityRepo {
	return &memActivityRepo{stored: make(chan struct{}, 1024)}
}

func (r *memActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if a.CommunityID == r.failFor {
		r.stored <- struct{}{}
		return errors.New("insert failed")
	}
	r.mu.Lock()
	r.entries = append(r.entries, *a)
	r.mu.Unlock()
	r.stored <- struct{}{}
	return nil
}

func (r *memActivityRepo) ListByCommunity(context.Context, string, int) ([]*domain.Activity, error) {
	return nil, nil
}

func (r *memActivityRepo) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.stored:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for entry %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_PreservesPerCommunityOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newMemActivityRepo()
	d := NewDispatcher(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	subjects := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	for _, s := range subjects {
		d.Record(domain.Activity{CommunityID: "c1", Action: domain.ActivityListingCreated, SubjectID: s})
		d.Record(domain.Activity{CommunityID: "c2", Action: domain.ActivityEventCreated, SubjectID: s})
	}
	repo.waitFor(t, 2*len(subjects))
	cancel()
	d.Wait()

	var c1 []string
	repo.mu.Lock()
	for _, e := range repo.entries {
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Fatalf("entry missing id or timestamp: %+v", e)
		}
		if e.CommunityID == "c1" {
			c1 = append(c1, e.SubjectID)
		}
	}
	repo.mu.Unlock()

	if len(c1) != len(subjects) {
		t.Fatalf("expected %d c1 entries, got %d", len(subjects), len(c1))
	}
	for i := range subjects {
		if c1[i] != subjects[i] {
			t.Fatalf("order not preserved: got %v", c1)
		}
	}
}

func TestDispatcher_FailedInsertDoesNotStopWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newMemActivityRepo()
	repo.failFor = "broken"
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.Activity{CommunityID: "broken"})
	d.Record(domain.Activity{CommunityID: "ok"})
	repo.waitFor(t, 2)
	cancel()
	d.Wait()

	if len(repo.entries) != 1 || repo.entries[0].CommunityID != "ok" {
		t.Fatalf("expected only the healthy entry, got %+v", repo.entries)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := newMemActivityRepo()
	d := NewDispatcher(1, repo, zerolog.Nop())

	// Workers are not started, so the single buffer fills up.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.Activity{CommunityID: "c1"})
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newMemActivityRepo(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d default workers, got %d", defaultWorkers, len(d.workers))
	}
	first := d.shardIndex("community-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("community-42") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}

func TestDispatcher_DrainsBufferOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := newMemActivityRepo()
	d := NewDispatcher(2, repo, zerolog.Nop())
	for i := 0; i < 5; i++ {
		d.Record(domain.Activity{CommunityID: "c1", Action: domain.ActivityListingCreated})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if len(repo.entries) != 5 {
		t.Fatalf("expected buffered entries to be persisted, got %d", len(repo.entries))
	}
}
