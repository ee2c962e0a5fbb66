package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/core/domain"
)

type captureAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *captureAuditRepo) Insert(_ context.Context, entry domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *captureAuditRepo) snapshot() []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func waitForEntries(t *testing.T, repo *captureAuditRepo, want int) []domain.AuditEntry {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := repo.snapshot()
		if len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d audit entries, got %d", want, len(repo.snapshot()))
	return nil
}

func TestAuditRecorder_PersistsEntries(t *testing.T) {
	repo := &captureAuditRepo{}
	rec := NewAuditRecorder(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	for i := 0; i < 10; i++ {
		rec.Record(domain.AuditEntry{
			ActorID: fmt.Sprintf("actor-%d", i),
			Role:    domain.RoleAdmin,
			Action:  "create",
			Entity:  "user",
			At:      time.Now(),
		})
	}

	got := waitForEntries(t, repo, 10)
	if len(got) != 10 {
		t.Fatalf("persisted %d entries, want 10", len(got))
	}
}

func TestAuditRecorder_SameActorKeepsOrder(t *testing.T) {
	repo := &captureAuditRepo{}
	rec := NewAuditRecorder(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	for i := 0; i < 20; i++ {
		rec.Record(domain.AuditEntry{
			ActorID:  "actor-1",
			Role:     domain.RoleAdmin,
			Action:   "update",
			Entity:   "user",
			EntityID: fmt.Sprintf("seq-%02d", i),
			At:       time.Now(),
		})
	}

	got := waitForEntries(t, repo, 20)
	for i, entry := range got {
		want := fmt.Sprintf("seq-%02d", i)
		if entry.EntityID != want {
			t.Fatalf("entry %d out of order: got %s, want %s", i, entry.EntityID, want)
		}
	}
}

func TestAuditRecorder_DefaultsWorkerCount(t *testing.T) {
	rec := NewAuditRecorder(0, &captureAuditRepo{}, zerolog.Nop())
	if len(rec.workers) != defaultWorkers {
		t.Fatalf("got %d workers, want %d", len(rec.workers), defaultWorkers)
	}
}
