package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/colegio/school-system/internal/api/metrics"
	"github.com/colegio/school-system/internal/core/domain"
	"github.com/colegio/school-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// AuditRecorder persists audit entries asynchronously through a fixed set of
// workers, sharded by actor id so entries for the same actor keep their order.
type AuditRecorder struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditRecorder creates an AuditRecorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditRecorder(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditRecorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &AuditRecorder{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *AuditRecorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record hands an entry to the worker responsible for its actor. When that
// worker's buffer is full the entry is dropped with a warning; request
// handling never blocks on the audit trail.
func (r *AuditRecorder) Record(entry domain.AuditEntry) {
	idx := r.shardIndex(entry.ActorID)
	select {
	case r.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
	default:
		r.log.Warn().
			Str("actor_id", entry.ActorID).
			Str("action", entry.Action).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (r *AuditRecorder) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *AuditRecorder) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	gauge := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := r.repo.Insert(ctx, entry); err != nil {
				r.log.Error().Err(err).
					Str("actor_id", entry.ActorID).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit entry persist failed")
			}
		}
	}
}
