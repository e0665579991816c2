package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-survey/internal/config"
	"github.com/stemsi/exstem-survey/internal/model"
)

// ResponseStore persists one accepted submission.
type ResponseStore interface {
	Create(ctx context.Context, resp *model.StoredResponse) error
}

// ResponseWorker consumes persist_responses_queue and inserts responses into PostgreSQL.
type ResponseWorker struct {
	store ResponseStore
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewResponseWorker creates a new ResponseWorker.
func NewResponseWorker(store ResponseStore, rdb *redis.Client, log zerolog.Logger) *ResponseWorker {
	return &ResponseWorker{
		store: store,
		rdb:   rdb,
		log:   log.With().Str("component", "response_worker").Logger(),
	}
}

// Start begins the worker loop and returns after ctx is cancelled and the
// queue is drained. Call in a goroutine.
func (w *ResponseWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ResponseWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistResponsesQueue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			time.Sleep(time.Second)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	w.handle(ctx, result[1])
}

// handle persists one raw payload. Anything that cannot be stored is parked
// on failed_responses_queue for inspection and is not retried.
func (w *ResponseWorker) handle(ctx context.Context, raw string) {
	if err := w.persist(ctx, raw); err != nil {
		// Interrupted by shutdown; put it back for drain.
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			w.rdb.LPush(context.Background(), config.WorkerKey.PersistResponsesQueue, raw)
			return
		}
		w.log.Error().Err(err).Msg("Persist failed, moving to failed queue")
		if err := w.rdb.RPush(context.Background(), config.WorkerKey.FailedResponsesQueue, raw).Err(); err != nil {
			w.log.Error().Err(err).Str("payload", raw).Msg("Failed queue push error, payload dropped")
		}
	}
}

func (w *ResponseWorker) persist(ctx context.Context, raw string) error {
	var resp model.StoredResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if err := w.store.Create(ctx, &resp); err != nil {
		return fmt.Errorf("create response %s: %w", resp.ID, err)
	}

	w.rdb.Del(ctx, config.CacheKey.ResponseStatsKey())
	w.log.Debug().
		Str("response_id", resp.ID.String()).
		Int("answers", len(resp.Answers)).
		Msg("Response persisted")
	return nil
}

// drain processes all remaining items in the queue before shutdown.
func (w *ResponseWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, config.WorkerKey.PersistResponsesQueue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				w.log.Error().Err(err).Msg("Drain pop error")
			}
			break
		}
		w.handle(ctx, raw)
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
