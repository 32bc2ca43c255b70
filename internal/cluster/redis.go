package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stormcast-dev/stormcast/internal/engine"
)

// RedisSpawner distributes WorkItems across a fleet of stormcast processes
// sharing one Redis instance: Submit pushes one queue entry per instance
// onto a list, every process runs Drain to pop and execute entries, and
// outcomes are collected off a per-submission results list keyed by a
// generated batch ID.
//
// This mirrors the SET NX / Lua-script conventions of a Redis-backed
// coordination backend: plain go-redis calls, no abstraction layer over the
// client, errors wrapped with the operation name.
type RedisSpawner struct {
	client    *redis.Client
	keyPrefix string
	claimTTL  time.Duration
}

// NewRedisSpawner returns a RedisSpawner using client, namespacing its
// queue and result keys under keyPrefix (e.g. "stormcast:").
func NewRedisSpawner(client *redis.Client, keyPrefix string) *RedisSpawner {
	return &RedisSpawner{client: client, keyPrefix: keyPrefix, claimTTL: 5 * time.Minute}
}

type queueEntry struct {
	BatchID  string         `json:"batch_id"`
	Scenario string         `json:"scenario"`
	Config   map[string]any `json:"config"`
}

func (s *RedisSpawner) queueKey() string { return s.keyPrefix + "queue" }

func (s *RedisSpawner) resultsKey(batchID string) string {
	return fmt.Sprintf("%sresults:%s", s.keyPrefix, batchID)
}

// Submit enqueues n copies of item onto the shared queue and blocks until n
// outcomes have arrived on this batch's results list, or ctx is cancelled.
// It relies on one or more processes (potentially including this one)
// running Drain concurrently to actually execute queued items.
func (s *RedisSpawner) Submit(ctx context.Context, item engine.WorkItem, n int) ([]engine.SessionOutcome, error) {
	batchID := uuid.New().String()
	entry := queueEntry{BatchID: batchID, Scenario: item.Scenario, Config: item.Config}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("redis spawner: marshal queue entry: %w", err)
	}

	pipe := s.client.Pipeline()
	for i := 0; i < n; i++ {
		pipe.LPush(ctx, s.queueKey(), payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis spawner: enqueue: %w", err)
	}
	log.Debug("enqueued work items", "batch", batchID, "scenario", item.Scenario, "count", n)

	resultsKey := s.resultsKey(batchID)
	defer s.client.Del(context.Background(), resultsKey)

	outcomes := make([]engine.SessionOutcome, 0, n)
	for len(outcomes) < n {
		raw, err := s.client.BRPop(ctx, 0, resultsKey).Result()
		if err != nil {
			return outcomes, fmt.Errorf("redis spawner: await results: %w", err)
		}
		var outcome engine.SessionOutcome
		if err := json.Unmarshal([]byte(raw[1]), &outcome); err != nil {
			return outcomes, fmt.Errorf("redis spawner: unmarshal result: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// Drain is the worker-side loop a fleet process runs to service queued
// items: pop one, run it against a registered scenario, and push the
// outcome onto its batch's results list. It runs until ctx is cancelled.
func (s *RedisSpawner) Drain(ctx context.Context) error {
	var worker engine.Worker
	for {
		raw, err := s.client.BRPop(ctx, s.claimTTL, s.queueKey()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("redis spawner: claim: %w", err)
		}

		var qe queueEntry
		if err := json.Unmarshal([]byte(raw[1]), &qe); err != nil {
			log.Error("redis spawner: dropping unparsable queue entry", "error", err)
			continue
		}

		scenario, ok := engine.ResolveScenario(qe.Scenario)
		if !ok {
			log.Error("redis spawner: scenario not registered locally", "scenario", qe.Scenario)
			continue
		}

		result := worker.Start(ctx, engine.ScenarioRef{Module: qe.Scenario}, scenario, qe.Config)
		outcome := engine.ToOutcome(result)
		payload, err := json.Marshal(outcome)
		if err != nil {
			log.Error("redis spawner: marshal result", "error", err)
			continue
		}
		if err := s.client.LPush(ctx, s.resultsKey(qe.BatchID), payload).Err(); err != nil {
			log.Error("redis spawner: publish result", "error", err)
		}
	}
}
