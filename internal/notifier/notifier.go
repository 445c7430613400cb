package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkaveh/loyalty-gateway/internal/events"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/pkaveh/loyalty-gateway/pkg/prom"
	"github.com/pkaveh/loyalty-gateway/pkg/redis"
	"github.com/pkaveh/loyalty-gateway/pkg/worker"
)

const liveStatsKey = "loyalty:live_stats"

const (
	fieldScans   = "scans"
	fieldPoints  = "points"
	fieldRewards = "rewards"
)

// Notifier consumes accrual events and maintains the live dashboard
// counters in redis. Counters are approximate by design; the database is
// authoritative and the admin stats endpoint reads from it.
type Notifier struct {
	adapter redis.RedisAdapter
	pool    *worker.WorkerManager
	wg      sync.WaitGroup
}

func New(adapter redis.RedisAdapter, workers int) *Notifier {
	if workers <= 0 {
		workers = 4
	}

	n := &Notifier{
		adapter: adapter,
		pool:    worker.NewWorkerManager(256, workers, nil),
	}

	n.pool.SetWorker(func(workerIndex int, job interface{}) {
		ev, ok := job.(events.AccrualEvent)
		if !ok {
			return
		}
		if err := n.apply(ev); err != nil {
			logger.Warn("failed to update live stats", "worker", workerIndex, "error", err)
		}
	})

	return n
}

// Start launches the worker pool in the background. WorkerManager.Start
// blocks until the workers terminate, so it runs in its own goroutine.
func (n *Notifier) Start() error {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.pool.Start(); err != nil {
			logger.Info("notifier worker pool stopped", "reason", err)
		}
	}()

	return nil
}

// Stop terminates the workers and waits for the pool goroutine to exit.
func (n *Notifier) Stop() {
	n.pool.Exit()
	n.wg.Wait()
}

// Handle implements events.Handler. Events are acked once enqueued; the
// counters tolerate a lost increment on crash.
func (n *Notifier) Handle(ctx context.Context, ev events.AccrualEvent) error {
	n.pool.Enqueue(ev)
	return nil
}

func (n *Notifier) apply(ev events.AccrualEvent) error {
	if err := n.adapter.HIncrement(liveStatsKey, fieldScans, 1); err != nil {
		return fmt.Errorf("increment scans: %w", err)
	}
	if err := n.adapter.HIncrement(liveStatsKey, fieldPoints, int64(ev.PointsAdded)); err != nil {
		return fmt.Errorf("increment points: %w", err)
	}
	if ev.RewardEarned {
		if err := n.adapter.HIncrement(liveStatsKey, fieldRewards, 1); err != nil {
			return fmt.Errorf("increment rewards: %w", err)
		}
	}

	prom.IncNotifierEvent(ev.RewardEarned)
	return nil
}

// LiveStats reads the current counters, zero-valued when absent.
func (n *Notifier) LiveStats() (scans, points, rewards int64, err error) {
	values, err := n.adapter.HGetAll(liveStatsKey)
	if err != nil {
		return 0, 0, 0, err
	}

	parse := func(field string) int64 {
		var v int64
		fmt.Sscanf(values[field], "%d", &v)
		return v
	}

	return parse(fieldScans), parse(fieldPoints), parse(fieldRewards), nil
}
