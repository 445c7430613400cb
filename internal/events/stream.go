package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/pkaveh/loyalty-gateway/pkg/redis"
)

// Handler processes one decoded accrual event. A non-nil error leaves the
// stream entry pending so it gets reclaimed and retried.
type Handler func(ctx context.Context, ev AccrualEvent) error

type StreamConfig struct {
	Name              string
	ConsumerGroup     string
	ConsumerName      string
	VisibilityTimeout time.Duration
	PollInterval      time.Duration
	BatchSize         int64
	MaxLen            int64
}

// Stream is the accrual event channel between the API process and the
// notifier, backed by a redis stream with a consumer group.
type Stream struct {
	adapter redis.RedisAdapter
	config  StreamConfig
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewStream(adapter redis.RedisAdapter, config StreamConfig) (*Stream, error) {
	if config.Name == "" {
		return nil, fmt.Errorf("stream name is required")
	}
	if config.ConsumerGroup == "" {
		config.ConsumerGroup = "loyalty-notifier"
	}
	if config.ConsumerName == "" {
		config.ConsumerName = fmt.Sprintf("consumer-%d", time.Now().UnixNano())
	}
	if config.VisibilityTimeout == 0 {
		config.VisibilityTimeout = 30 * time.Second
	}
	if config.PollInterval == 0 {
		config.PollInterval = time.Second
	}
	if config.BatchSize == 0 {
		config.BatchSize = 10
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Stream{
		adapter: adapter,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}

	// Group may already exist from a previous run.
	_ = s.adapter.XGroupCreateMkStream(config.Name, config.ConsumerGroup, "0")

	return s, nil
}

// PublishAccrual appends the event to the stream. Implements the accrual
// service's publisher dependency.
func (s *Stream) PublishAccrual(ctx context.Context, ev AccrualEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = s.adapter.XAdd(s.config.Name, map[string]interface{}{
		"data":      string(data),
		"timestamp": ev.OccurredAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("append to stream: %w", err)
	}

	if s.config.MaxLen > 0 {
		_ = s.adapter.XTrimApprox(s.config.Name, s.config.MaxLen)
	}

	return nil
}

// Consume starts the poll loop delivering events to the handler.
func (s *Stream) Consume(handler Handler) error {
	if handler == nil {
		return fmt.Errorf("handler is required")
	}

	s.handler = handler
	s.wg.Add(1)

	go s.consumeLoop()

	return nil
}

func (s *Stream) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Stream) consumeLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.readNew()
			s.claimStuck()
		}
	}
}

func (s *Stream) readNew() {
	messages, err := s.adapter.XReadGroup(
		s.config.ConsumerGroup,
		s.config.ConsumerName,
		s.config.Name,
		">",
		s.config.BatchSize,
	)
	if err != nil {
		if err != redis.NilError {
			logger.Warn("accrual stream read failed", "stream", s.config.Name, "error", err)
		}
		return
	}

	for _, msg := range messages {
		s.dispatch(msg)
	}
}

// claimStuck takes over entries another consumer read but never acked,
// once they have been idle past the visibility timeout.
func (s *Stream) claimStuck() {
	pending, err := s.adapter.XPendingExt(s.config.Name, s.config.ConsumerGroup, "-", "+", 100)
	if err != nil || len(pending) == 0 {
		return
	}

	var ids []string
	for _, p := range pending {
		if p.Idle >= s.config.VisibilityTimeout {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	messages, err := s.adapter.XClaim(
		s.config.Name,
		s.config.ConsumerGroup,
		s.config.ConsumerName,
		s.config.VisibilityTimeout,
		ids...,
	)
	if err != nil {
		return
	}

	for _, msg := range messages {
		s.dispatch(msg)
	}
}

func (s *Stream) dispatch(msg redis.StreamMessage) {
	raw, ok := msg.Values["data"].(string)
	if !ok {
		// Malformed entry, drop it so it does not wedge the group.
		_ = s.adapter.XAck(s.config.Name, s.config.ConsumerGroup, msg.ID)
		return
	}

	var ev AccrualEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		logger.Warn("dropping undecodable accrual event", "id", msg.ID, "error", err)
		_ = s.adapter.XAck(s.config.Name, s.config.ConsumerGroup, msg.ID)
		return
	}

	if err := s.handler(s.ctx, ev); err != nil {
		logger.Warn("accrual event handler failed", "id", msg.ID, "error", err)
		return
	}

	_ = s.adapter.XAck(s.config.Name, s.config.ConsumerGroup, msg.ID)
}
