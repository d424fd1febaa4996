package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sooomo/nonempty"
)

// Publish appends body to topic's stream, trimming it to roughly maxLen
// entries, and returns the entry ID. An empty body fails with
// *nonempty.EmptyError[map[string]any].
func (s *Store) Publish(ctx context.Context, topic string, body map[string]any, maxLen int64) (string, error) {
	if len(body) == 0 {
		return "", &nonempty.EmptyError[map[string]any]{Items: body}
	}
	return s.master.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		MaxLen: maxLen,
		Approx: true,
		ID:     "*",
		Values: body,
	}).Result()
}

// EnsureGroup creates group on topic, creating the stream if needed. An
// existing group is not an error.
func (s *Store) EnsureGroup(ctx context.Context, topic, group string) error {
	err := s.master.XGroupCreateMkStream(ctx, topic, group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// ReadGroup reads up to count entries for consumer. id is ">" for new
// entries or "0" for entries delivered but not yet acknowledged. A negative
// block returns at once; otherwise it waits up to block for new entries.
// Reading nothing fails with nonempty.ErrEmpty.
func (s *Store) ReadGroup(ctx context.Context, topic, group, consumer, id string, count int64, block time.Duration) (nonempty.Slice1[redis.XMessage], error) {
	if block < 0 {
		block = -1
	}
	streams, err := s.master.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{topic, id},
		Count:    count,
		Block:    block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nonempty.Slice1[redis.XMessage]{}, &nonempty.EmptyError[[]redis.XMessage]{}
	}
	if err != nil {
		return nonempty.Slice1[redis.XMessage]{}, err
	}

	var messages []redis.XMessage
	for _, stream := range streams {
		messages = append(messages, stream.Messages...)
	}
	return nonempty.TryFromSlice(messages)
}

func (s *Store) Ack(ctx context.Context, topic, group string, ids nonempty.Slice1[string]) (int64, error) {
	return s.master.XAck(ctx, topic, group, ids.AsSlice()...).Result()
}

// ConsumeMsgHandler handles one entry. The entry is acknowledged only if it
// returns nil, so a failed entry is delivered again.
type ConsumeMsgHandler func(id string, values map[string]any) error

// Consume starts a goroutine that reads topic as consumer of group in
// batches of batchSize, alternating between new entries and entries that
// were delivered but never acknowledged. It runs until ctx is done or Redis
// fails, and logs the reason it stopped.
func (s *Store) Consume(ctx context.Context, topic, group, consumer string, batchSize int, handler ConsumeMsgHandler) error {
	if err := s.EnsureGroup(ctx, topic, group); err != nil {
		return err
	}

	logger := zap.L().With(zap.String("topic", topic), zap.String("group", group), zap.String("consumer", consumer))
	go func() {
		for {
			if err := s.consume(ctx, topic, group, consumer, ">", batchSize, handler); err != nil {
				logger.Info("consumer stopped", zap.Error(err))
				return
			}
			if err := s.consume(ctx, topic, group, consumer, "0", batchSize, handler); err != nil {
				logger.Info("consumer stopped", zap.Error(err))
				return
			}
		}
	}()
	return nil
}

const consumeBlock = 100 * time.Millisecond

func (s *Store) consume(ctx context.Context, topic, group, consumer, id string, batchSize int, h ConsumeMsgHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	block := consumeBlock
	if id != ">" {
		block = -1
	}
	messages, err := s.ReadGroup(ctx, topic, group, consumer, id, int64(batchSize), block)
	if errors.Is(err, nonempty.ErrEmpty) {
		return nil
	}
	if err != nil {
		return err
	}

	acked := make([]string, 0, messages.Len().Get())
	for msg := range messages.Values() {
		if err := h(msg.ID, msg.Values); err != nil {
			zap.L().Warn("handler failed", zap.String("topic", topic), zap.String("id", msg.ID), zap.Error(err))
			continue
		}
		acked = append(acked, msg.ID)
	}

	ids, err := nonempty.TryFromSlice(acked)
	if err != nil {
		return nil
	}
	_, err = s.Ack(ctx, topic, group, ids)
	return err
}
