// Package store wraps a Redis master and an optional read replica with
// commands typed by arity: a command that needs at least one key or member
// takes a nonempty.Slice1, and a read that can come back empty is converted
// at the boundary.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sooomo/nonempty"
	"github.com/sooomo/nonempty/codec"
)

type Store struct {
	master *redis.Client
	slave  *redis.Client
}

// New wraps existing clients. slave can be nil, in which case reads go to
// master.
func New(master, slave *redis.Client) *Store {
	if slave == nil {
		slave = master
	}
	return &Store{master: master, slave: slave}
}

// Open connects and pings master and, if slaveOpt is not nil, the replica.
func Open(ctx context.Context, masterOpt, slaveOpt *redis.Options) (*Store, error) {
	masterDb := redis.NewClient(masterOpt)
	if err := masterDb.Ping(ctx).Err(); err != nil {
		_ = masterDb.Close()
		return nil, fmt.Errorf("store: ping master: %w", err)
	}
	if slaveOpt == nil {
		return New(masterDb, nil), nil
	}

	slaveDb := redis.NewClient(slaveOpt)
	if err := slaveDb.Ping(ctx).Err(); err != nil {
		_ = slaveDb.Close()
		_ = masterDb.Close()
		return nil, fmt.Errorf("store: ping slave: %w", err)
	}
	return New(masterDb, slaveDb), nil
}

func (s *Store) Master() *redis.Client { return s.master }

func (s *Store) Slave() *redis.Client { return s.slave }

func (s *Store) Close() error {
	err := s.master.Close()
	if s.slave != s.master {
		err = errors.Join(err, s.slave.Close())
	}
	return err
}

func (s *Store) Del(ctx context.Context, keys nonempty.Slice1[string]) (int64, error) {
	return s.master.Del(ctx, keys.AsSlice()...).Result()
}

func (s *Store) Exists(ctx context.Context, keys nonempty.Slice1[string]) (int64, error) {
	return s.slave.Exists(ctx, keys.AsSlice()...).Result()
}

func (s *Store) Expire(ctx context.Context, key string, expiry time.Duration) (bool, error) {
	return s.master.Expire(ctx, key, expiry).Result()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.slave.Get(ctx, key).Result()
}

func (s *Store) Set(ctx context.Context, key string, value any, expiry time.Duration) (string, error) {
	return s.master.Set(ctx, key, value, expiry).Result()
}

// MultiGet returns one value per key, nil for a missing key.
func (s *Store) MultiGet(ctx context.Context, keys nonempty.Slice1[string]) (nonempty.Slice1[any], error) {
	values, err := s.slave.MGet(ctx, keys.AsSlice()...).Result()
	if err != nil {
		return nonempty.Slice1[any]{}, err
	}
	return nonempty.TryFromSlice(values)
}

// SetSlice1 stores items under key in m's format.
func SetSlice1[T any](ctx context.Context, s *Store, m codec.PayloadMarshaler, key string, items nonempty.Slice1[T], expiry time.Duration) error {
	data, err := codec.Encode(m, items)
	if err != nil {
		return err
	}
	return s.master.Set(ctx, key, data, expiry).Err()
}

// GetSlice1 loads a value stored by SetSlice1. A missing key fails with
// redis.Nil; a stored empty array fails with nonempty.ErrEmpty.
func GetSlice1[T any](ctx context.Context, s *Store, m codec.PayloadMarshaler, key string) (nonempty.Slice1[T], error) {
	data, err := s.slave.Get(ctx, key).Bytes()
	if err != nil {
		return nonempty.Slice1[T]{}, err
	}
	return codec.Decode[T](m, data)
}

func (s *Store) RPush(ctx context.Context, key string, values nonempty.Slice1[string]) (int64, error) {
	return s.master.RPush(ctx, key, toArgs(values)...).Result()
}

// Range reads LRANGE key start stop. A missing key or an empty range fails
// with nonempty.ErrEmpty.
func (s *Store) Range(ctx context.Context, key string, start, stop int64) (nonempty.Slice1[string], error) {
	values, err := s.slave.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nonempty.Slice1[string]{}, err
	}
	return nonempty.TryFromSlice(values)
}

func (s *Store) HSet(ctx context.Context, key string, values map[string]any) (int64, error) {
	return s.master.HSet(ctx, key, values).Result()
}

// HDel reports whether any of fields was removed.
func (s *Store) HDel(ctx context.Context, key string, fields nonempty.Slice1[string]) (bool, error) {
	v, err := s.master.HDel(ctx, key, fields.AsSlice()...).Result()
	if err != nil {
		return false, err
	}
	return v > 0, nil
}

// HMGet returns one value per field, nil for a missing field.
func (s *Store) HMGet(ctx context.Context, key string, fields nonempty.Slice1[string]) (nonempty.Slice1[any], error) {
	values, err := s.slave.HMGet(ctx, key, fields.AsSlice()...).Result()
	if err != nil {
		return nonempty.Slice1[any]{}, err
	}
	return nonempty.TryFromSlice(values)
}

// HMSetAndExpiry sets fields and the key's expiry in one transaction.
func (s *Store) HMSetAndExpiry(ctx context.Context, key string, values map[string]any, expiry time.Duration) error {
	if len(values) == 0 {
		return &nonempty.EmptyError[map[string]any]{Items: values}
	}
	_, err := s.Batch(ctx, func(pipe redis.Pipeliner) {
		pipe.HSet(ctx, key, values)
		pipe.Expire(ctx, key, expiry)
	})
	return err
}

func (s *Store) SAdd(ctx context.Context, key string, members nonempty.Slice1[string]) (int64, error) {
	return s.master.SAdd(ctx, key, toArgs(members)...).Result()
}

func (s *Store) SRemove(ctx context.Context, key string, members nonempty.Slice1[string]) (int64, error) {
	return s.master.SRem(ctx, key, toArgs(members)...).Result()
}

// Members reads SMEMBERS key. A missing key fails with nonempty.ErrEmpty,
// since Redis never stores an empty set.
func (s *Store) Members(ctx context.Context, key string) (nonempty.Slice1[string], error) {
	members, err := s.slave.SMembers(ctx, key).Result()
	if err != nil {
		return nonempty.Slice1[string]{}, err
	}
	return nonempty.TryFromSlice(members)
}

// Batch runs the commands queued by f in a MULTI/EXEC transaction. Queuing
// nothing fails with nonempty.ErrEmpty without contacting the server.
// Otherwise the commands come back in order, and the error is the first
// command error.
func (s *Store) Batch(ctx context.Context, f func(pipe redis.Pipeliner)) (nonempty.Slice1[redis.Cmder], error) {
	pipe := s.master.TxPipeline()
	f(pipe)
	if pipe.Len() == 0 {
		return nonempty.Slice1[redis.Cmder]{}, &nonempty.EmptyError[[]redis.Cmder]{}
	}

	cmders, err := pipe.Exec(ctx)
	if err != nil {
		return nonempty.Slice1[redis.Cmder]{}, err
	}
	return nonempty.TryFromSlice(cmders)
}

func toArgs(values nonempty.Slice1[string]) []any {
	args := make([]any, 0, values.Len().Get())
	for v := range values.Values() {
		args = append(args, v)
	}
	return args
}
