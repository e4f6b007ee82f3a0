package myredis

import (
	"context"
	"fmt"
	"sync"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"
	"myfabric/service"

	"github.com/go-redis/redis/v8"
)

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 100

type redisStore struct {
	client redis.UniversalClient
}

// NewStore creates redis implementation of the fabric store. Panics on nil client.
func NewStore(client redis.UniversalClient) *redisStore {
	return &redisStore{client: helpers.Required(client, "myredis.NewStore", "client")}
}

var _ interfaces.Store = (*redisStore)(nil)

// Atomic queues ops in a MULTI/EXEC transaction and converts the replies in op order.
func (r *redisStore) Atomic(ctx context.Context, ops ...domain.StoreOp) ([]domain.StoreResult, error) {
	if len(ops) == 0 {
		return nil, nil
	}

	cmds, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range ops {
			if err := queue(ctx, pipe, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, service.NewInternalServerError("Redis transaction error", fmt.Errorf("can't execute batch of %d ops, err: %w", len(ops), err))
	}
	if len(cmds) != len(ops) {
		return nil, service.NewInternalServerError("Redis transaction error", fmt.Errorf("expected %d replies, got %d", len(ops), len(cmds)))
	}

	results := make([]domain.StoreResult, len(ops))
	for i, cmd := range cmds {
		res, err := reply(cmd)
		if err != nil {
			return nil, service.NewInternalServerError("Redis transaction error", fmt.Errorf("can't read reply of %s (key='%s'), err: %w", cmd.Name(), ops[i].Key, err))
		}
		results[i] = res
	}
	return results, nil
}

func queue(ctx context.Context, pipe redis.Pipeliner, op domain.StoreOp) error {
	switch op.Kind {
	case domain.OpHashSet:
		pipe.HSet(ctx, op.Key, op.Fields)
	case domain.OpHashSetIfAbsent:
		pipe.HSetNX(ctx, op.Key, op.Field, op.Value)
	case domain.OpHashGetAll:
		pipe.HGetAll(ctx, op.Key)
	case domain.OpHashDelete:
		pipe.HDel(ctx, op.Key, op.Field)
	case domain.OpSetWithExpiry:
		pipe.Set(ctx, op.Key, op.Value, op.TTL)
	case domain.OpExpire:
		pipe.Expire(ctx, op.Key, op.TTL)
	case domain.OpDelete:
		pipe.Del(ctx, op.Key)
	default:
		return fmt.Errorf("unknown store op kind %d (key='%s')", op.Kind, op.Key)
	}
	return nil
}

func reply(cmd redis.Cmder) (domain.StoreResult, error) {
	switch c := cmd.(type) {
	case *redis.IntCmd:
		n, err := c.Result()
		return domain.StoreResult{Int: n}, err
	case *redis.BoolCmd:
		ok, err := c.Result()
		if ok {
			return domain.StoreResult{Int: 1}, err
		}
		return domain.StoreResult{}, err
	case *redis.StringStringMapCmd:
		hash, err := c.Result()
		return domain.StoreResult{Hash: hash}, err
	case *redis.StatusCmd:
		return domain.StoreResult{Int: 1}, c.Err()
	default:
		return domain.StoreResult{}, fmt.Errorf("unexpected reply type %T", cmd)
	}
}

func (r *redisStore) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	hash, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis read hash error", fmt.Errorf("can't read hash (key='%s'), err: %w", key, err))
	}
	return hash, nil
}

func (r *redisStore) HashGet(ctx context.Context, key string, fields ...string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	if len(fields) == 0 {
		return out, nil
	}

	values, err := r.client.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis read hash error", fmt.Errorf("can't read %d fields of hash (key='%s'), err: %w", len(fields), key, err))
	}
	for i, v := range values {
		if s, ok := v.(string); ok && i < len(fields) {
			out[fields[i]] = s
		}
	}
	return out, nil
}

// ScanKeys walks the keyspace with SCAN so a large deployment never blocks the server.
func (r *redisStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	seen := make(map[string]struct{})
	iter := r.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("can't scan keys (pattern='%s'), err: %w", pattern, err))
	}
	return keys, nil
}

func (r *redisStore) Exists(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	n, err := r.client.Exists(ctx, keys...).Result()
	if err != nil {
		return 0, service.NewInternalServerError("Redis exists error", fmt.Errorf("can't check %d keys, err: %w", len(keys), err))
	}
	return n, nil
}

func (r *redisStore) Publish(ctx context.Context, channel string, payload []byte) (int64, error) {
	n, err := r.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return 0, service.NewInternalServerError("Redis publish error", fmt.Errorf("can't publish to channel '%s', err: %w", channel, err))
	}
	return n, nil
}

// Subscribe opens a dedicated pub/sub connection and waits for one confirmation per channel,
// so publishes made after it returns are never missed.
func (r *redisStore) Subscribe(ctx context.Context, channels ...string) (interfaces.Subscription, error) {
	if len(channels) == 0 {
		return nil, service.NewBadParameterError("No channels to subscribe", nil)
	}

	ps := r.client.Subscribe(ctx, channels...)
	confirmed := 0
	for confirmed < len(channels) {
		msg, err := ps.Receive(ctx)
		if err != nil {
			_ = ps.Close()
			return nil, service.NewInternalServerError("Redis subscribe error", fmt.Errorf("can't subscribe to %v, err: %w", channels, err))
		}
		if s, ok := msg.(*redis.Subscription); ok && s.Kind == "subscribe" {
			confirmed++
		}
	}

	sub := &subscription{
		ps:     ps,
		out:    make(chan domain.StoreMessage),
		closed: make(chan struct{}),
	}
	go sub.forward(ps.Channel())
	return sub, nil
}

type subscription struct {
	ps     *redis.PubSub
	out    chan domain.StoreMessage
	closed chan struct{}
	once   sync.Once
	err    error
}

func (s *subscription) forward(in <-chan *redis.Message) {
	defer close(s.out)
	for {
		select {
		case <-s.closed:
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			select {
			case s.out <- domain.StoreMessage{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
			case <-s.closed:
				return
			}
		}
	}
}

func (s *subscription) Messages() <-chan domain.StoreMessage {
	return s.out
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		close(s.closed)
		if err := s.ps.Close(); err != nil {
			s.err = service.NewInternalServerError("Redis unsubscribe error", fmt.Errorf("can't close subscription, err: %w", err))
		}
	})
	return s.err
}
