package service

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"myfabric/domain"
	"myfabric/interfaces"

	"github.com/benbjohnson/clock"
)

// memStore is an in-memory interfaces.Store whose key expiry follows a mock clock.
type memStore struct {
	clock *clock.Mock

	mu      sync.Mutex
	hashes  map[string]map[string]string
	strings map[string]string
	expiry  map[string]time.Time
	subs    map[*memSub]struct{}
	failing error
}

var _ interfaces.Store = (*memStore)(nil)

func newMemStore(clk *clock.Mock) *memStore {
	return &memStore{
		clock:   clk,
		hashes:  make(map[string]map[string]string),
		strings: make(map[string]string),
		expiry:  make(map[string]time.Time),
		subs:    make(map[*memSub]struct{}),
	}
}

// fail makes every following call return err; nil restores the store.
func (s *memStore) fail(err error) {
	s.mu.Lock()
	s.failing = err
	s.mu.Unlock()
}

func (s *memStore) expired(key string) bool {
	exp, ok := s.expiry[key]
	if !ok || s.clock.Now().Before(exp) {
		return false
	}
	delete(s.strings, key)
	delete(s.hashes, key)
	delete(s.expiry, key)
	return true
}

func (s *memStore) exists(key string) bool {
	if s.expired(key) {
		return false
	}
	_, isString := s.strings[key]
	_, isHash := s.hashes[key]
	return isString || isHash
}

func (s *memStore) Atomic(_ context.Context, ops ...domain.StoreOp) ([]domain.StoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, NewInternalServerError("store failure", s.failing)
	}

	results := make([]domain.StoreResult, 0, len(ops))
	for _, op := range ops {
		s.expired(op.Key)
		var res domain.StoreResult
		switch op.Kind {
		case domain.OpHashSet:
			h := s.hash(op.Key)
			for f, v := range op.Fields {
				if _, ok := h[f]; !ok {
					res.Int++
				}
				h[f] = v
			}
		case domain.OpHashSetIfAbsent:
			h := s.hash(op.Key)
			if _, ok := h[op.Field]; !ok {
				h[op.Field] = op.Value
				res.Int = 1
			}
		case domain.OpHashGetAll:
			res.Hash = make(map[string]string)
			for f, v := range s.hashes[op.Key] {
				res.Hash[f] = v
			}
		case domain.OpHashDelete:
			if _, ok := s.hashes[op.Key][op.Field]; ok {
				delete(s.hashes[op.Key], op.Field)
				res.Int = 1
			}
		case domain.OpSetWithExpiry:
			s.strings[op.Key] = op.Value
			s.expiry[op.Key] = s.clock.Now().Add(op.TTL)
			res.Int = 1
		case domain.OpExpire:
			if s.exists(op.Key) {
				s.expiry[op.Key] = s.clock.Now().Add(op.TTL)
				res.Int = 1
			}
		case domain.OpDelete:
			if s.exists(op.Key) {
				res.Int = 1
			}
			delete(s.strings, op.Key)
			delete(s.hashes, op.Key)
			delete(s.expiry, op.Key)
		default:
			return nil, fmt.Errorf("unknown op %d", op.Kind)
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *memStore) hash(key string) map[string]string {
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	return h
}

func (s *memStore) HashGetAll(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, NewInternalServerError("store failure", s.failing)
	}
	s.expired(key)
	out := make(map[string]string)
	for f, v := range s.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (s *memStore) HashGet(_ context.Context, key string, fields ...string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, NewInternalServerError("store failure", s.failing)
	}
	s.expired(key)
	out := make(map[string]string)
	for _, f := range fields {
		if v, ok := s.hashes[key][f]; ok {
			out[f] = v
		}
	}
	return out, nil
}

func (s *memStore) ScanKeys(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, NewInternalServerError("store failure", s.failing)
	}
	var keys []string
	for _, key := range s.allKeys() {
		if !s.exists(key) {
			continue
		}
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (s *memStore) allKeys() []string {
	keys := make([]string, 0, len(s.strings)+len(s.hashes))
	for k := range s.strings {
		keys = append(keys, k)
	}
	for k := range s.hashes {
		keys = append(keys, k)
	}
	return keys
}

func (s *memStore) Exists(_ context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return 0, NewInternalServerError("store failure", s.failing)
	}
	var n int64
	for _, key := range keys {
		if s.exists(key) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) Publish(_ context.Context, channel string, payload []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return 0, NewInternalServerError("store failure", s.failing)
	}
	var n int64
	for sub := range s.subs {
		if _, ok := sub.channels[channel]; ok {
			sub.ch <- domain.StoreMessage{Channel: channel, Payload: append([]byte(nil), payload...)}
			n++
		}
	}
	return n, nil
}

func (s *memStore) Subscribe(_ context.Context, channels ...string) (interfaces.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing != nil {
		return nil, NewInternalServerError("store failure", s.failing)
	}
	sub := &memSub{store: s, channels: make(map[string]struct{}), ch: make(chan domain.StoreMessage, 256)}
	for _, c := range channels {
		sub.channels[c] = struct{}{}
	}
	s.subs[sub] = struct{}{}
	return sub, nil
}

type memSub struct {
	store    *memStore
	channels map[string]struct{}
	ch       chan domain.StoreMessage
	once     sync.Once
}

func (m *memSub) Messages() <-chan domain.StoreMessage {
	return m.ch
}

func (m *memSub) Close() error {
	m.once.Do(func() {
		m.store.mu.Lock()
		delete(m.store.subs, m)
		close(m.ch)
		m.store.mu.Unlock()
	})
	return nil
}
