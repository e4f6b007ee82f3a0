package domain

import "time"

// StoreOpKind is the kind of one command inside an atomic store batch.
type StoreOpKind int

const (
	OpHashSet StoreOpKind = iota + 1
	OpHashSetIfAbsent
	OpHashGetAll
	OpHashDelete
	OpSetWithExpiry
	OpExpire
	OpDelete
)

// StoreOp is one command of an atomic batch. Fields unused by a kind are ignored.
type StoreOp struct {
	Kind   StoreOpKind
	Key    string
	Field  string
	Value  string
	Fields map[string]string // OpHashSet writes all pairs
	TTL    time.Duration
}

// StoreResult is the reply to the StoreOp at the same index.
type StoreResult struct {
	Int  int64             // affected count, 1/0 for set-if-absent and expire
	Hash map[string]string // OpHashGetAll
}

// StoreMessage is one payload received on a subscribed channel.
type StoreMessage struct {
	Channel string
	Payload []byte
}

func HashSet(key string, fields map[string]string) StoreOp {
	return StoreOp{Kind: OpHashSet, Key: key, Fields: fields}
}

func HashSetIfAbsent(key, field, value string) StoreOp {
	return StoreOp{Kind: OpHashSetIfAbsent, Key: key, Field: field, Value: value}
}

func HashGetAll(key string) StoreOp {
	return StoreOp{Kind: OpHashGetAll, Key: key}
}

func HashDelete(key, field string) StoreOp {
	return StoreOp{Kind: OpHashDelete, Key: key, Field: field}
}

func SetWithExpiry(key, value string, ttl time.Duration) StoreOp {
	return StoreOp{Kind: OpSetWithExpiry, Key: key, Value: value, TTL: ttl}
}

func Expire(key string, ttl time.Duration) StoreOp {
	return StoreOp{Kind: OpExpire, Key: key, TTL: ttl}
}

func Delete(key string) StoreOp {
	return StoreOp{Kind: OpDelete, Key: key}
}
