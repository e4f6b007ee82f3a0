package myredis

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisUniversalClient(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		options []ConfigOption
		wantErr bool
	}{
		{name: "plain url", addr: "redis://localhost:6379"},
		{name: "url with db", addr: "redis://localhost:6379/2"},
		{name: "with pool size", addr: "redis://localhost:6379", options: []ConfigOption{WithPoolSize(4)}},
		{name: "with custom option", addr: "redis://localhost:6379", options: []ConfigOption{func(o *redis.Options) {
			o.DialTimeout = time.Second
		}}},
		{name: "invalid scheme", addr: "http://localhost:6379", wantErr: true},
		{name: "garbage", addr: "://invalid", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewRedisUniversalClient(tt.addr, tt.options...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, client)
				assert.Contains(t, err.Error(), "can't parse redis url")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NoError(t, client.Close())
		})
	}
}
