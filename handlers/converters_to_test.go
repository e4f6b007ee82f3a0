package handlers

import (
	"testing"
	"time"

	"myfabric/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceInfo(t *testing.T) {
	ts := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)

	info := toServiceInfo(domain.ServiceEntry{
		ServiceName:  "calculator",
		Description:  "adds numbers",
		ServiceType:  "api",
		Version:      "1.2.0",
		RegisteredOn: ts,
	})
	require.NotNil(t, info.RegisteredOn)
	assert.Equal(t, ts, *info.RegisteredOn)
	assert.Equal(t, "adds numbers", info.Description)

	info = toServiceInfo(domain.ServiceEntry{ServiceName: "calculator"})
	assert.Nil(t, info.RegisteredOn)
}

func TestToServicesResponse(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.ServiceEntry
		wantLen int
	}{
		{name: "nil", entries: nil, wantLen: 0},
		{name: "empty", entries: []domain.ServiceEntry{}, wantLen: 0},
		{
			name:    "two",
			entries: []domain.ServiceEntry{{ServiceName: "billing"}, {ServiceName: "calculator"}},
			wantLen: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toServicesResponse(tt.entries)
			require.NotNil(t, got.Services)
			assert.Len(t, got.Services, tt.wantLen)
		})
	}
}

func TestToPresenceResponse(t *testing.T) {
	ts := time.Now()

	tests := []struct {
		name      string
		records   []domain.PresenceRecord
		wantLen   int
		wantFirst *PresenceInfo
	}{
		{
			name:    "nil",
			records: nil,
			wantLen: 0,
		},
		{
			name: "one",
			records: []domain.PresenceRecord{{
				InstanceID:    "a1b2",
				ServiceName:   "calculator",
				Host:          "10.0.0.5",
				Port:          8080,
				ProcessID:     4242,
				UpdatedOn:     ts,
				UptimeSeconds: 12.5,
				Load1:         0.3,
				MemoryRSS:     2048,
			}},
			wantLen: 1,
			wantFirst: &PresenceInfo{
				InstanceId:    "a1b2",
				ServiceName:   "calculator",
				Host:          "10.0.0.5",
				Port:          8080,
				ProcessId:     4242,
				UpdatedOn:     ts,
				UptimeSeconds: 12.5,
				Load1:         0.3,
				MemoryRss:     2048,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toPresenceResponse(tt.records)
			require.NotNil(t, got.Instances)
			assert.Len(t, got.Instances, tt.wantLen)
			if tt.wantFirst != nil {
				assert.Equal(t, *tt.wantFirst, got.Instances[0])
			}
		})
	}
}

func TestToSendMessageResponse(t *testing.T) {
	got := toSendMessageResponse(domain.SendResult{
		MID:       "mid-1",
		Channel:   "registry:instance:a1b2:channel",
		Direct:    true,
		Receivers: 1,
	})
	assert.Equal(t, SendMessageResponse{
		Mid:       "mid-1",
		Channel:   "registry:instance:a1b2:channel",
		Direct:    true,
		Receivers: 1,
	}, got)
}
