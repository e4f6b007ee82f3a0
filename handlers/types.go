package handlers

import (
	"encoding/json"
	"time"
)

// ServiceInfo defines model for ServiceInfo.
type ServiceInfo struct {
	ServiceName  string     `json:"service_name"`
	Description  string     `json:"description,omitempty"`
	ServiceType  string     `json:"service_type"`
	Version      string     `json:"version"`
	RegisteredOn *time.Time `json:"registered_on,omitempty"`
}

// ServicesResponse defines model for ServicesResponse.
type ServicesResponse struct {
	Services []ServiceInfo `json:"services"`
}

// PresenceInfo defines model for PresenceInfo.
type PresenceInfo struct {
	InstanceId    string    `json:"instance_id"`
	ServiceName   string    `json:"service_name"`
	Host          string    `json:"host"`
	Port          int       `json:"port"`
	ProcessId     int       `json:"process_id,omitempty"`
	UpdatedOn     time.Time `json:"updated_on"`
	UptimeSeconds float64   `json:"uptime_seconds,omitempty"`
	Load1         float64   `json:"load1,omitempty"`
	MemoryRss     uint64    `json:"memory_rss,omitempty"`
}

// PresenceResponse defines model for PresenceResponse.
type PresenceResponse struct {
	Instances []PresenceInfo `json:"instances"`
}

// SendMessageRequest defines model for SendMessageRequest.
type SendMessageRequest struct {
	To       string            `json:"to"`
	Type     string            `json:"type,omitempty"`
	Priority int               `json:"priority,omitempty"`
	Timeout  int               `json:"timeout,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     json.RawMessage   `json:"body,omitempty"`
}

// SendMessageResponse defines model for SendMessageResponse.
type SendMessageResponse struct {
	Mid       string `json:"mid"`
	Channel   string `json:"channel"`
	Direct    bool   `json:"direct"`
	Receivers int64  `json:"receivers"`
}
