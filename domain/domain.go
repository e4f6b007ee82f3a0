package domain

import "time"

// DefaultServiceVersion is used when a descriptor does not declare a version.
const DefaultServiceVersion = "0.0.0"

// InstanceID identifies one running copy of a service. Derived from the descriptor, see DeriveInstanceID.
type InstanceID string

// ServiceDescriptor is the static identity of a service kind as declared by the registering instance.
// Fields match config: service_name, description, service_type, host, port, version.
type ServiceDescriptor struct {
	ServiceName string `yaml:"service_name" json:"service_name"` // unique per deployment
	Description string `yaml:"description" json:"description"`
	ServiceType string `yaml:"service_type" json:"service_type"`
	Host        string `yaml:"host" json:"host"`
	Port        int    `yaml:"port" json:"port"`
	Version     string `yaml:"version" json:"version"` // protocol version
}

// ServiceEntry is the per-service metadata record, one per service kind (not per instance).
type ServiceEntry struct {
	ServiceName  string
	Description  string
	ServiceType  string
	Version      string
	RegisteredOn time.Time
}

// PresenceRecord is the liveness record of one instance. Refreshed by the heartbeat.
type PresenceRecord struct {
	InstanceID    InstanceID `json:"instance_id"`
	ServiceName   string     `json:"service_name"`
	Host          string     `json:"host"`
	Port          int        `json:"port"`
	ProcessID     int        `json:"process_id"`
	UpdatedOn     time.Time  `json:"updated_on"`
	UptimeSeconds float64    `json:"uptime_seconds,omitempty"`
	Load1         float64    `json:"load1,omitempty"`
	MemoryRSS     uint64     `json:"memory_rss,omitempty"`
}

// ProcessSnapshot is a point-in-time view of the local process used to enrich presence records.
type ProcessSnapshot struct {
	ProcessID     int
	UptimeSeconds float64
	Load1         float64
	MemoryRSS     uint64
}

// LivenessState is the state reported by the heartbeat loop.
type LivenessState string

const (
	// LivenessDegraded is emitted once consecutive heartbeat failures reach the threshold.
	LivenessDegraded LivenessState = "degraded"
	// LivenessRecovered is emitted on the first successful heartbeat after LivenessDegraded.
	LivenessRecovered LivenessState = "recovered"
)

// LivenessEvent reports a change of the heartbeat health of one instance.
type LivenessEvent struct {
	InstanceID          InstanceID
	State               LivenessState
	ConsecutiveFailures int
	Err                 error // last refresh error, nil on recovery
	At                  time.Time
}
