package interfaces

import "myfabric/domain"

// ProcessStats supplies process information for presence records.
//
//go:generate moq -stub -out mock/process_stats.go -pkg mock . ProcessStats
type ProcessStats interface {
	// Snapshot returns the current process id, uptime, 1-minute load and resident memory.
	// Values that can't be read are left zero; ProcessID is always set.
	Snapshot() domain.ProcessSnapshot
}
