// Package procstat reads process and host figures for presence records.
package procstat

import (
	"os"
	"time"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/process"
)

type processStats struct {
	pid     int
	proc    *process.Process
	started time.Time
	clock   clock.Clock
	logger  log.Logger
}

var _ interfaces.ProcessStats = (*processStats)(nil)

// NewProcessStats creates ProcessStats for the current process. When the process can't be
// inspected, snapshots carry only the process id. Panics on nil clock or logger.
func NewProcessStats(clk clock.Clock, logger log.Logger) *processStats {
	const component = "procstat.NewProcessStats"
	s := &processStats{
		pid:    os.Getpid(),
		clock:  helpers.Required(clk, component, "clock"),
		logger: log.WithPrefix(helpers.Required(logger, component, "logger"), "component", "ProcessStats"),
	}

	proc, err := process.NewProcess(int32(s.pid))
	if err != nil {
		level.Warn(s.logger).Log("msg", "Can't inspect process, presence records will carry pid only", "err", err)
		return s
	}
	s.proc = proc

	if ms, err := proc.CreateTime(); err == nil {
		s.started = time.UnixMilli(ms)
	} else {
		level.Warn(s.logger).Log("msg", "Can't read process start time", "err", err)
	}
	return s
}

// Snapshot returns the current figures; values that can't be read stay zero.
func (s *processStats) Snapshot() domain.ProcessSnapshot {
	snap := domain.ProcessSnapshot{ProcessID: s.pid}

	if !s.started.IsZero() {
		if up := s.clock.Since(s.started); up > 0 {
			snap.UptimeSeconds = up.Seconds()
		}
	}

	if s.proc != nil {
		if mem, err := s.proc.MemoryInfo(); err == nil && mem != nil {
			snap.MemoryRSS = mem.RSS
		}
	}

	if avg, err := load.Avg(); err == nil && avg != nil {
		snap.Load1 = avg.Load1
	}
	return snap
}
