package monitor

import (
	"runtime"
	"time"

	"github.com/re-centris/cpp2uml/internal/common/logger"
	"go.uber.org/zap"
)

// Stats summarizes the work done by one conversion run
type Stats struct {
	StartTime time.Time
	Elapsed   time.Duration

	// Files and Bytes count the headers handed to the parser
	Files int
	Bytes uint64

	// Memory is the heap allocation when the run stopped
	Memory uint64
}

// Monitor measures one conversion run. It is not safe for concurrent use.
type Monitor struct {
	stats   Stats
	stopped bool
}

// New starts measuring a run
func New() *Monitor {
	return &Monitor{
		stats: Stats{StartTime: time.Now()},
	}
}

// AddFile records a parsed file of size bytes. Files added after Stop
// are ignored.
func (m *Monitor) AddFile(size int) {
	if m.stopped {
		return
	}
	m.stats.Files++
	if size > 0 {
		m.stats.Bytes += uint64(size)
	}
}

// Stop ends the run, logs its metrics and returns them. Later calls
// return the stats of the first call.
func (m *Monitor) Stop() Stats {
	if m.stopped {
		return m.stats
	}
	m.stopped = true
	m.stats.Elapsed = time.Since(m.stats.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	m.stats.Memory = memStats.Alloc

	logger.Debug("Run metrics",
		zap.Int("files", m.stats.Files),
		zap.Uint64("bytes", m.stats.Bytes),
		zap.Uint64("memory_bytes", m.stats.Memory),
		zap.Duration("elapsed", m.stats.Elapsed),
	)
	return m.stats
}
