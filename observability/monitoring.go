package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is the latest sample of the server process health.
type Stats struct {
	PID        int32     `json:"pid"`
	Status     string    `json:"status"`
	CPUPercent float64   `json:"cpu_percent"`
	RSSBytes   uint64    `json:"rss_bytes"`
	AllocMemMb uint64    `json:"alloc_mem_mb"`
	NumGC      uint32    `json:"num_gc"`
	Goroutines int       `json:"goroutines"`
	SampledAt  time.Time `json:"sampled_at"`
}

// Monitor samples the process on a fixed interval. It runs as a supervised worker.
type Monitor struct {
	log      *slog.Logger
	interval time.Duration
	mu       sync.RWMutex
	latest   Stats
}

func NewMonitor(log *slog.Logger, interval time.Duration) *Monitor {
	return &Monitor{log: log, interval: interval}
}

func (m *Monitor) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sample(p)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.sample(p)
		}
	}
}

func (m *Monitor) sample(p *process.Process) {
	stats, err := selfStats(p)
	if err != nil {
		m.log.Warn("Failed to collect self stats", "error", err)
		return
	}
	m.mu.Lock()
	m.latest = stats
	m.mu.Unlock()
	m.log.Debug("Process stats sampled",
		"cpu_percent", stats.CPUPercent, "rss_bytes", stats.RSSBytes, "goroutines", stats.Goroutines)
}

func (m *Monitor) Latest() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

func selfStats(p *process.Process) (Stats, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return Stats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Stats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return Stats{}, err
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Stats{
		PID:        p.Pid,
		Status:     status,
		CPUPercent: cpuPercent,
		RSSBytes:   memInfo.RSS,
		AllocMemMb: mem.Alloc / 1024 / 1024,
		NumGC:      mem.NumGC,
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now().UTC(),
	}, nil
}
