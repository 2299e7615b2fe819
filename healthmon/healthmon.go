// Package healthmon tracks system health and model drift for securecore
// deployments. A Monitor samples CPU, memory, and disk usage through
// gopsutil and compares each sample against configurable thresholds; a
// DriftTracker scores prediction drift against a recorded baseline.
//
// Monitors are plain values constructed with NewMonitor. Create one per
// deployment and share it; there is no process-wide instance.
package healthmon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Defaults applied by NewMonitor when no option overrides them.
const (
	DefaultDriftThreshold = 0.05
	DefaultCheckInterval  = 60 * time.Second
	DefaultCPUThreshold   = 90.0
	DefaultMemThreshold   = 90.0
	DefaultDiskThreshold  = 95.0
	DefaultDiskPath       = "/"
)

// ErrLengthMismatch is returned when drift is scored against series of
// different lengths.
var ErrLengthMismatch = errors.New("prediction series lengths differ")

// Snapshot is one sample of system health.
type Snapshot struct {
	// ID uniquely identifies this sample in logs and audit records.
	ID string `json:"id"`
	// Timestamp is when the sample was taken.
	Timestamp time.Time `json:"timestamp"`
	// CPUPercent is total CPU utilization, 0-100.
	CPUPercent float64 `json:"cpuPercent"`
	// MemoryPercent is virtual memory utilization, 0-100.
	MemoryPercent float64 `json:"memoryPercent"`
	// DiskPercent is utilization of the monitored disk path, 0-100.
	DiskPercent float64 `json:"diskPercent"`
}

// Monitor samples system health and checks samples against thresholds.
// All methods are safe for concurrent use.
type Monitor struct {
	cpuThreshold  float64
	memThreshold  float64
	diskThreshold float64
	diskPath      string
	interval      time.Duration

	mu          sync.RWMutex
	lastSample  *Snapshot
	lastMetrics map[string]float64
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThresholds sets the CPU, memory, and disk utilization levels (in
// percent) above which a snapshot reports unhealthy.
func WithThresholds(cpu, mem, disk float64) Option {
	return func(m *Monitor) {
		m.cpuThreshold = cpu
		m.memThreshold = mem
		m.diskThreshold = disk
	}
}

// WithDiskPath sets the mount point sampled for disk utilization.
func WithDiskPath(path string) Option {
	return func(m *Monitor) {
		m.diskPath = path
	}
}

// WithCheckInterval sets the sampling period used by Run.
func WithCheckInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.interval = d
	}
}

// NewMonitor creates a Monitor with the given options.
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		cpuThreshold:  DefaultCPUThreshold,
		memThreshold:  DefaultMemThreshold,
		diskThreshold: DefaultDiskThreshold,
		diskPath:      DefaultDiskPath,
		interval:      DefaultCheckInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot samples current CPU, memory, and disk utilization.
func (m *Monitor) Snapshot(ctx context.Context) (*Snapshot, error) {
	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("sample cpu: %w", err)
	}
	var cpuPercent float64
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("sample memory: %w", err)
	}

	du, err := disk.UsageWithContext(ctx, m.diskPath)
	if err != nil {
		return nil, fmt.Errorf("sample disk %s: %w", m.diskPath, err)
	}

	snap := &Snapshot{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		CPUPercent:    cpuPercent,
		MemoryPercent: vm.UsedPercent,
		DiskPercent:   du.UsedPercent,
	}

	m.mu.Lock()
	m.lastSample = snap
	m.mu.Unlock()

	return snap, nil
}

// Healthy reports whether the snapshot is within all configured
// thresholds.
func (m *Monitor) Healthy(s *Snapshot) bool {
	return s.CPUPercent <= m.cpuThreshold &&
		s.MemoryPercent <= m.memThreshold &&
		s.DiskPercent <= m.diskThreshold
}

// LastSnapshot returns the most recent sample, or nil if none has been
// taken.
func (m *Monitor) LastSnapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSample
}

// RecordMetrics stores the latest performance metrics (accuracy, loss,
// and similar) for retrieval alongside health samples.
func (m *Monitor) RecordMetrics(metrics map[string]float64) {
	copied := make(map[string]float64, len(metrics))
	for k, v := range metrics {
		copied[k] = v
	}
	m.mu.Lock()
	m.lastMetrics = copied
	m.mu.Unlock()
}

// Metrics returns a copy of the most recently recorded metrics.
func (m *Monitor) Metrics() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	copied := make(map[string]float64, len(m.lastMetrics))
	for k, v := range m.lastMetrics {
		copied[k] = v
	}
	return copied
}

// Run samples health at the configured interval until ctx is cancelled,
// invoking fn with each snapshot. Sampling errors are passed to fn with
// a nil snapshot so the caller decides whether to keep going.
func (m *Monitor) Run(ctx context.Context, fn func(*Snapshot, error)) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		snap, err := m.Snapshot(ctx)
		fn(snap, err)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
