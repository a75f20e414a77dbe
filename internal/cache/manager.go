package cache

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// Metered is the view the Manager needs of a cache: enough to report
// on it and to flush it under memory pressure.
type Metered interface {
	Clear()
	Snapshot() Stats
}

// ManagerStats aggregates the state of all registered caches.
type ManagerStats struct {
	// Caches maps cache name to its snapshot.
	Caches map[string]Stats `json:"caches"`

	// TotalEntries and TotalBytes sum over all caches.
	TotalEntries int   `json:"total_entries"`
	TotalBytes   int64 `json:"total_bytes"`

	// Operations counts NoteOperation calls since construction.
	Operations int `json:"operations"`

	// GCRuns counts how often memory pressure triggered a collection
	// hint; LastGC is when the most recent one ran (zero if never).
	GCRuns int       `json:"gc_runs"`
	LastGC time.Time `json:"last_gc,omitempty"`
}

// Manager owns a named set of caches. It is constructed explicitly and
// handed to the components that need it; there is no package-level
// instance. Components register the caches they create, and the
// orchestration layer calls NoteOperation at its entry points so the
// manager can watch aggregate memory use.
type Manager struct {
	mu          sync.Mutex
	caches      map[string]Metered
	gcThreshold int
	memoryLimit int64
	ops         int
	gcRuns      int
	lastGC      time.Time
}

// NewManager creates a manager that checks aggregate cache memory
// every gcThreshold operations against a limit of memoryLimitMB
// megabytes. A threshold below 1 disables the checks.
func NewManager(gcThreshold, memoryLimitMB int) *Manager {
	return &Manager{
		caches:      make(map[string]Metered),
		gcThreshold: gcThreshold,
		memoryLimit: int64(memoryLimitMB) * 1024 * 1024,
	}
}

// Register adds (or replaces) a named cache.
func (m *Manager) Register(name string, c Metered) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caches[name] = c
}

// Names returns the registered cache names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.caches))
	for name := range m.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearAll flushes every registered cache.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	caches := make([]Metered, 0, len(m.caches))
	for _, c := range m.caches {
		caches = append(caches, c)
	}
	m.mu.Unlock()

	for _, c := range caches {
		c.Clear()
	}
}

// MemoryUsage returns the estimated bytes held across all caches.
func (m *Manager) MemoryUsage() int64 {
	m.mu.Lock()
	caches := make([]Metered, 0, len(m.caches))
	for _, c := range m.caches {
		caches = append(caches, c)
	}
	m.mu.Unlock()

	var total int64
	for _, c := range caches {
		total += c.Snapshot().Bytes
	}
	return total
}

// NoteOperation records one orchestration-level operation. Every
// threshold operations the manager compares aggregate cache memory to
// its limit and, when over, runs a garbage collection as a best-effort
// hint after the caches' own eviction has had its say.
func (m *Manager) NoteOperation() {
	m.mu.Lock()
	m.ops++
	due := m.gcThreshold > 0 && m.ops%m.gcThreshold == 0
	m.mu.Unlock()

	if !due {
		return
	}
	if m.MemoryUsage() <= m.memoryLimit {
		return
	}

	runtime.GC()
	m.mu.Lock()
	m.gcRuns++
	m.lastGC = time.Now()
	m.mu.Unlock()
}

// Stats returns a snapshot of every registered cache plus totals.
func (m *Manager) Stats() ManagerStats {
	m.mu.Lock()
	named := make(map[string]Metered, len(m.caches))
	for name, c := range m.caches {
		named[name] = c
	}
	stats := ManagerStats{
		Caches:     make(map[string]Stats, len(named)),
		Operations: m.ops,
		GCRuns:     m.gcRuns,
		LastGC:     m.lastGC,
	}
	m.mu.Unlock()

	for name, c := range named {
		snap := c.Snapshot()
		stats.Caches[name] = snap
		stats.TotalEntries += snap.Entries
		stats.TotalBytes += snap.Bytes
	}
	return stats
}
