package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCache_GetPut(t *testing.T) {
	c := New[string, string](10, 10)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Put("a", "alpha", 100)
	got, ok := c.Get("a")
	if !ok {
		t.Fatal("Get after Put should hit")
	}
	if got != "alpha" {
		t.Errorf("value: got %q, want %q", got, "alpha")
	}
}

func TestCache_EvictsByCount(t *testing.T) {
	c := New[int, int](3, 100)

	for i := 0; i < 5; i++ {
		c.Put(i, i*10, 8)
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	// 0 and 1 were the oldest.
	for _, key := range []int{0, 1} {
		if _, ok := c.Get(key); ok {
			t.Errorf("key %d should have been evicted", key)
		}
	}
	for _, key := range []int{2, 3, 4} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("key %d should still be cached", key)
		}
	}
}

func TestCache_EvictsByBytes(t *testing.T) {
	// 1 MB budget, entries claim 600 KB each: the third insert must
	// push the first one out.
	c := New[int, int](100, 1)

	c.Put(1, 1, 600*1024)
	c.Put(2, 2, 600*1024)
	c.Put(3, 3, 600*1024)

	if _, ok := c.Get(1); ok {
		t.Error("oldest entry should have been evicted on byte pressure")
	}
	if c.MemoryUsage() > 1024*1024 {
		t.Errorf("MemoryUsage() = %d, want <= 1 MB", c.MemoryUsage())
	}
}

func TestCache_GetRefreshesRecency(t *testing.T) {
	c := New[int, int](2, 100)

	c.Put(1, 10, 8)
	c.Put(2, 20, 8)
	c.Get(1) // 2 is now least recently used
	c.Put(3, 30, 8)

	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("key 1 was refreshed and should survive")
	}
}

func TestCache_ReplaceSwapsSize(t *testing.T) {
	c := New[string, int](10, 10)

	c.Put("k", 1, 1000)
	c.Put("k", 2, 400)

	if got := c.MemoryUsage(); got != 400 {
		t.Errorf("MemoryUsage() after replace = %d, want 400", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if got, _ := c.Get("k"); got != 2 {
		t.Errorf("value after replace: got %d, want 2", got)
	}
}

func TestCache_CachedNilIsNotAMiss(t *testing.T) {
	c := New[string, *Stats](10, 10)

	c.Put("empty", nil, 64)

	got, ok := c.Get("empty")
	if !ok {
		t.Fatal("cached nil should report ok=true")
	}
	if got != nil {
		t.Errorf("value: got %v, want nil", got)
	}
	if _, ok := c.Get("never"); ok {
		t.Error("unknown key should miss")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](10, 10)
	c.Put(1, 1, 100)
	c.Put(2, 2, 100)

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if c.MemoryUsage() != 0 {
		t.Errorf("MemoryUsage() after Clear = %d, want 0", c.MemoryUsage())
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestCache_Snapshot(t *testing.T) {
	c := New[int, int](10, 10)
	c.Put(1, 1, 100)
	c.Get(1)
	c.Get(2)

	snap := c.Snapshot()
	if snap.Entries != 1 {
		t.Errorf("Entries = %d, want 1", snap.Entries)
	}
	if snap.Bytes != 100 {
		t.Errorf("Bytes = %d, want 100", snap.Bytes)
	}
	if snap.Hits != 1 || snap.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 1/1", snap.Hits, snap.Misses)
	}
}

func TestCache_BoundsFloorAtOne(t *testing.T) {
	c := New[int, int](0, 0)
	c.Put(1, 1, 8)
	c.Put(2, 2, 8)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (single-entry floor)", c.Len())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int, int](64, 10)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := (g*31 + i) % 100
				c.Put(key, i, 64)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d, want <= 64", c.Len())
	}
}

func TestManager_RegisterAndStats(t *testing.T) {
	m := NewManager(50, 100)
	a := New[string, int](10, 10)
	b := New[string, int](10, 10)
	m.Register("alpha", a)
	m.Register("beta", b)

	a.Put("x", 1, 500)
	b.Put("y", 2, 300)

	stats := m.Stats()
	if stats.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", stats.TotalEntries)
	}
	if stats.TotalBytes != 800 {
		t.Errorf("TotalBytes = %d, want 800", stats.TotalBytes)
	}
	if stats.Caches["alpha"].Bytes != 500 {
		t.Errorf("alpha bytes = %d, want 500", stats.Caches["alpha"].Bytes)
	}

	names := m.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names() = %v, want [alpha beta]", names)
	}
}

func TestManager_ClearAll(t *testing.T) {
	m := NewManager(50, 100)
	caches := make([]*Cache[int, int], 3)
	for i := range caches {
		caches[i] = New[int, int](10, 10)
		caches[i].Put(1, 1, 100)
		m.Register(fmt.Sprintf("cache-%d", i), caches[i])
	}

	m.ClearAll()

	for i, c := range caches {
		if c.Len() != 0 {
			t.Errorf("cache %d not cleared", i)
		}
	}
	if m.MemoryUsage() != 0 {
		t.Errorf("MemoryUsage() = %d, want 0", m.MemoryUsage())
	}
}

func TestManager_NoteOperationCountsOps(t *testing.T) {
	m := NewManager(10, 1)
	for i := 0; i < 25; i++ {
		m.NoteOperation()
	}

	if got := m.Stats().Operations; got != 25 {
		t.Errorf("Operations = %d, want 25", got)
	}
}

func TestManager_GCOnlyUnderPressure(t *testing.T) {
	// Limit 1 MB; a cache holding 2 MB crosses it.
	m := NewManager(2, 1)
	c := New[int, int](100, 100)
	m.Register("big", c)

	// Under the limit: threshold hits must not record a GC run.
	m.NoteOperation()
	m.NoteOperation()
	if got := m.Stats().GCRuns; got != 0 {
		t.Fatalf("GCRuns under limit = %d, want 0", got)
	}

	c.Put(1, 1, 2*1024*1024)
	m.NoteOperation()
	m.NoteOperation()
	if got := m.Stats().GCRuns; got != 1 {
		t.Errorf("GCRuns over limit = %d, want 1", got)
	}
	if m.Stats().LastGC.IsZero() {
		t.Error("LastGC should be set after a run")
	}
}

func TestManager_ZeroThresholdDisablesChecks(t *testing.T) {
	m := NewManager(0, 0)
	c := New[int, int](10, 10)
	m.Register("c", c)
	c.Put(1, 1, 5*1024*1024)

	for i := 0; i < 10; i++ {
		m.NoteOperation()
	}
	if got := m.Stats().GCRuns; got != 0 {
		t.Errorf("GCRuns = %d, want 0 with disabled threshold", got)
	}
}
