// Package cache provides the bounded LRU caches behind the shape
// pipeline and the manager that watches them as a group.
//
// # Bounds
//
// Each Cache enforces two limits at once: a maximum entry count and an
// approximate byte budget. Callers pass a size estimate with every Put;
// exceeding either limit evicts from the least recently used end until
// both hold. Because sizes are estimates, eviction reduces the byte
// accounting by the average per-entry share (never less than a fixed
// quantum) rather than trusting individual estimates, which guarantees
// the eviction loop terminates.
//
// # Cached absence
//
// A nil value is a legitimate cache entry. Get distinguishes "cached
// nil" (ok=true) from "not cached" (ok=false), which the visualizer
// relies on to avoid recomputing images that legitimately produce no
// shapes.
//
// # Manager
//
// The Manager holds named caches for diagnostics and bulk clearing.
// There are no package-level instances: the session constructs one
// manager, components register their caches with it, and everything is
// released together when the session closes. NoteOperation gives the
// manager a notion of time measured in operations; every configured
// threshold it compares aggregate usage against the memory limit and
// runs a collection hint when over.
package cache
