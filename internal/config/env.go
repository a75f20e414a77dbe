package config

import (
	"log"
	"os"
	"strconv"
)

// Environment overrides. Each variable, when set and parseable, wins
// over the persisted file. Malformed values are logged and ignored so
// a typo in an environment file cannot take the server down.
const (
	envEdgeWidth          = "COCO_MCP_EDGE_WIDTH"
	envOpacity            = "COCO_MCP_OPACITY"
	envMaxAnnotations     = "COCO_MCP_MAX_ANNOTATIONS"
	envDefaultCap         = "COCO_MCP_DEFAULT_CAP"
	envCompactMode        = "COCO_MCP_COMPACT_MODE"
	envDisableCache       = "COCO_MCP_DISABLE_CACHE"
	envCacheSizeMB        = "COCO_MCP_CACHE_SIZE_MB"
	envMemoryLimitMB      = "COCO_MCP_MEMORY_LIMIT_MB"
	envDisableLazyLoading = "COCO_MCP_DISABLE_LAZY_LOADING"
	envGCThreshold        = "COCO_MCP_GC_THRESHOLD"
)

// ApplyEnv overlays environment variable overrides onto the managed
// settings. The overrides become part of the effective settings, so a
// later Save writes them to the file.
func (m *Manager) ApplyEnv() {
	ApplyEnv(&m.settings)
}

// ApplyEnv overlays environment variable overrides onto s.
func ApplyEnv(s *Settings) {
	if v, ok := envFloat(envEdgeWidth); ok && v > 0 {
		s.Visualization.EdgeWidth = v
	}
	if v, ok := envFloat(envOpacity); ok && v >= 0 && v <= 1 {
		s.Visualization.Opacity = v
	}
	if v, ok := envInt(envMaxAnnotations); ok && v >= 1 {
		s.Visualization.MaxAnnotationsDisplay = v
	}
	if v, ok := envInt(envDefaultCap); ok && v >= 1 {
		s.UI.DefaultDisplayCap = v
	}
	if v, ok := envBool(envCompactMode); ok {
		s.UI.CompactMode = v
	}
	if v, ok := envBool(envDisableCache); ok && v {
		s.Performance.CacheEnabled = false
	}
	if v, ok := envInt(envCacheSizeMB); ok && v >= 1 {
		s.Performance.CacheSizeMB = v
	}
	if v, ok := envInt(envMemoryLimitMB); ok && v >= 1 {
		s.Performance.MemoryLimitMB = v
	}
	if v, ok := envBool(envDisableLazyLoading); ok && v {
		s.Performance.LazyLoading = false
	}
	if v, ok := envInt(envGCThreshold); ok && v >= 0 {
		s.Performance.GCThreshold = v
	}
}

func envFloat(name string) (float64, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, raw, err)
		return 0, false
	}
	return v, true
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, raw, err)
		return 0, false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: ignoring %s=%q: %v", name, raw, err)
		return false, false
	}
	return v, true
}
