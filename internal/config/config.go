package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Visualization controls how shape batches are styled.
type Visualization struct {
	// EdgeWidth is the outline width of every rendered shape.
	EdgeWidth float64 `json:"edge_width"`

	// Opacity is the layer-wide opacity in [0, 1].
	Opacity float64 `json:"opacity"`

	// MaxAnnotationsDisplay is the hard ceiling on the display cap a
	// user can request.
	MaxAnnotationsDisplay int `json:"max_annotations_display"`
}

// UI holds the session defaults the viewer starts from.
type UI struct {
	// DefaultDisplayCap is the initial per-image annotation cap.
	DefaultDisplayCap int `json:"default_display_cap"`

	// CompactMode halves thumbnail dimensions for small screens.
	CompactMode bool `json:"compact_mode"`
}

// Performance tunes caching and memory behavior.
type Performance struct {
	// CacheEnabled turns all result caching on or off.
	CacheEnabled bool `json:"cache_enabled"`

	// CacheSizeMB is the byte budget of the shape batch cache.
	CacheSizeMB int `json:"cache_size_mb"`

	// MemoryLimitMB is the aggregate cache budget the manager checks
	// at operation thresholds.
	MemoryLimitMB int `json:"memory_limit_mb"`

	// LazyLoading defers image decoding until a thumbnail is asked
	// for; when off, navigation pre-warms the current image.
	LazyLoading bool `json:"lazy_loading"`

	// GCThreshold is how many operations pass between memory checks.
	GCThreshold int `json:"gc_threshold"`
}

// Settings is the full persisted configuration.
type Settings struct {
	Visualization Visualization `json:"visualization"`
	UI            UI            `json:"ui"`
	Performance   Performance   `json:"performance"`
}

// Default returns the settings used when no file and no overrides
// exist.
func Default() Settings {
	return Settings{
		Visualization: Visualization{
			EdgeWidth:             2.0,
			Opacity:               0.7,
			MaxAnnotationsDisplay: 1000,
		},
		UI: UI{
			DefaultDisplayCap: 50,
			CompactMode:       false,
		},
		Performance: Performance{
			CacheEnabled:  true,
			CacheSizeMB:   100,
			MemoryLimitMB: 500,
			LazyLoading:   true,
			GCThreshold:   50,
		},
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "coco-viewer-mcp", "settings.json"), nil
}

// Manager loads, persists and updates settings. It is constructed
// explicitly and injected where needed; there is no package-level
// configuration state.
type Manager struct {
	path     string
	settings Settings
}

// NewManager creates a manager bound to the default per-user settings
// path. The file is not touched until Load or Save.
func NewManager() (*Manager, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(path), nil
}

// NewManagerAt creates a manager bound to an explicit settings path.
func NewManagerAt(path string) *Manager {
	return &Manager{path: path, settings: Default()}
}

// Path returns the settings file location.
func (m *Manager) Path() string { return m.path }

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings { return m.settings }

// Load reads the settings file. A missing file is not an error: the
// defaults stay in place for first runs. A present but unreadable or
// malformed file is reported, with the defaults left intact.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	loaded := Default()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing settings %s: %w", m.path, err)
	}
	m.settings = loaded
	return nil
}

// Save writes the current settings, creating parent directories as
// needed.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Reset restores the defaults in memory. It does not save.
func (m *Manager) Reset() { m.settings = Default() }

// Update sets one option by its dotted key, e.g.
// "visualization.edge_width". An unknown key is an error, never a
// silent no-op. Values are validated per option.
func (m *Manager) Update(key string, value any) error {
	switch key {
	case "visualization.edge_width":
		v, err := floatValue(key, value)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", key, v)
		}
		m.settings.Visualization.EdgeWidth = v
	case "visualization.opacity":
		v, err := floatValue(key, value)
		if err != nil {
			return err
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", key, v)
		}
		m.settings.Visualization.Opacity = v
	case "visualization.max_annotations_display":
		v, err := intValue(key, value)
		if err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, v)
		}
		m.settings.Visualization.MaxAnnotationsDisplay = v
	case "ui.default_display_cap":
		v, err := intValue(key, value)
		if err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, v)
		}
		m.settings.UI.DefaultDisplayCap = v
	case "ui.compact_mode":
		v, err := boolValue(key, value)
		if err != nil {
			return err
		}
		m.settings.UI.CompactMode = v
	case "performance.cache_enabled":
		v, err := boolValue(key, value)
		if err != nil {
			return err
		}
		m.settings.Performance.CacheEnabled = v
	case "performance.cache_size_mb":
		v, err := intValue(key, value)
		if err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, v)
		}
		m.settings.Performance.CacheSizeMB = v
	case "performance.memory_limit_mb":
		v, err := intValue(key, value)
		if err != nil {
			return err
		}
		if v < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, v)
		}
		m.settings.Performance.MemoryLimitMB = v
	case "performance.lazy_loading":
		v, err := boolValue(key, value)
		if err != nil {
			return err
		}
		m.settings.Performance.LazyLoading = v
	case "performance.gc_threshold":
		v, err := intValue(key, value)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", key, v)
		}
		m.settings.Performance.GCThreshold = v
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// UpdatableKeys lists every key Update accepts, for discoverability in
// tool schemas and error messages.
func UpdatableKeys() []string {
	return []string{
		"visualization.edge_width",
		"visualization.opacity",
		"visualization.max_annotations_display",
		"ui.default_display_cap",
		"ui.compact_mode",
		"performance.cache_enabled",
		"performance.cache_size_mb",
		"performance.memory_limit_mb",
		"performance.lazy_loading",
		"performance.gc_threshold",
	}
}

// JSON numbers decode as float64, so tool calls deliver ints that way.
func floatValue(key string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s expects a number, got %T", key, value)
	}
}

func intValue(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s expects an integer, got %v", key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s expects an integer, got %T", key, value)
	}
}

func boolValue(key string, value any) (bool, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return false, fmt.Errorf("%s expects a boolean, got %T", key, value)
}
