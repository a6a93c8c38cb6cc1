package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// sourceConfig is one [[source]] table.
type sourceConfig struct {
	ID          string              `toml:"id"`
	Kind        string              `toml:"kind"`
	URL         string              `toml:"url"`
	Envelope    string              `toml:"envelope"`
	ResourceURL string              `toml:"resource_url"`
	MinInterval string              `toml:"min_interval"`
	Fields      map[string][]string `toml:"fields"`
}

// sourcesFile is the typed view of the [[source]] tables.
type sourcesFile struct {
	Sources []sourceConfig `toml:"source"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the tingsync config directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
	sources  []sourceConfig
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.tingsync/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".tingsync")
	}
	return NewConfigStoreAt(filepath.Join(configDir, FileName))
}

// NewConfigStoreAt creates a config store backed by an explicit file path.
// The file need not exist yet.
func NewConfigStoreAt(path string) (*ConfigStore, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: path,
		data:     make(map[string]any),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetFloat retrieves a numeric configuration value.
// TOML integers are accepted so "rate_per_second = 2" works.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// GetDuration retrieves a duration such as "90s" or "1h".
// Bare integers are read as seconds.
func (s *ConfigStore) GetDuration(key string, fallback time.Duration) time.Duration {
	val, ok := s.Get(key)
	if !ok {
		return fallback
	}

	switch v := val.(type) {
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return d
	case int64:
		return time.Duration(v) * time.Second
	case int:
		return time.Duration(v) * time.Second
	default:
		return fallback
	}
}

// Sources returns the configured [[source]] tables as sync sources.
// With no tables configured the built-in defaults are returned. A table
// whose id matches a built-in source inherits its unset settings.
func (s *ConfigStore) Sources() ([]domain.SyncSource, error) {
	s.mu.RLock()
	configured := s.sources
	s.mu.RUnlock()

	if len(configured) == 0 {
		return domain.DefaultSources(), nil
	}

	defaults := make(map[string]domain.SyncSource)
	for _, d := range domain.DefaultSources() {
		defaults[d.ID] = d
	}

	seen := make(map[string]bool, len(configured))
	sources := make([]domain.SyncSource, 0, len(configured))
	for i, c := range configured {
		src, err := c.toSource(defaults[c.ID])
		if err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i+1, c.ID, err)
		}
		if err := src.Validate(); err != nil {
			return nil, err
		}
		if seen[src.ID] {
			return nil, fmt.Errorf("%w: duplicate source id %q", domain.ErrInvalidInput, src.ID)
		}
		seen[src.ID] = true
		sources = append(sources, src)
	}
	return sources, nil
}

// toSource converts a table into a SyncSource, filling gaps from base.
func (c sourceConfig) toSource(base domain.SyncSource) (domain.SyncSource, error) {
	src := base
	src.ID = c.ID

	if c.Kind != "" {
		kind, err := domain.ParseEntityKind(c.Kind)
		if err != nil {
			return src, err
		}
		src.Kind = kind
	}
	if c.URL != "" {
		src.URL = c.URL
	}
	if c.Envelope != "" {
		src.Envelope = c.Envelope
	}
	if c.ResourceURL != "" {
		src.ResourceURL = c.ResourceURL
	}
	if c.MinInterval != "" {
		d, err := time.ParseDuration(c.MinInterval)
		if err != nil {
			return src, fmt.Errorf("%w: min_interval: %v", domain.ErrInvalidInput, err)
		}
		src.MinInterval = d
	}
	if len(c.Fields) > 0 {
		src.Fields = src.Fields.Merge(c.Fields)
	}
	return src, nil
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, start empty
			s.data = make(map[string]any)
			s.sources = nil
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	var typed sourcesFile
	if err := toml.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("parsing [[source]] tables: %w", err)
	}

	// Flatten nested maps into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	s.sources = typed.Sources
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
