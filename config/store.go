package config

import (
	"sync"
)

// KeyEnabledPlugins is the persisted allow-list of plugin ids consulted by
// the collector when no explicit plugin filter is given.
const KeyEnabledPlugins = "plugins.enabled"

// Store is the narrow key-value boundary the aggregation core consumes for
// persisted settings.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MemoryStore is a Store backed by a plain map. Used in tests and as the
// default when no file-backed configuration is wired.
type MemoryStore struct {
	values map[string]any
	mu     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]any)}
}

func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get/Set on Config satisfy Store apart from the presence flag; storeAdapter
// bridges the difference.
type storeAdapter struct {
	cfg *Config
}

// AsStore exposes a file-backed Config as a Store.
func AsStore(cfg *Config) Store {
	return &storeAdapter{cfg: cfg}
}

func (a *storeAdapter) Get(key string) (any, bool) {
	v := a.cfg.Get(key)
	return v, v != nil
}

func (a *storeAdapter) Set(key string, value any) {
	a.cfg.Set(key, value)
}

// EnabledPlugins reads the persisted allow-list from a Store, tolerating both
// []string and []any value shapes (viper yields the latter from YAML).
func EnabledPlugins(store Store) []string {
	if store == nil {
		return nil
	}
	v, ok := store.Get(KeyEnabledPlugins)
	if !ok {
		return nil
	}

	switch list := v.(type) {
	case []string:
		return list
	case []any:
		ids := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		return ids
	default:
		return nil
	}
}
