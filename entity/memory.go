package entity

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is a concrete Entity for hosts without their own content objects,
// and for test fixtures.
type Record struct {
	Type       string
	EntityID   string
	EntityUUID string
	Title      string
	BundleID   string
	Language   string
	CreatedAt  time.Time
	ChangedAt  time.Time
	FieldList  []Field
}

func (r *Record) EntityType() string { return r.Type }
func (r *Record) ID() string         { return r.EntityID }
func (r *Record) UUID() string       { return r.EntityUUID }
func (r *Record) Label() string      { return r.Title }
func (r *Record) Bundle() string     { return r.BundleID }
func (r *Record) Langcode() string   { return r.Language }
func (r *Record) Created() time.Time { return r.CreatedAt }
func (r *Record) Changed() time.Time { return r.ChangedAt }
func (r *Record) Fields() []Field    { return r.FieldList }

// MemoryStore is an in-memory Store and Schema, backing the CLI demo
// fixtures and the test suites.
type MemoryStore struct {
	mu       sync.RWMutex
	types    []TypeInfo
	bundles  map[string][]BundleInfo
	fields   map[string][]FieldInfo
	entities map[string]map[string]*Record // entityType -> id -> record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bundles:  make(map[string][]BundleInfo),
		fields:   make(map[string][]FieldInfo),
		entities: make(map[string]map[string]*Record),
	}
}

// AddType registers an entity type with its bundles.
func (s *MemoryStore) AddType(info TypeInfo, bundles ...BundleInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, info)
	s.bundles[info.ID] = append(s.bundles[info.ID], bundles...)
}

// AddFields registers field definitions for an entityType/bundle pair.
func (s *MemoryStore) AddFields(entityType, bundle string, fields ...FieldInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[fieldKey(entityType, bundle)] = append(s.fields[fieldKey(entityType, bundle)], fields...)
}

// Add stores a record, assigning a uuid when absent.
func (s *MemoryStore) Add(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.EntityUUID == "" {
		r.EntityUUID = uuid.NewString()
	}
	if s.entities[r.Type] == nil {
		s.entities[r.Type] = make(map[string]*Record)
	}
	s.entities[r.Type][r.EntityID] = r
}

func (s *MemoryStore) Load(_ context.Context, entityType, id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.entities[entityType][id]
	if !ok {
		return nil, nil
	}
	return r, nil
}

func (s *MemoryStore) LoadMany(ctx context.Context, entityType string, ids []string) ([]Entity, error) {
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		e, err := s.Load(ctx, entityType, id)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) List(_ context.Context, q Query) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	var matched []*Record
	for _, r := range s.entities[q.EntityType] {
		if q.Bundle != "" && r.BundleID != q.Bundle {
			continue
		}
		if !matchConditions(r, q.Conditions) {
			continue
		}
		matched = append(matched, r)
	}

	// Newest first: numeric ids compare numerically, the rest fall back to
	// lexicographic order.
	sort.Slice(matched, func(i, j int) bool {
		return idLess(matched[j].EntityID, matched[i].EntityID)
	})

	if q.Offset >= len(matched) {
		return []Summary{}, nil
	}
	matched = matched[q.Offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]Summary, len(matched))
	for i, r := range matched {
		out[i] = Summarize(r)
	}
	return out, nil
}

func (s *MemoryStore) EntityTypes(_ context.Context) ([]TypeInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]TypeInfo(nil), s.types...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Bundles(_ context.Context, entityType string) ([]BundleInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]BundleInfo(nil), s.bundles[entityType]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Fields(_ context.Context, entityType, bundle string) ([]FieldInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]FieldInfo(nil), s.fields[fieldKey(entityType, bundle)]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func fieldKey(entityType, bundle string) string {
	if bundle == "" {
		return entityType
	}
	return entityType + "." + bundle
}

func matchConditions(r *Record, conditions map[string]string) bool {
	for key, want := range conditions {
		switch key {
		case "bundle":
			if r.BundleID != want {
				return false
			}
		case "langcode":
			if r.Language != want {
				return false
			}
		case "label":
			if !strings.Contains(strings.ToLower(r.Title), strings.ToLower(want)) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func idLess(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
