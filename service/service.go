// Package service is the consumer surface of the aggregation core. The HTTP
// API and the CLI both sit on top of it; host programs embedding the module
// call it directly.
package service

import (
	"context"
	"sort"

	"github.com/dxpr/content-intel/collector"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/intel"
	"github.com/dxpr/content-intel/logging"
)

// PluginInfo is one row of the plugin catalogue. Unavailable plugins are
// listed too, flagged rather than hidden.
type PluginInfo struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Provider    string   `json:"provider,omitempty"`
	Available   bool     `json:"available"`
	EntityTypes []string `json:"entityTypes,omitempty"`
	Weight      int      `json:"weight"`
}

// Service bundles the entity boundary, the plugin registry and the collector
// behind one API.
type Service struct {
	store     entity.Store
	schema    entity.Schema
	registry  *intel.Registry
	collector *collector.Collector
	logger    logging.Logger
}

func New(store entity.Store, schema entity.Schema, registry *intel.Registry, c *collector.Collector, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		store:     store,
		schema:    schema,
		registry:  registry,
		collector: c,
		logger:    logger.Named("service"),
	}
}

// EntityTypes lists the entity types the host schema exposes.
func (s *Service) EntityTypes(ctx context.Context) ([]entity.TypeInfo, error) {
	return s.schema.EntityTypes(ctx)
}

// Bundles lists the bundles of one entity type.
func (s *Service) Bundles(ctx context.Context, entityType string) ([]entity.BundleInfo, error) {
	return s.schema.Bundles(ctx, entityType)
}

// Fields lists the field definitions of an entityType/bundle pair.
func (s *Service) Fields(ctx context.Context, entityType, bundle string) ([]entity.FieldInfo, error) {
	return s.schema.Fields(ctx, entityType, bundle)
}

// Plugins returns the full catalogue regardless of the enabled-list, sorted
// by weight then id. Availability is probed per plugin; a plugin whose
// factory fails is reported unavailable, not an error.
func (s *Service) Plugins() []PluginInfo {
	descriptors := s.registry.Descriptors()

	infos := make([]PluginInfo, 0, len(descriptors))
	for id, desc := range descriptors {
		available := false
		if p, err := s.registry.Instantiate(id); err == nil {
			available = p.Available()
		}
		infos = append(infos, PluginInfo{
			ID:          id,
			Label:       desc.Label,
			Description: desc.Description,
			Provider:    desc.Provider,
			Available:   available,
			EntityTypes: desc.EntityTypes,
			Weight:      desc.Weight,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Weight != infos[j].Weight {
			return infos[i].Weight < infos[j].Weight
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// LoadEntity loads one entity, nil when absent.
func (s *Service) LoadEntity(ctx context.Context, entityType, id string) (entity.Entity, error) {
	return s.store.Load(ctx, entityType, id)
}

// LoadEntities loads several entities of one type. Missing ids are skipped.
func (s *Service) LoadEntities(ctx context.Context, entityType string, ids []string) ([]entity.Entity, error) {
	return s.store.LoadMany(ctx, entityType, ids)
}

// ListEntities lists entity summaries, newest-first by identifier unless
// conditions dictate otherwise.
func (s *Service) ListEntities(ctx context.Context, q entity.Query) ([]entity.Summary, error) {
	return s.store.List(ctx, q)
}

// EntitySummary loads an entity and returns its identity snapshot.
func (s *Service) EntitySummary(ctx context.Context, entityType, id string) (entity.Summary, error) {
	e, err := s.store.Load(ctx, entityType, id)
	if err != nil {
		return entity.Summary{}, err
	}
	if e == nil {
		return entity.Summary{}, errors.NewEntityNotFound(entityType, id)
	}
	return entity.Summarize(e), nil
}

// CollectIntel loads an entity and produces its intel report. A missing
// entity is an entity_not_found error; everything past the load is the
// collector's isolation contract.
func (s *Service) CollectIntel(ctx context.Context, entityType, id string, fieldFilter, pluginFilter []string) (*collector.Report, error) {
	e, err := s.store.Load(ctx, entityType, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.NewEntityNotFound(entityType, id)
	}
	return s.collector.Collect(ctx, e, fieldFilter, pluginFilter)
}

// CollectIntelBatch loads several entities of one type and collects their
// reports concurrently. Ids that resolve to nothing land in the result's
// Errors map; a load failure aborts the whole batch.
func (s *Service) CollectIntelBatch(ctx context.Context, entityType string, ids []string, fieldFilter, pluginFilter []string) (*collector.BatchResult, error) {
	entities, err := s.store.LoadMany(ctx, entityType, ids)
	if err != nil {
		return nil, err
	}

	loaded := make(map[string]bool, len(entities))
	for _, e := range entities {
		if e != nil {
			loaded[e.ID()] = true
		}
	}

	result := s.collector.CollectMany(ctx, entities, fieldFilter, pluginFilter)
	for _, id := range ids {
		if loaded[id] {
			continue
		}
		if result.Errors == nil {
			result.Errors = make(map[string]string)
		}
		result.Errors[entityType+"/"+id] = errors.NewEntityNotFound(entityType, id).Error()
	}
	return result, nil
}
