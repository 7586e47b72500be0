package entity

import (
	"context"
	"time"
)

// Summary is a point-in-time snapshot of an entity's identity. It is not a
// live reference; mutations after creation are never visible through it.
type Summary struct {
	EntityType string `json:"entityType"`
	ID         string `json:"id"`
	UUID       string `json:"uuid"`
	Label      string `json:"label"`
	Bundle     string `json:"bundle,omitempty"`
	Langcode   string `json:"langcode,omitempty"`
}

// Entity is the unit of content the aggregation core consumes. Host
// platforms adapt their own content objects to this interface.
type Entity interface {
	EntityType() string
	ID() string
	UUID() string
	Label() string
	Bundle() string
	Langcode() string
	Created() time.Time
	Changed() time.Time
	Fields() []Field
}

// Summarize builds the read-only Summary snapshot for an entity.
func Summarize(e Entity) Summary {
	return Summary{
		EntityType: e.EntityType(),
		ID:         e.ID(),
		UUID:       e.UUID(),
		Label:      e.Label(),
		Bundle:     e.Bundle(),
		Langcode:   e.Langcode(),
	}
}

// Query filters an entity listing.
type Query struct {
	EntityType string            `json:"entityType"`
	Bundle     string            `json:"bundle,omitempty"`
	Limit      int               `json:"limit" default:"50"`
	Offset     int               `json:"offset"`
	Conditions map[string]string `json:"conditions,omitempty"`
}

// Store is the external entity lookup boundary. Load returns (nil, nil) for
// a missing entity; it never errors on absence.
type Store interface {
	Load(ctx context.Context, entityType, id string) (Entity, error)
	LoadMany(ctx context.Context, entityType string, ids []string) ([]Entity, error)
	List(ctx context.Context, q Query) ([]Summary, error)
}

// TypeInfo describes one entity type known to the host schema.
type TypeInfo struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	BundleKind string `json:"bundleKind,omitempty"`
}

// BundleInfo describes one bundle of an entity type.
type BundleInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FieldInfo describes one field definition of a bundle.
type FieldInfo struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Cardinality int    `json:"cardinality"`
}

// Schema is the external schema introspection boundary.
type Schema interface {
	EntityTypes(ctx context.Context) ([]TypeInfo, error)
	Bundles(ctx context.Context, entityType string) ([]BundleInfo, error)
	Fields(ctx context.Context, entityType, bundle string) ([]FieldInfo, error)
}
