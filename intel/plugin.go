package intel

import (
	"context"

	"github.com/dxpr/content-intel/entity"
)

// Data is the JSON-shaped payload one plugin contributes for one entity.
// An empty Data means "no contribution" and produces no report entry.
type Data = map[string]any

// Plugin is the capability set every intelligence source implements.
// Instances are stateless across invocations; dependency handles resolved at
// construction are treated as read-only afterwards.
type Plugin interface {
	Label() string
	Description() string
	Weight() int

	// Available reports whether the plugin's external dependencies are
	// present. Unavailability is a filtering signal, never an error.
	Available() bool

	// Applies reports whether the plugin produces intel for this entity.
	Applies(sum entity.Summary) bool

	// Collect gathers the plugin's contribution. It must not mutate the
	// entity; a returned error becomes an error entry in the report.
	Collect(ctx context.Context, e entity.Entity) (Data, error)
}

// Factory constructs one plugin instance. Factories receive their
// dependencies when the plugin package wires them; the registry only calls
// the resulting closure.
type Factory func() (Plugin, error)

// Base provides the default plugin behavior: always available, applicable
// per the descriptor's entity-type set, and descriptor projections for
// Label/Description/Weight. Concrete plugins embed Base and implement
// Collect.
type Base struct {
	desc Descriptor
}

// NewBase wraps a descriptor in the default behavior.
func NewBase(desc Descriptor) Base {
	return Base{desc: desc}
}

func (b Base) Label() string       { return b.desc.Label }
func (b Base) Description() string { return b.desc.Description }
func (b Base) Weight() int         { return b.desc.Weight }

func (b Base) Available() bool { return true }

func (b Base) Applies(sum entity.Summary) bool {
	return b.desc.AppliesTo(sum.EntityType)
}

// PluginDescriptor returns the wrapped descriptor.
func (b Base) PluginDescriptor() Descriptor { return b.desc }
