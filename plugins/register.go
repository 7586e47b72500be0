// Package plugins wires the built-in intelligence plugins into a registry.
// Hosts with their own plugins register those the same way, alongside or
// instead of the built-ins.
package plugins

import (
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dxpr/content-intel/intel"
	"github.com/dxpr/content-intel/plugins/entityage"
	"github.com/dxpr/content-intel/plugins/translationstatus"
	"github.com/dxpr/content-intel/plugins/viewstats"
	"github.com/dxpr/content-intel/plugins/wordcount"
)

// Deps carries the external handles the built-in plugins need. Every field
// is optional; a plugin missing its dependency reports unavailable or
// contributes less, it never breaks registration.
type Deps struct {
	// Redis backs the statistics plugin. Nil leaves it unavailable.
	Redis *redis.Client

	// Clock overrides "now" for the entity age plugin. Nil means time.Now.
	Clock func() time.Time

	// Languages is the site language list, default first.
	Languages []string
}

// RegisterBuiltin registers the four built-in plugins. Called once during
// process initialization.
func RegisterBuiltin(reg *intel.Registry, deps Deps) error {
	table := []struct {
		desc    intel.Descriptor
		factory intel.Factory
	}{
		{wordcount.Descriptor(), func() (intel.Plugin, error) { return wordcount.New() }},
		{entityage.Descriptor(), func() (intel.Plugin, error) { return entityage.New(deps.Clock) }},
		{viewstats.Descriptor(), func() (intel.Plugin, error) { return viewstats.New(deps.Redis) }},
		{translationstatus.Descriptor(), func() (intel.Plugin, error) { return translationstatus.New(deps.Languages) }},
	}

	for _, row := range table {
		if err := reg.Register(row.desc, row.factory); err != nil {
			return err
		}
	}
	return nil
}
