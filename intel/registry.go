package intel

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/dxpr/content-intel/cache"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/logging"
)

const descriptorCacheKey = "intel.descriptors"

// Entry pairs a plugin id with its instance and the frozen descriptor it was
// discovered under.
type Entry struct {
	ID         string
	Plugin     Plugin
	Descriptor Descriptor
}

type registration struct {
	desc    Descriptor
	factory Factory
}

// Registry is the catalogue of known plugins. Registration happens during
// process initialization; lookups produce ordered, filtered instances.
type Registry struct {
	mu            sync.RWMutex
	registrations map[string]*registration
	order         []string // registration order, the tie-breaker for equal weights
	alterers      []DescriptorAlterer
	instances     map[string]Plugin
	snapshot      *cache.Cache
	logger        logging.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]*registration),
		instances:     make(map[string]Plugin),
		snapshot:      cache.New(),
		logger:        logging.Nop(),
	}
}

// WithLogger sets the registry logger. Chainable, call before use.
func (r *Registry) WithLogger(logger logging.Logger) *Registry {
	r.logger = logger.Named("registry")
	return r
}

// Register adds a plugin to the catalogue. Duplicate ids are an error.
func (r *Registry) Register(desc Descriptor, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if desc.ID == "" {
		return errors.NewValidation("plugin descriptor requires an id")
	}
	if _, exists := r.registrations[desc.ID]; exists {
		return errors.NewDuplicate(desc.ID)
	}

	r.registrations[desc.ID] = &registration{desc: desc, factory: factory}
	r.order = append(r.order, desc.ID)
	r.snapshot.Delete(descriptorCacheKey)

	r.logger.Debug("plugin registered",
		zap.String("id", desc.ID),
		zap.Int("weight", desc.Weight))
	return nil
}

// MustRegister registers a plugin, panicking on failure. For process-init
// registration tables where a duplicate is a programming error.
func (r *Registry) MustRegister(desc Descriptor, factory Factory) {
	if err := r.Register(desc, factory); err != nil {
		panic(err)
	}
}

// AlterDescriptors appends a descriptor alter hook and invalidates the
// frozen snapshot so the next discovery cycle sees the change.
func (r *Registry) AlterDescriptors(alterer DescriptorAlterer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alterers = append(r.alterers, alterer)
	r.snapshot.Delete(descriptorCacheKey)
}

// Descriptors returns all discovered descriptors, unavailable plugins
// included, after alter hooks ran. The result is a copy of the frozen
// snapshot; mutating it does not touch the catalogue (alter hooks are the
// only way to rewrite descriptors).
func (r *Registry) Descriptors() map[string]Descriptor {
	r.mu.RLock()
	if cached, ok := r.snapshot.Get(descriptorCacheKey); ok {
		r.mu.RUnlock()
		return copyDescriptors(cached.(map[string]Descriptor))
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.snapshot.Get(descriptorCacheKey); ok {
		return copyDescriptors(cached.(map[string]Descriptor))
	}

	descriptors := make(map[string]Descriptor, len(r.registrations))
	for id, reg := range r.registrations {
		descriptors[id] = reg.desc
	}
	for _, alter := range r.alterers {
		alter(descriptors)
	}

	r.snapshot.Set(descriptorCacheKey, descriptors, 0)
	return copyDescriptors(descriptors)
}

func copyDescriptors(src map[string]Descriptor) map[string]Descriptor {
	out := make(map[string]Descriptor, len(src))
	for id, desc := range src {
		out[id] = desc
	}
	return out
}

// Instantiate constructs (or returns the cached) instance for a known id.
func (r *Registry) Instantiate(id string) (Plugin, error) {
	descriptors := r.Descriptors()
	if _, ok := descriptors[id]; !ok {
		return nil, errors.NewUnknownPlugin(id)
	}

	r.mu.RLock()
	if p, ok := r.instances[id]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	reg, registered := r.registrations[id]
	r.mu.RUnlock()

	// A descriptor added by an alter hook has no factory behind it.
	if !registered {
		return nil, errors.NewUnknownPlugin(id)
	}

	p, err := reg.factory()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "plugin construction failed").
			WithDetail("plugin", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.instances[id]; ok {
		return cached, nil
	}
	r.instances[id] = p
	return p, nil
}

// Available instantiates every descriptor, keeps the available instances and
// orders them by ascending weight. Equal weights keep registration order.
func (r *Registry) Available() []Entry {
	descriptors := r.Descriptors()

	r.mu.RLock()
	order := append([]string(nil), r.order...)
	r.mu.RUnlock()

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		desc, ok := descriptors[id]
		if !ok {
			// Removed by an alter hook this cycle.
			continue
		}
		p, err := r.Instantiate(id)
		if err != nil {
			// Local failure: skip this plugin, the catalogue stays usable.
			r.logger.Warn("plugin instantiation failed",
				zap.String("id", id), zap.Error(err))
			continue
		}
		if !p.Available() {
			continue
		}
		entries = append(entries, Entry{ID: id, Plugin: p, Descriptor: desc})
	}

	// Stable: equal-weight plugins must not be reordered. Weights come from
	// the frozen snapshot so alter hooks can reorder execution.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Descriptor.Weight < entries[j].Descriptor.Weight
	})
	return entries
}

// Applicable filters Available by per-entity applicability, preserving the
// weight ordering.
func (r *Registry) Applicable(sum entity.Summary) []Entry {
	available := r.Available()
	entries := make([]Entry, 0, len(available))
	for _, e := range available {
		if e.Plugin.Applies(sum) {
			entries = append(entries, e)
		}
	}
	return entries
}
