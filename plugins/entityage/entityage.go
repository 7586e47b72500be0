package entityage

import (
	"context"
	"time"

	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/intel"
)

const PluginID = "entity_age"

// Age bucket boundaries, measured from creation.
const (
	bucketNewDays         = 7
	bucketRecentDays      = 30
	bucketEstablishedDays = 365

	staleAfterDays = 180
)

func Descriptor() intel.Descriptor {
	return intel.Descriptor{
		ID:          PluginID,
		Label:       "Entity Age",
		Description: "Creation and update recency buckets",
		Weight:      0,
		Provider:    "content-intel",
	}
}

// Plugin derives age and staleness intel from an entity's timestamps. The
// clock is injected so tests can pin "now".
type Plugin struct {
	intel.Base
	now func() time.Time
}

func New(now func() time.Time) (intel.Plugin, error) {
	if now == nil {
		now = time.Now
	}
	return &Plugin{Base: intel.NewBase(Descriptor()), now: now}, nil
}

func (p *Plugin) Collect(_ context.Context, e entity.Entity) (intel.Data, error) {
	created := e.Created()
	if created.IsZero() {
		// Hosts without creation timestamps get no age intel.
		return nil, nil
	}

	now := p.now()
	ageDays := daysBetween(created, now)

	data := intel.Data{
		"created":    created.Unix(),
		"age_days":   ageDays,
		"age_bucket": bucket(ageDays),
	}

	if changed := e.Changed(); !changed.IsZero() {
		sinceUpdate := daysBetween(changed, now)
		data["changed"] = changed.Unix()
		data["days_since_update"] = sinceUpdate
		data["stale"] = sinceUpdate > staleAfterDays
	}
	return data, nil
}

func bucket(ageDays int) string {
	switch {
	case ageDays < bucketNewDays:
		return "new"
	case ageDays < bucketRecentDays:
		return "recent"
	case ageDays < bucketEstablishedDays:
		return "established"
	default:
		return "archive"
	}
}

func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
