package viewstats

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dxpr/content-intel/cache"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/intel"
)

const PluginID = "statistics"

const keyPrefix = "intel:views"

// counterTTL bounds how stale a cached counter read may be. View counts
// tolerate short staleness in exchange for one redis round trip per window.
const counterTTL = 10 * time.Second

func Descriptor() intel.Descriptor {
	return intel.Descriptor{
		ID:          PluginID,
		Label:       "Statistics",
		Description: "View counters backed by redis",
		Weight:      10,
		Provider:    "content-intel",
	}
}

// Plugin reads per-entity view counters from redis. Without an injected
// client the plugin reports unavailable and is skipped by the collector, it
// never fails a collection for a missing backend.
type Plugin struct {
	intel.Base
	client *redis.Client
	reads  *cache.Cache
	now    func() time.Time
}

func New(client *redis.Client) (intel.Plugin, error) {
	return &Plugin{
		Base:   intel.NewBase(Descriptor()),
		client: client,
		reads:  cache.New(),
		now:    time.Now,
	}, nil
}

func (p *Plugin) Available() bool { return p.client != nil }

func (p *Plugin) Collect(ctx context.Context, e entity.Entity) (intel.Data, error) {
	totalKey := fmt.Sprintf("%s:%s:%s", keyPrefix, e.EntityType(), e.ID())
	total, err := p.readCounter(ctx, totalKey)
	if err != nil {
		return nil, err
	}

	day := p.now().UTC().Format("2006-01-02")
	today, err := p.readCounter(ctx, totalKey+":"+day)
	if err != nil {
		return nil, err
	}

	return intel.Data{
		"total_views": total,
		"views_today": today,
	}, nil
}

// RecordView bumps the counters the collector later reads. Hosts call this
// from their page-view path.
func (p *Plugin) RecordView(ctx context.Context, e entity.Summary) error {
	if p.client == nil {
		return nil
	}
	totalKey := fmt.Sprintf("%s:%s:%s", keyPrefix, e.EntityType, e.ID)
	p.reads.Delete(totalKey)
	if err := p.client.Incr(ctx, totalKey).Err(); err != nil {
		return err
	}

	dayKey := totalKey + ":" + p.now().UTC().Format("2006-01-02")
	if err := p.client.Incr(ctx, dayKey).Err(); err != nil {
		return err
	}
	// Daily counters expire on their own, only the total is kept forever.
	return p.client.Expire(ctx, dayKey, 48*time.Hour).Err()
}

func (p *Plugin) readCounter(ctx context.Context, key string) (int64, error) {
	if cached, ok := p.reads.Get(key); ok {
		return cached.(int64), nil
	}

	n, err := p.client.Get(ctx, key).Int64()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	// redis.Nil means the counter was never bumped.
	p.reads.Set(key, n, counterTTL)
	return n, nil
}
