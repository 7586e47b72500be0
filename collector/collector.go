package collector

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dxpr/content-intel/config"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/intel"
	"github.com/dxpr/content-intel/logging"
	"github.com/dxpr/content-intel/metrics"
)

// DefaultPluginTimeout bounds one plugin's Collect call. Ten seconds
// comfortably covers a slow database read while keeping a hung plugin from
// stalling the whole aggregation.
const DefaultPluginTimeout = 10 * time.Second

// DefaultBatchWorkers bounds concurrent entities in CollectMany.
const DefaultBatchWorkers = 4

// Options configures a Collector. Zero values fall back to defaults.
type Options struct {
	// PluginTimeout is the per-plugin collection budget. A plugin exceeding
	// it is recorded as failed, never awaited.
	PluginTimeout time.Duration

	// BatchWorkers is the worker count for CollectMany.
	BatchWorkers int

	// Config supplies the persisted enabled-plugin allow-list. Nil means no
	// allow-list, every applicable plugin runs.
	Config config.Store

	Logger  logging.Logger
	Metrics *metrics.Collector
}

// Collector orchestrates one collection request: entity summary, field
// snapshot, ordered plugin execution with isolated failures, report
// alteration.
type Collector struct {
	registry *intel.Registry
	opts     Options
	logger   logging.Logger

	mu       sync.RWMutex
	alterers []ReportAlterer
}

func New(registry *intel.Registry, opts Options) *Collector {
	if opts.PluginTimeout <= 0 {
		opts.PluginTimeout = DefaultPluginTimeout
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = DefaultBatchWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	return &Collector{
		registry: registry,
		opts:     opts,
		logger:   opts.Logger.Named("collector"),
	}
}

// AlterReports appends a report alter hook. Hooks run in registration order
// on every assembled report.
func (c *Collector) AlterReports(alterer ReportAlterer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alterers = append(c.alterers, alterer)
}

// Collect produces one report for one entity. An empty fieldFilter means
// all fields; an empty pluginFilter defers to the persisted allow-list.
func (c *Collector) Collect(ctx context.Context, e entity.Entity, fieldFilter, pluginFilter []string) (*Report, error) {
	if e == nil {
		return nil, errors.New(errors.ErrorTypeEntityNotFound, "no entity provided")
	}

	started := time.Now()
	sum := entity.Summarize(e)

	report := &Report{
		Entity: sum,
		Fields: entity.Snapshot(e, fieldFilter),
		Intel:  make(map[string]Entry),
	}

	// The explicit filter wins outright; the persisted allow-list only
	// applies when the caller passed none.
	allowed := allowSet(pluginFilter)
	if allowed == nil {
		allowed = allowSet(config.EnabledPlugins(c.opts.Config))
	}

	for _, pe := range c.registry.Applicable(sum) {
		if allowed != nil && !allowed[pe.ID] {
			continue
		}

		pluginStart := time.Now()
		data, err := c.invoke(ctx, pe, e)
		c.observe(pe.ID, time.Since(pluginStart), err)

		if err != nil {
			// One plugin's failure never aborts or taints the rest.
			c.logger.Warn("plugin collection failed",
				zap.String("plugin", pe.ID),
				zap.String("entity", sum.EntityType+"/"+sum.ID),
				zap.Error(err))
			report.Intel[pe.ID] = Entry{PluginLabel: pe.Plugin.Label(), Error: err.Error()}
			continue
		}
		if len(data) == 0 {
			// Zero-value data means "no contribution": no entry at all.
			continue
		}
		report.Intel[pe.ID] = Entry{PluginLabel: pe.Plugin.Label(), Data: data}
	}

	c.mu.RLock()
	alterers := append([]ReportAlterer(nil), c.alterers...)
	c.mu.RUnlock()
	for _, alter := range alterers {
		alter(report, e)
	}

	c.logger.Debug("collection finished",
		zap.String("entity", sum.EntityType+"/"+sum.ID),
		zap.Int("fields", len(report.Fields)),
		zap.Int("plugins", len(report.Intel)),
		zap.Duration("took", time.Since(started)))
	return report, nil
}

type invokeResult struct {
	data intel.Data
	err  error
}

// invoke runs one plugin under the collection budget with panic isolation.
// A plugin that overruns its budget is abandoned, not awaited; Collect
// implementations are expected to honor ctx cancellation.
func (c *Collector) invoke(ctx context.Context, pe intel.Entry, e entity.Entity) (intel.Data, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.PluginTimeout)
	defer cancel()

	ch := make(chan invokeResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- invokeResult{err: errors.Recover(r)}
			}
		}()
		data, err := pe.Plugin.Collect(ctx, e)
		ch <- invokeResult{data: data, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, errors.NewCollection(pe.ID, res.err)
		}
		return res.data, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeout(pe.ID, c.opts.PluginTimeout.String())
		}
		return nil, errors.NewCollection(pe.ID, ctx.Err())
	}
}

func (c *Collector) observe(pluginID string, took time.Duration, err error) {
	if c.opts.Metrics == nil {
		return
	}
	labels := map[string]string{"plugin": pluginID}
	c.opts.Metrics.IncCounter("intel_collect_total", labels)
	c.opts.Metrics.ObserveDuration("intel_collect_seconds", took, labels)
	if err != nil {
		c.opts.Metrics.IncCounter("intel_collect_errors_total", labels)
	}
}

// allowSet turns a filter slice into a membership set; nil for "no filter".
func allowSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
