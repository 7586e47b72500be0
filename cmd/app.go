package cmd

import (
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dxpr/content-intel/collector"
	"github.com/dxpr/content-intel/config"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/env_mode"
	"github.com/dxpr/content-intel/intel"
	"github.com/dxpr/content-intel/json"
	"github.com/dxpr/content-intel/logging"
	"github.com/dxpr/content-intel/metrics"
	"github.com/dxpr/content-intel/plugins"
	"github.com/dxpr/content-intel/redis_client"
	"github.com/dxpr/content-intel/service"
)

// app is the wired process: settings, logger, registry, collector, service.
// Every subcommand builds one and talks to app.svc.
type app struct {
	settings *config.Settings
	logger   logging.Logger
	store    *entity.MemoryStore
	registry *intel.Registry
	metrics  *metrics.Collector
	svc      *service.Service
}

func newApp(configPath, dataPath string) (*app, error) {
	opts := config.DefaultOptions()
	if env_mode.IsDev() {
		opts = config.DevOptions()
	}
	if configPath != "" {
		opts.BasePath = configPath
	}
	settings, err := config.LoadSettings(opts)
	if err != nil {
		return nil, err
	}

	logging.Init(settings.Logging)
	logger := logging.Global()

	store := entity.NewMemoryStore()
	if dataPath != "" {
		if err := loadFixtures(store, dataPath); err != nil {
			return nil, err
		}
	} else {
		seedSampleContent(store)
	}

	var redisClient *redis.Client
	if settings.Redis.Configured() {
		redisClient, err = redis_client.NewRedis(settings.Redis)
		if err != nil {
			// Statistics degrade to unavailable, the rest of the CLI works.
			logger.Warn("redis unreachable, statistics plugin disabled", zap.Error(err))
			redisClient = nil
		}
	}

	registry := intel.NewRegistry().WithLogger(logger)
	if err := plugins.RegisterBuiltin(registry, plugins.Deps{
		Redis:     redisClient,
		Languages: settings.Languages,
	}); err != nil {
		return nil, err
	}

	cfgStore := config.NewMemoryStore()
	if len(settings.Plugins.Enabled) > 0 {
		cfgStore.Set(config.KeyEnabledPlugins, settings.Plugins.Enabled)
	}

	m := metrics.NewCollector()
	c := collector.New(registry, collector.Options{
		PluginTimeout: settings.Plugins.Timeout,
		Config:        cfgStore,
		Logger:        logger,
		Metrics:       m,
	})

	return &app{
		settings: settings,
		logger:   logger,
		store:    store,
		registry: registry,
		metrics:  m,
		svc:      service.New(store, store, registry, c, logger),
	}, nil
}

// fixtureFile is the on-disk shape of a content fixture set.
type fixtureFile struct {
	Types []struct {
		ID      string              `json:"id"`
		Label   string              `json:"label"`
		Bundles []entity.BundleInfo `json:"bundles"`
	} `json:"types"`
	Entities []fixtureEntity `json:"entities"`
}

type fixtureEntity struct {
	EntityType string         `json:"entityType"`
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Bundle     string         `json:"bundle"`
	Langcode   string         `json:"langcode"`
	Created    int64          `json:"created"`
	Changed    int64          `json:"changed"`
	Fields     []fixtureField `json:"fields"`
}

type fixtureField struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Kind  entity.FieldKind `json:"kind"`
	Value any              `json:"value"`
}

func loadFixtures(store *entity.MemoryStore, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file fixtureFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return err
	}

	for _, t := range file.Types {
		store.AddType(entity.TypeInfo{ID: t.ID, Label: t.Label}, t.Bundles...)
	}
	for _, fe := range file.Entities {
		store.Add(fixtureRecord(fe))
	}
	return nil
}

func fixtureRecord(fe fixtureEntity) *entity.Record {
	r := &entity.Record{
		Type:     fe.EntityType,
		EntityID: fe.ID,
		Title:    fe.Label,
		BundleID: fe.Bundle,
		Language: fe.Langcode,
	}
	if fe.Created > 0 {
		r.CreatedAt = time.Unix(fe.Created, 0)
	}
	if fe.Changed > 0 {
		r.ChangedAt = time.Unix(fe.Changed, 0)
	}
	for _, f := range fe.Fields {
		r.FieldList = append(r.FieldList, entity.Field{
			Name:  f.Name,
			Label: f.Label,
			Kind:  f.Kind,
			Value: fixtureValue(f),
		})
	}
	return r
}

// fixtureValue rebuilds typed field values from their JSON shapes.
func fixtureValue(f fixtureField) any {
	obj, isMap := f.Value.(map[string]any)
	if !isMap {
		return f.Value
	}
	switch f.Kind {
	case entity.KindRichText:
		return entity.RichText{
			Value:   str(obj["value"]),
			Format:  str(obj["format"]),
			Summary: str(obj["summary"]),
		}
	case entity.KindReference:
		return entity.Reference{
			TargetID:   str(obj["targetId"]),
			TargetType: str(obj["targetType"]),
			Label:      str(obj["label"]),
		}
	case entity.KindLink:
		link := entity.Link{URI: str(obj["uri"]), Title: str(obj["title"])}
		if opts, ok := obj["options"].(map[string]any); ok {
			link.Options = opts
		}
		return link
	default:
		return f.Value
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// seedSampleContent fills the store with a small demo dataset so the CLI is
// usable before any fixtures are wired.
func seedSampleContent(store *entity.MemoryStore) {
	store.AddType(entity.TypeInfo{ID: "node", Label: "Content"},
		entity.BundleInfo{ID: "article", Label: "Article"},
		entity.BundleInfo{ID: "page", Label: "Basic page"})
	store.AddFields("node", "article",
		entity.FieldInfo{Name: "title", Label: "Title", Type: "string", Required: true, Cardinality: 1},
		entity.FieldInfo{Name: "body", Label: "Body", Type: "text_long", Cardinality: 1},
		entity.FieldInfo{Name: "tags", Label: "Tags", Type: "entity_reference", Cardinality: -1})

	now := time.Now()
	store.Add(&entity.Record{
		Type:      "node",
		EntityID:  "1",
		Title:     "Hello World",
		BundleID:  "article",
		Language:  "en",
		CreatedAt: now.Add(-40 * 24 * time.Hour),
		ChangedAt: now.Add(-2 * 24 * time.Hour),
		FieldList: []entity.Field{
			{Name: "title", Label: "Title", Kind: entity.KindScalar, Value: "Hello World"},
			{Name: "body", Label: "Body", Kind: entity.KindRichText, Value: entity.RichText{
				Value:  "The editor wrote a body with exactly twelve smart words in sixty",
				Format: "basic_html",
			}},
			{Name: "published", Label: "Published", Kind: entity.KindBoolean, Value: true},
		},
	})
	store.Add(&entity.Record{
		Type:      "node",
		EntityID:  "2",
		Title:     "Tweede artikel",
		BundleID:  "article",
		Language:  "nl",
		CreatedAt: now.Add(-3 * 24 * time.Hour),
		ChangedAt: now.Add(-3 * 24 * time.Hour),
		FieldList: []entity.Field{
			{Name: "title", Label: "Titel", Kind: entity.KindScalar, Value: "Tweede artikel"},
			{Name: "body", Label: "Body", Kind: entity.KindRichText, Value: entity.RichText{
				Value:  "Een kort artikel in het Nederlands",
				Format: "basic_html",
			}},
		},
	})
}
