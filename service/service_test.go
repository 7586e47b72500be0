package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxpr/content-intel/collector"
	"github.com/dxpr/content-intel/entity"
	"github.com/dxpr/content-intel/errors"
	"github.com/dxpr/content-intel/intel"
	"github.com/dxpr/content-intel/plugins"
)

// 12 words, 64 characters.
const articleBody = "The editor wrote a body with exactly twelve smart words in sixty"

func fixtureStore(t *testing.T) *entity.MemoryStore {
	t.Helper()
	store := entity.NewMemoryStore()
	store.AddType(entity.TypeInfo{ID: "node", Label: "Content"},
		entity.BundleInfo{ID: "article", Label: "Article"},
		entity.BundleInfo{ID: "page", Label: "Page"})
	store.AddFields("node", "article",
		entity.FieldInfo{Name: "title", Label: "Title", Type: "string", Required: true, Cardinality: 1},
		entity.FieldInfo{Name: "body", Label: "Body", Type: "text_long", Cardinality: 1})

	store.Add(&entity.Record{
		Type:      "node",
		EntityID:  "1",
		Title:     "Hello World",
		BundleID:  "article",
		Language:  "en",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ChangedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		FieldList: []entity.Field{
			{Name: "title", Kind: entity.KindScalar, Value: "Hello World"},
			{Name: "body", Kind: entity.KindRichText, Value: entity.RichText{Value: articleBody, Format: "basic_html"}},
		},
	})
	store.Add(&entity.Record{
		Type:     "node",
		EntityID: "2",
		Title:    "Second Article",
		BundleID: "article",
		Language: "nl",
		FieldList: []entity.Field{
			{Name: "title", Kind: entity.KindScalar, Value: "Second Article"},
		},
	})
	return store
}

func fixtureService(t *testing.T) *Service {
	t.Helper()
	store := fixtureStore(t)
	reg := intel.NewRegistry()
	require.NoError(t, plugins.RegisterBuiltin(reg, plugins.Deps{Languages: []string{"en", "nl"}}))
	c := collector.New(reg, collector.Options{})
	return New(store, store, reg, c, nil)
}

func TestSchemaPassthroughs(t *testing.T) {
	s := fixtureService(t)
	ctx := context.Background()

	types, err := s.EntityTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "node", types[0].ID)

	bundles, err := s.Bundles(ctx, "node")
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, "article", bundles[0].ID)

	fields, err := s.Fields(ctx, "node", "article")
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "body", fields[0].Name)
}

func TestPluginsCatalogue(t *testing.T) {
	s := fixtureService(t)

	infos := s.Plugins()
	require.Len(t, infos, 4)

	byID := make(map[string]PluginInfo, len(infos))
	var order []string
	for _, info := range infos {
		byID[info.ID] = info
		order = append(order, info.ID)
	}

	assert.Equal(t, []string{"word_count", "entity_age", "statistics", "translation_status"}, order,
		"catalogue is weight-ordered")
	assert.True(t, byID["word_count"].Available)
	assert.False(t, byID["statistics"].Available, "no redis client wired")
	assert.Equal(t, "Word Count", byID["word_count"].Label)
	assert.Equal(t, []string{"node", "taxonomy_term"}, byID["translation_status"].EntityTypes)
}

func TestListEntities(t *testing.T) {
	s := fixtureService(t)

	summaries, err := s.ListEntities(context.Background(), entity.Query{EntityType: "node"})
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2", summaries[0].ID, "newest first")

	dutch, err := s.ListEntities(context.Background(), entity.Query{
		EntityType: "node",
		Conditions: map[string]string{"langcode": "nl"},
	})
	require.NoError(t, err)
	require.Len(t, dutch, 1)
	assert.Equal(t, "2", dutch[0].ID)
}

func TestEntitySummary(t *testing.T) {
	s := fixtureService(t)

	sum, err := s.EntitySummary(context.Background(), "node", "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", sum.Label)
	assert.Equal(t, "article", sum.Bundle)

	_, err = s.EntitySummary(context.Background(), "node", "404")
	assert.True(t, errors.IsType(err, errors.ErrorTypeEntityNotFound))
}

// The canonical end-to-end path: title-only field snapshot, word_count-only
// plugin run, exact payload shape.
func TestCollectIntel_WordCountScenario(t *testing.T) {
	s := fixtureService(t)

	report, err := s.CollectIntel(context.Background(), "node", "1", []string{"title"}, []string{"word_count"})
	require.NoError(t, err)

	assert.Equal(t, "node", report.Entity.EntityType)
	assert.Equal(t, "1", report.Entity.ID)
	assert.Equal(t, map[string]any{"title": "Hello World"}, report.Fields)

	require.Len(t, report.Intel, 1)
	entry := report.Intel["word_count"]
	assert.Equal(t, "Word Count", entry.PluginLabel)
	assert.Empty(t, entry.Error)
	assert.Equal(t, 12, entry.Data["total_words"])
	assert.Equal(t, 64, entry.Data["total_characters"])
	assert.Equal(t, 1, entry.Data["fields_analyzed"])
	assert.Equal(t, map[string]any{
		"body": map[string]any{"words": 12, "characters": 64},
	}, entry.Data["field_breakdown"])
}

func TestCollectIntel_UnavailablePluginNeverRuns(t *testing.T) {
	s := fixtureService(t)

	report, err := s.CollectIntel(context.Background(), "node", "1", nil, []string{"statistics"})
	require.NoError(t, err)
	assert.Empty(t, report.Intel, "unavailable plugin is excluded even when explicitly named")
}

func TestCollectIntel_AllBuiltins(t *testing.T) {
	s := fixtureService(t)

	report, err := s.CollectIntel(context.Background(), "node", "1", nil, nil)
	require.NoError(t, err)

	assert.Contains(t, report.Intel, "word_count")
	assert.Contains(t, report.Intel, "entity_age")
	assert.Contains(t, report.Intel, "translation_status")
	assert.NotContains(t, report.Intel, "statistics")

	ts := report.Intel["translation_status"]
	assert.Equal(t, true, ts.Data["valid"])
	assert.Equal(t, true, ts.Data["is_default"])
}

func TestCollectIntel_MissingEntity(t *testing.T) {
	s := fixtureService(t)

	_, err := s.CollectIntel(context.Background(), "node", "404", nil, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeEntityNotFound))
}

func TestCollectIntelBatch(t *testing.T) {
	s := fixtureService(t)

	result, err := s.CollectIntelBatch(context.Background(), "node", []string{"1", "2", "404"}, nil, []string{"word_count"})
	require.NoError(t, err)

	require.Len(t, result.Reports, 2)
	assert.Contains(t, result.Reports, "node/1")
	assert.Contains(t, result.Reports, "node/2")
	require.NotNil(t, result.Errors)
	assert.Contains(t, result.Errors["node/404"], "not found")
}
