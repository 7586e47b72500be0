package entity

import (
	"context"
	"testing"
	"time"
)

func seededStore() *MemoryStore {
	s := NewMemoryStore()
	s.AddType(TypeInfo{ID: "node", Label: "Content", BundleKind: "content_type"},
		BundleInfo{ID: "article", Label: "Article"},
		BundleInfo{ID: "page", Label: "Basic page"})
	s.AddFields("node", "article",
		FieldInfo{Name: "title", Label: "Title", Type: "string", Required: true, Cardinality: 1},
		FieldInfo{Name: "body", Label: "Body", Type: "text_with_summary", Cardinality: 1})

	for i, bundle := range []string{"article", "article", "page"} {
		s.Add(&Record{
			Type:      "node",
			EntityID:  []string{"1", "2", "10"}[i],
			Title:     []string{"First", "Second", "Third"}[i],
			BundleID:  bundle,
			Language:  "en",
			CreatedAt: time.Unix(1700000000, 0),
		})
	}
	return s
}

func TestMemoryStore_LoadMissingReturnsNil(t *testing.T) {
	s := seededStore()

	e, err := s.Load(context.Background(), "node", "404")
	if err != nil {
		t.Fatalf("Load must not error on absence: %v", err)
	}
	if e != nil {
		t.Error("missing entity should be nil")
	}
}

func TestMemoryStore_AddAssignsUUID(t *testing.T) {
	s := seededStore()

	e, err := s.Load(context.Background(), "node", "1")
	if err != nil {
		t.Fatal(err)
	}
	if e.UUID() == "" {
		t.Error("Add should assign a uuid")
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := seededStore()

	got, err := s.List(context.Background(), Query{EntityType: "node"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(got))
	}
	// Numeric ids: 10 > 2 > 1.
	if got[0].ID != "10" || got[1].ID != "2" || got[2].ID != "1" {
		t.Errorf("wrong order: %v", []string{got[0].ID, got[1].ID, got[2].ID})
	}
}

func TestMemoryStore_ListBundleAndConditions(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	articles, err := s.List(ctx, Query{EntityType: "node", Bundle: "article"})
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	byLabel, err := s.List(ctx, Query{EntityType: "node", Conditions: map[string]string{"label": "sec"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(byLabel) != 1 || byLabel[0].ID != "2" {
		t.Errorf("label condition failed: %v", byLabel)
	}

	none, err := s.List(ctx, Query{EntityType: "node", Conditions: map[string]string{"unsupported": "x"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Error("unsupported condition should match nothing")
	}
}

func TestMemoryStore_ListLimitOffset(t *testing.T) {
	s := seededStore()

	page, err := s.List(context.Background(), Query{EntityType: "node", Limit: 1, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].ID != "2" {
		t.Errorf("limit/offset failed: %v", page)
	}

	empty, err := s.List(context.Background(), Query{EntityType: "node", Offset: 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Error("offset beyond range should return empty")
	}
}

func TestMemoryStore_SchemaSorted(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	bundles, err := s.Bundles(ctx, "node")
	if err != nil {
		t.Fatal(err)
	}
	if bundles[0].ID != "article" || bundles[1].ID != "page" {
		t.Errorf("bundles not sorted: %v", bundles)
	}

	fields, err := s.Fields(ctx, "node", "article")
	if err != nil {
		t.Fatal(err)
	}
	if fields[0].Name != "body" || fields[1].Name != "title" {
		t.Errorf("fields not sorted: %v", fields)
	}
}

func TestMemoryStore_LoadMany(t *testing.T) {
	s := seededStore()

	got, err := s.LoadMany(context.Background(), "node", []string{"1", "404", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("missing ids are skipped, expected 2 entities, got %d", len(got))
	}
}
