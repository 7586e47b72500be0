package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ContentEntity is a persisted content entity: the row shape backing an
// entity.Store implementation built on ent.
type ContentEntity struct {
	ent.Schema
}

func (ContentEntity) Mixin() []ent.Mixin {
	return []ent.Mixin{
		BaseSchema{},
	}
}

func (ContentEntity) Fields() []ent.Field {
	return []ent.Field{
		field.String("entity_type").
			NotEmpty().
			Comment("Entity type id, e.g. node"),
		field.String("entity_id").
			NotEmpty().
			Comment("Host-assigned identifier within the entity type"),
		field.String("label").
			Default("").
			Comment("Display label"),
		field.String("bundle").
			Default("").
			Comment("Bundle id within the entity type"),
		field.String("langcode").
			Default("").
			Comment("BCP 47 language code"),
		field.JSON("fields", []map[string]any{}).
			Optional().
			Comment("Field values in their snapshot wire shapes"),
	}
}

func (ContentEntity) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("entity_type", "entity_id").Unique(),
		index.Fields("entity_type", "bundle"),
	}
}
