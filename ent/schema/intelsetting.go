package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// IntelSetting is one persisted pipeline setting, the durable backend for
// config.Store keys such as the enabled-plugin allow-list.
type IntelSetting struct {
	ent.Schema
}

func (IntelSetting) Mixin() []ent.Mixin {
	return []ent.Mixin{
		BaseSchema{},
	}
}

func (IntelSetting) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			NotEmpty().
			Comment("Setting key, e.g. plugins.enabled"),
		field.JSON("value", map[string]any{}).
			Comment("Setting value as a JSON document"),
	}
}

func (IntelSetting) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("key").Unique(),
	}
}
