// Package schema holds the ent schema definitions for hosts persisting
// content entities and intel settings in a relational database. Generated
// code lives under ent/ in the embedding application, not in this module.
package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/mixin"
	"github.com/google/uuid"
)

// BaseSchema is the shared mixin: uuid v7 primary key and timestamps.
type BaseSchema struct {
	mixin.Schema
}

func (BaseSchema) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(func() uuid.UUID {
				v7, err := uuid.NewV7()
				if err != nil {
					panic("failed to create UUID v7: " + err.Error())
				}
				return v7
			}).
			SchemaType(map[string]string{
				dialect.Postgres: "uuid",
				dialect.MySQL:    "char(36)",
				dialect.SQLite:   "text",
			}).
			Immutable().
			Comment("Primary identifier"),
		field.Time("created_at").
			Default(time.Now).
			Immutable().
			Comment("Creation time"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last update time"),
	}
}
