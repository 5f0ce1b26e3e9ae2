package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ReviewEntry is a step the learner missed and still has to repeat.
// Sequence order is the order the steps come back in.
type ReviewEntry struct {
	ent.Schema
}

func (ReviewEntry) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ReviewEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("lesson_id").NotEmpty(),
		field.String("step_id").NotEmpty(),
	}
}

func (ReviewEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lesson_id", "step_id").Unique(),
	}
}
