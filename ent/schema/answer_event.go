package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one graded answer within a lesson session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.String("lesson_id").
			NotEmpty(),
		field.String("step_id").
			NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("content, quiz, true-false or drag-drop"),
		field.Bool("correct"),
		field.Bool("review_mode").
			Comment("Answered while repeating missed steps"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("lesson_id"),
	}
}
