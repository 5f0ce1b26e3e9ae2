package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ReviewEntriesColumns holds the columns for the "review_entries" table.
	// One row per step a learner still has to repeat.
	ReviewEntriesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "step_id", Type: field.TypeString},
	}
	ReviewEntriesTable = &schema.Table{
		Name:       "review_entries",
		Columns:    ReviewEntriesColumns,
		PrimaryKey: []*schema.Column{ReviewEntriesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "reviewentry_lesson_id_step_id",
				Unique:  true,
				Columns: []*schema.Column{ReviewEntriesColumns[3], ReviewEntriesColumns[4]},
			},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "step_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "review_mode", Type: field.TypeBool},
	}
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_lesson_id", Columns: []*schema.Column{AnswerEventsColumns[4]}},
		},
	}

	// LessonEventsColumns holds the columns for the "lesson_events" table.
	LessonEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "outcome", Type: field.TypeString},
		{Name: "review_count", Type: field.TypeInt},
	}
	LessonEventsTable = &schema.Table{
		Name:       "lesson_events",
		Columns:    LessonEventsColumns,
		PrimaryKey: []*schema.Column{LessonEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "lessonevent_lesson_id", Columns: []*schema.Column{LessonEventsColumns[4]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ReviewEntriesTable,
		AnswerEventsTable,
		LessonEventsTable,
	}
)
