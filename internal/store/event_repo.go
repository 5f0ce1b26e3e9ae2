package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(AnswerEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "lesson_id", "step_id", "kind", "correct", "review_mode").
		Values(seq, time.Now().UTC(), data.SessionID, data.LessonID, data.StepID, data.Kind, data.Correct, data.ReviewMode).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(LessonEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "lesson_id", "outcome", "review_count").
		Values(seq, time.Now().UTC(), data.SessionID, data.LessonID, data.Outcome, data.ReviewCount).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) LessonStats(ctx context.Context) ([]LessonStats, error) {
	byLesson := make(map[string]*LessonStats)
	get := func(id string) *LessonStats {
		s, ok := byLesson[id]
		if !ok {
			s = &LessonStats{LessonID: id}
			byLesson[id] = s
		}
		return s
	}

	b := entsql.Dialect(dialect.SQLite)

	query, args := b.Select(
		"lesson_id",
		entsql.As(entsql.Count("*"), "answers"),
		entsql.As(entsql.Sum("correct"), "correct_answers"),
	).
		From(entsql.Table(AnswerEventsTable.Name)).
		GroupBy("lesson_id").
		Query()
	err := r.scan(ctx, query, args, func(rows *entsql.Rows) error {
		var id string
		var answers, correct int
		if err := rows.Scan(&id, &answers, &correct); err != nil {
			return err
		}
		s := get(id)
		s.Answers = answers
		s.Correct = correct
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate answer events: %w", err)
	}

	query, args = b.Select(
		"lesson_id",
		entsql.As(entsql.Count("*"), "completed"),
	).
		From(entsql.Table(LessonEventsTable.Name)).
		Where(entsql.EQ("outcome", OutcomeCompleted)).
		GroupBy("lesson_id").
		Query()
	err = r.scan(ctx, query, args, func(rows *entsql.Rows) error {
		var id string
		var completed int
		if err := rows.Scan(&id, &completed); err != nil {
			return err
		}
		get(id).Completed = completed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate lesson events: %w", err)
	}

	stats := make([]LessonStats, 0, len(byLesson))
	for _, s := range byLesson {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].LessonID < stats[j].LessonID })
	return stats, nil
}

func (r *eventRepo) Completions(ctx context.Context) ([]Completion, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("lesson_id", "timestamp").
		From(entsql.Table(LessonEventsTable.Name)).
		Where(entsql.EQ("outcome", OutcomeCompleted)).
		OrderBy("sequence").
		Query()
	var out []Completion
	err := r.scan(ctx, query, args, func(rows *entsql.Rows) error {
		var c Completion
		if err := rows.Scan(&c.LessonID, &c.At); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) scan(ctx context.Context, query string, args []any, fn func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
