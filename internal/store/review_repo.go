package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type reviewRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *reviewRepo) Enqueue(ctx context.Context, lessonID, stepID string) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ReviewEntriesTable.Name).
		Columns("sequence", "timestamp", "lesson_id", "step_id").
		Values(seq, time.Now().UTC(), lessonID, stepID).
		OnConflict(
			entsql.ConflictColumns("lesson_id", "step_id"),
			entsql.DoNothing(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("enqueue review %s/%s: %w", lessonID, stepID, err)
	}
	return nil
}

func (r *reviewRepo) Remove(ctx context.Context, lessonID, stepID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(ReviewEntriesTable.Name).
		Where(entsql.And(
			entsql.EQ("lesson_id", lessonID),
			entsql.EQ("step_id", stepID),
		)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("remove review %s/%s: %w", lessonID, stepID, err)
	}
	return nil
}

func (r *reviewRepo) Pending(ctx context.Context, lessonID string) ([]string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("step_id").
		From(entsql.Table(ReviewEntriesTable.Name)).
		Where(entsql.EQ("lesson_id", lessonID)).
		OrderBy("sequence").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query pending reviews: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending review: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending reviews: %w", err)
	}
	return ids, nil
}

func (r *reviewRepo) Clear(ctx context.Context, lessonID string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(ReviewEntriesTable.Name).
		Where(entsql.EQ("lesson_id", lessonID)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear reviews for %s: %w", lessonID, err)
	}
	return nil
}
