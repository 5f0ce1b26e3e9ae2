package lesson

import (
	"errors"
	"fmt"
)

// ContentError means lesson data is structurally unusable: no steps,
// duplicate ids, unknown kinds, or a payload that does not match its kind.
type ContentError struct {
	LessonID string
	Reason   string
}

func (e *ContentError) Error() string {
	if e.LessonID == "" {
		return "invalid lesson content: " + e.Reason
	}
	return fmt.Sprintf("invalid lesson %s: %s", e.LessonID, e.Reason)
}

// NotFoundError means a lesson, step or completion record does not exist.
type NotFoundError struct {
	What string // "lesson", "step", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.What, e.ID)
}

// IsContentError reports whether err wraps a *ContentError.
func IsContentError(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
