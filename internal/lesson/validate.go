package lesson

import "fmt"

// Validate checks that a lesson can be played: at least one step, unique
// step ids, known kinds and payloads that match their kind.
func Validate(l Lesson) error {
	if len(l.Steps) == 0 {
		return &ContentError{LessonID: l.ID, Reason: "lesson has no steps"}
	}

	seen := make(map[string]bool, len(l.Steps))
	for i, s := range l.Steps {
		if s.ID == "" {
			return &ContentError{LessonID: l.ID, Reason: fmt.Sprintf("step %d has no id", i)}
		}
		if seen[s.ID] {
			return &ContentError{LessonID: l.ID, Reason: fmt.Sprintf("duplicate step id %q", s.ID)}
		}
		seen[s.ID] = true

		if err := validatePayload(s); err != nil {
			return &ContentError{LessonID: l.ID, Reason: fmt.Sprintf("step %q: %s", s.ID, err)}
		}
	}
	return nil
}

func validatePayload(s Step) error {
	switch s.Kind {
	case KindContent:
		return nil
	case KindQuiz:
		if len(s.Options) < 2 {
			return fmt.Errorf("quiz needs at least two options")
		}
		for _, o := range s.Options {
			if o.ID == s.CorrectOption {
				return nil
			}
		}
		return fmt.Errorf("correct option %q is not one of the options", s.CorrectOption)
	case KindTrueFalse:
		if s.Prompt == "" {
			return fmt.Errorf("true/false needs a statement")
		}
		return nil
	case KindDragDrop:
		if len(s.Categories) == 0 || len(s.Items) == 0 {
			return fmt.Errorf("drag-drop needs categories and items")
		}
		cats := make(map[string]bool, len(s.Categories))
		for _, c := range s.Categories {
			cats[c.ID] = true
		}
		for _, it := range s.Items {
			if !cats[it.CorrectCategory] {
				return fmt.Errorf("item %q points at unknown category %q", it.ID, it.CorrectCategory)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %s", s.Kind)
	}
}

// MarkLast sets the Last flag on the final step when no step carries it.
// Content files written before the flag existed rely on this.
func MarkLast(l *Lesson) {
	if len(l.Steps) == 0 {
		return
	}
	for _, s := range l.Steps {
		if s.Last {
			return
		}
	}
	l.Steps[len(l.Steps)-1].Last = true
}
