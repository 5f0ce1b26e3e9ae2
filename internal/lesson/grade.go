package lesson

// Answer is a learner's response to a step. Only the field matching the
// step's kind is read.
type Answer struct {
	OptionID  string            `json:"optionId,omitempty"`
	Bool      *bool             `json:"bool,omitempty"`
	Placement map[string]string `json:"placement,omitempty"` // item id -> category id
}

// Result is the outcome of grading an answer.
type Result struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback,omitempty"`

	// Misplaced lists drag-drop item ids placed in the wrong category.
	Misplaced []string `json:"misplaced,omitempty"`
}

// Grade checks an answer against a step. Content steps have nothing to get
// wrong and always grade as correct.
func Grade(s Step, a Answer) Result {
	var r Result
	switch s.Kind {
	case KindContent:
		r.Correct = true
	case KindQuiz:
		r.Correct = a.OptionID != "" && a.OptionID == s.CorrectOption
	case KindTrueFalse:
		r.Correct = a.Bool != nil && *a.Bool == s.CorrectBool
	case KindDragDrop:
		for _, it := range s.Items {
			if a.Placement[it.ID] != it.CorrectCategory {
				r.Misplaced = append(r.Misplaced, it.ID)
			}
		}
		r.Correct = len(r.Misplaced) == 0
	}

	if r.Correct {
		r.Feedback = s.Feedback.Correct
	} else {
		r.Feedback = s.Feedback.Incorrect
	}
	return r
}
