package lesson

import "math"

// Progress is the learner's position inside a lesson.
type Progress struct {
	Number int // 1-based
	Total  int
}

// Position locates stepID in steps. Unknown ids report the first step so a
// progress bar never shows zero.
func Position(steps []Step, stepID string) Progress {
	total := len(steps)
	if total == 0 {
		return Progress{Number: 1, Total: 1}
	}
	idx := IndexOf(steps, stepID)
	if idx < 0 {
		idx = 0
	}
	return Progress{Number: idx + 1, Total: total}
}

// Percent returns the rounded completion percentage.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Number) / float64(p.Total) * 100))
}
