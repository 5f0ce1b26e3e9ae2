package player

import (
	"github.com/finko/finko/internal/lesson"
	"github.com/finko/finko/internal/progression"
)

// startedMsg is sent when the session has been opened.
type startedMsg struct {
	Session *progression.Session
	Target  progression.Target
	Lesson  lesson.Lesson
	Err     error
}

// gradedMsg is sent when an answer has been graded and recorded.
type gradedMsg struct {
	Result lesson.Result
	Err    error
}

// advancedMsg carries the target computed after the feedback pause.
type advancedMsg struct {
	Target progression.Target
	Err    error
}
