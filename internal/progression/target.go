package progression

import (
	"encoding/json"
	"fmt"

	"github.com/finko/finko/internal/lesson"
)

// Mode is the phase of a session. Normal walks the lesson in order; Review
// replays missed questions once the normal pass is done.
type Mode int

const (
	ModeNormal Mode = iota
	ModeReview
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeReview:
		return "review"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*m = ModeNormal
	case "review":
		*m = ModeReview
	default:
		return fmt.Errorf("unknown mode %q", b)
	}
	return nil
}

// TargetKind distinguishes the destinations the engine can produce.
type TargetKind int

const (
	// TargetStep presents a step.
	TargetStep TargetKind = iota
	// TargetCompleted ends the lesson.
	TargetCompleted
	// TargetRetry re-presents the current review step.
	TargetRetry
	// TargetUnavailable tears the session down after a content failure.
	TargetUnavailable
)

var targetKindNames = map[TargetKind]string{
	TargetStep:        "step",
	TargetCompleted:   "completed",
	TargetRetry:       "retry",
	TargetUnavailable: "unavailable",
}

func (k TargetKind) String() string {
	if s, ok := targetKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("target(%d)", int(k))
}

func (k TargetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TargetKind) UnmarshalText(b []byte) error {
	for kind, name := range targetKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown target kind %q", b)
}

// Surface names the presentation a navigation host should show.
type Surface string

const (
	SurfaceLessonContent     Surface = "LessonContent"
	SurfaceLessonQuiz        Surface = "LessonQuiz"
	SurfaceTrueFalseStep     Surface = "TrueFalseStep"
	SurfaceDragDropStep      Surface = "DragDropStep"
	SurfaceLevelCompleted    Surface = "LevelCompleted"
	SurfaceLessonUnavailable Surface = "LessonUnavailable"
)

// stepSurfaces maps every step kind to its surface. A test keeps it in sync
// with lesson.Kinds.
var stepSurfaces = map[lesson.Kind]Surface{
	lesson.KindContent:   SurfaceLessonContent,
	lesson.KindQuiz:      SurfaceLessonQuiz,
	lesson.KindTrueFalse: SurfaceTrueFalseStep,
	lesson.KindDragDrop:  SurfaceDragDropStep,
}

// SurfaceFor returns the surface presenting steps of kind k.
func SurfaceFor(k lesson.Kind) (Surface, error) {
	s, ok := stepSurfaces[k]
	if !ok {
		return "", &lesson.ContentError{Reason: fmt.Sprintf("no surface for step kind %s", k)}
	}
	return s, nil
}

// Target is the single next destination computed by the engine.
type Target struct {
	Kind     TargetKind  `json:"kind"`
	LessonID string      `json:"lessonId"`
	StepID   string      `json:"stepId,omitempty"`
	StepKind lesson.Kind `json:"-"`
	Mode     Mode        `json:"mode"`
	Surface  Surface     `json:"surface"`

	// Reason explains an unavailable target.
	Reason string `json:"reason,omitempty"`
}

// HasStep reports whether the target presents a step. Only those carry a
// step kind on the wire.
func (t Target) HasStep() bool {
	return t.Kind == TargetStep || t.Kind == TargetRetry
}

type targetFields Target

type targetWire struct {
	targetFields
	StepKind *lesson.Kind `json:"stepKind,omitempty"`
}

func (t Target) MarshalJSON() ([]byte, error) {
	w := targetWire{targetFields: targetFields(t)}
	if t.HasStep() {
		k := t.StepKind
		w.StepKind = &k
	}
	return json.Marshal(w)
}

func (t *Target) UnmarshalJSON(b []byte) error {
	var w targetWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Target(w.targetFields)
	if w.StepKind != nil {
		t.StepKind = *w.StepKind
	}
	return nil
}

func stepTarget(lessonID string, s lesson.Step, mode Mode) (Target, error) {
	surface, err := SurfaceFor(s.Kind)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Kind:     TargetStep,
		LessonID: lessonID,
		StepID:   s.ID,
		StepKind: s.Kind,
		Mode:     mode,
		Surface:  surface,
	}, nil
}

func completedTarget(lessonID string) Target {
	return Target{Kind: TargetCompleted, LessonID: lessonID, Surface: SurfaceLevelCompleted}
}

func unavailableTarget(lessonID string, err error) Target {
	t := Target{Kind: TargetUnavailable, LessonID: lessonID, Surface: SurfaceLessonUnavailable}
	if err != nil {
		t.Reason = err.Error()
	}
	return t
}
