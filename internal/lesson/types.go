package lesson

// Lesson is an ordered sequence of steps. Order is the only source of "next".
type Lesson struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	Steps       []Step `json:"steps" yaml:"steps"`

	// Completion is shown once the lesson ends. Optional.
	Completion *Completion `json:"completion,omitempty" yaml:"completion,omitempty"`
}

// Completion is the "level completed" screen content and its reward.
type Completion struct {
	Title       string `json:"title" yaml:"title"`
	LevelName   string `json:"levelName" yaml:"level_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Coins       int    `json:"coins,omitempty" yaml:"coins,omitempty"`
}

// Step is read-only lesson content. Which payload fields are meaningful
// depends on Kind.
type Step struct {
	ID    string `json:"id" yaml:"id"`
	Kind  Kind   `json:"type" yaml:"type"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Content
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Quiz, true/false and drag-drop prompt.
	Prompt string `json:"prompt,omitempty" yaml:"prompt,omitempty"`

	// Quiz
	Options       []Option `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectOption string   `json:"correctOption,omitempty" yaml:"correct_option,omitempty"`

	// True/false
	CorrectBool bool `json:"correctAnswer,omitempty" yaml:"correct_answer,omitempty"`

	// Drag-drop
	Categories []Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	Items      []DragItem `json:"items,omitempty" yaml:"items,omitempty"`

	Feedback Feedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`

	// Last marks the final normal step of the lesson.
	Last bool `json:"isLastStep,omitempty" yaml:"last,omitempty"`
}

// Option is one answer of a quiz step.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Category is a drop target of a drag-drop step.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}

// DragItem is a draggable element and the category it belongs to.
type DragItem struct {
	ID              string `json:"id" yaml:"id"`
	Text            string `json:"text" yaml:"text"`
	CorrectCategory string `json:"correctCategory" yaml:"correct_category"`
}

// Feedback holds the text shown after an answer.
type Feedback struct {
	Correct   string `json:"correct,omitempty" yaml:"correct,omitempty"`
	Incorrect string `json:"incorrect,omitempty" yaml:"incorrect,omitempty"`
}

// StepByID returns the step with the given id.
func (l *Lesson) StepByID(id string) (Step, bool) {
	for _, s := range l.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// IndexOf returns the position of the step with the given id in steps, or -1.
func IndexOf(steps []Step, id string) int {
	for i, s := range steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}
