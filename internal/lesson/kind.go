package lesson

import "fmt"

// Kind is the closed set of step kinds a lesson can contain.
type Kind int

const (
	KindContent Kind = iota
	KindQuiz
	KindTrueFalse
	KindDragDrop

	kindCount
)

var kindNames = [kindCount]string{
	KindContent:   "content",
	KindQuiz:      "quiz",
	KindTrueFalse: "true-false",
	KindDragDrop:  "drag-drop",
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Reviewable reports whether wrong answers on this kind go to the review queue.
func (k Kind) Reviewable() bool {
	return k == KindQuiz || k == KindTrueFalse
}

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, &ContentError{Reason: fmt.Sprintf("unknown step kind %q", s)}
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid step kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
