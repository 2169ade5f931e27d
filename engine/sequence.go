package engine

import "fmt"

// DefaultWaitTime is the pause of a wait step, in ms.
const DefaultWaitTime = 3000

// Kind is the type of a timeline step.
type Kind int

const (
	// KindShape rotates to a decorative layout.
	KindShape Kind = iota
	// KindWait holds the current angles for a while.
	KindWait
	// KindTime rotates to the digits of the displayed time.
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindWait:
		return "wait"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sequence is one step of an animation cycle.
type Sequence struct {
	Kind Kind
	// Target is ignored for wait steps.
	Target        Layout
	AnimationTime int
	// Delay is the per-column stagger unit in ms.
	Delay int
	// RightToLeft makes the rightmost column start first.
	RightToLeft    bool
	ReverseMinutes bool
	AnimationType  AnimationType
}

// WaitStep returns a step that holds the display for ms milliseconds.
func WaitStep(layout Layout, ms int) Sequence {
	return Sequence{Kind: KindWait, Target: layout, AnimationTime: ms}
}

// NewWaitStep is WaitStep with DefaultWaitTime.
func NewWaitStep(layout Layout) Sequence {
	return WaitStep(layout, DefaultWaitTime)
}

// ResolveStep computes the layout a step leads to from current.
func ResolveStep(seq Sequence, current Layout) Layout {
	switch seq.Kind {
	case KindWait:
		return AssignDelays(current, seq.AnimationTime, 0, false)
	case KindShape, KindTime:
		next := RotateLayout(seq.Target, current, seq.ReverseMinutes)
		if seq.AnimationType != AnimationNone {
			next = AssignAnimationType(next, seq.AnimationType)
		}
		return AssignDelays(next, seq.AnimationTime, seq.Delay, seq.RightToLeft)
	default:
		panic(fmt.Sprintf("engine: unknown sequence kind %v", seq.Kind))
	}
}

// ResolveSequence folds steps over initial. Each step is resolved against
// the layout the previous step produced, so angles keep accumulating over
// the whole cycle. The result has one layout per step.
func ResolveSequence(steps []Sequence, initial Layout) []Layout {
	out := make([]Layout, 0, len(steps))
	current := initial
	for _, step := range steps {
		current = ResolveStep(step, current)
		out = append(out, current)
	}
	return out
}
