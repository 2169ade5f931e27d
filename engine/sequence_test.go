package engine

import (
	"testing"

	"go.viam.com/test"
)

func TestWaitStep(t *testing.T) {
	s := NewWaitStep(uniform(45, 45))
	test.That(t, s.Kind, test.ShouldEqual, KindWait)
	test.That(t, s.AnimationTime, test.ShouldEqual, 3000)

	s = WaitStep(Layout{}, 1200)
	test.That(t, s.Kind, test.ShouldEqual, KindWait)
	test.That(t, s.AnimationTime, test.ShouldEqual, 1200)
}

func TestResolveWaitStepHoldsAngles(t *testing.T) {
	current := AssignDelays(indexed(), 1000, 100, false)
	// the target of a wait step is ignored
	out := ResolveStep(WaitStep(uniform(300, 300), 2000), current)

	MapClocks(out, func(c ClockState, x, y int) ClockState {
		test.That(t, c.Hours, test.ShouldEqual, current.At(x, y).Hours)
		test.That(t, c.Minutes, test.ShouldEqual, current.At(x, y).Minutes)
		test.That(t, c.AnimationDelay, test.ShouldEqual, 0)
		test.That(t, c.AnimationTime, test.ShouldEqual, 2000)
		return c
	})
}

func TestResolveShapeStep(t *testing.T) {
	seq := Sequence{
		Kind:           KindShape,
		Target:         uniform(180, 180),
		AnimationTime:  1000,
		Delay:          100,
		ReverseMinutes: true,
		AnimationType:  AnimationStart,
	}
	out := ResolveStep(seq, uniform(0, 0))

	first := out.At(0, 0)
	test.That(t, first.Hours, test.ShouldEqual, 180.0)
	test.That(t, first.Minutes, test.ShouldEqual, -180.0)
	test.That(t, first.AnimationType, test.ShouldEqual, AnimationStart)
	test.That(t, first.AnimationDelay, test.ShouldEqual, 0)
	test.That(t, first.AnimationTime, test.ShouldEqual, 1400)
	test.That(t, out.At(1, 0).AnimationDelay, test.ShouldEqual, 100)

	seq.RightToLeft = true
	out = ResolveStep(seq, uniform(0, 0))
	test.That(t, out.At(0, 0).AnimationDelay, test.ShouldEqual, 800)
	test.That(t, out.At(7, 0).AnimationDelay, test.ShouldEqual, 100)
}

func TestResolveStepWithoutTypeKeepsTargetType(t *testing.T) {
	target := AssignAnimationType(uniform(90, 90), AnimationEnd)
	out := ResolveStep(Sequence{Kind: KindTime, Target: target, AnimationTime: 10}, Layout{})
	test.That(t, out.At(5, 2).AnimationType, test.ShouldEqual, AnimationEnd)
}

func TestResolveStepUnknownKind(t *testing.T) {
	test.That(t, func() { ResolveStep(Sequence{Kind: Kind(9)}, Layout{}) }, test.ShouldPanic)
}

func TestResolveSequenceChainsSteps(t *testing.T) {
	initial := uniform(0, 0)
	steps := []Sequence{
		{Kind: KindShape, Target: uniform(90, 270), AnimationTime: 1000, Delay: 100},
		WaitStep(Layout{}, 500),
		{Kind: KindShape, Target: uniform(180, 0), AnimationTime: 1000, ReverseMinutes: true},
		{Kind: KindTime, Target: indexed(), AnimationTime: 2000, AnimationType: AnimationEnd},
	}

	out := ResolveSequence(steps, initial)
	test.That(t, out, test.ShouldHaveLength, len(steps))

	prev := initial
	for i, step := range steps {
		test.That(t, out[i], test.ShouldResemble, ResolveStep(step, prev))
		prev = out[i]
	}

	// the wait step held the angles of the shape before it
	test.That(t, out[1].At(2, 2).Hours, test.ShouldEqual, out[0].At(2, 2).Hours)
	test.That(t, out[1].At(2, 2).AnimationTime, test.ShouldEqual, 500)
	// the cycle never turned a needle backwards on the hour hand
	test.That(t, out[3].At(6, 1).Hours, test.ShouldBeGreaterThan, out[0].At(6, 1).Hours)
}

func TestResolveSequenceEmpty(t *testing.T) {
	test.That(t, ResolveSequence(nil, Layout{}), test.ShouldBeEmpty)
}

func TestKindString(t *testing.T) {
	test.That(t, KindShape.String(), test.ShouldEqual, "shape")
	test.That(t, KindWait.String(), test.ShouldEqual, "wait")
	test.That(t, KindTime.String(), test.ShouldEqual, "time")
}
