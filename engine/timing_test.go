package engine

import (
	"testing"

	"go.viam.com/test"
)

func TestAssignDelay(t *testing.T) {
	c := AssignDelay(ClockState{Hours: 10, Minutes: 20}, 2, 1000, 100)
	test.That(t, c.AnimationDelay, test.ShouldEqual, 200)
	test.That(t, c.AnimationTime, test.ShouldEqual, 1200)
	test.That(t, c.Hours, test.ShouldEqual, 10.0)
	test.That(t, c.Minutes, test.ShouldEqual, 20.0)

	t.Run("all clocks finish together", func(t *testing.T) {
		for _, total := range []int{0, 1000, 9000} {
			for _, unit := range []int{0, 50, 300} {
				for x := 0; x <= Width; x++ {
					c := AssignDelay(ClockState{}, x, total, unit)
					test.That(t, c.AnimationDelay, test.ShouldEqual, x*unit)
					test.That(t, c.AnimationTime+c.AnimationDelay, test.ShouldEqual, total+NumDigits*unit)
				}
			}
		}
	})
}

func TestAssignDelaysLeftToRight(t *testing.T) {
	l := AssignDelays(uniform(0, 0), 1000, 100, false)

	test.That(t, l.At(0, 0).AnimationDelay, test.ShouldEqual, 0)
	test.That(t, l.At(1, 0).AnimationDelay, test.ShouldEqual, 100)
	test.That(t, l.At(0, 0).AnimationTime, test.ShouldEqual, 1400)
	test.That(t, l.At(1, 0).AnimationTime, test.ShouldEqual, 1300)
	test.That(t, l.At(7, 2).AnimationDelay, test.ShouldEqual, 700)
	test.That(t, l.At(7, 2).AnimationTime, test.ShouldEqual, 700)

	// rows of the same column start together
	test.That(t, l.At(3, 1).AnimationDelay, test.ShouldEqual, l.At(3, 2).AnimationDelay)
}

func TestAssignDelaysRightToLeft(t *testing.T) {
	l := AssignDelays(uniform(0, 0), 1000, 100, true)

	test.That(t, l.At(7, 0).AnimationDelay, test.ShouldEqual, 100)
	test.That(t, l.At(7, 0).AnimationTime, test.ShouldEqual, 1300)
	test.That(t, l.At(0, 0).AnimationDelay, test.ShouldEqual, 800)
	test.That(t, l.At(0, 0).AnimationTime, test.ShouldEqual, 600)
	test.That(t, l.At(0, 1).AnimationDelay, test.ShouldBeGreaterThan, l.At(7, 1).AnimationDelay)
}

func TestAssignDelaysWithoutStagger(t *testing.T) {
	l := AssignDelays(indexed(), 2500, 0, true)
	MapClocks(l, func(c ClockState, x, y int) ClockState {
		test.That(t, c.AnimationDelay, test.ShouldEqual, 0)
		test.That(t, c.AnimationTime, test.ShouldEqual, 2500)
		test.That(t, c.Hours, test.ShouldEqual, float64(x))
		test.That(t, c.Minutes, test.ShouldEqual, float64(y))
		return c
	})
}

func TestAssignAnimationType(t *testing.T) {
	l := AssignAnimationType(uniform(0, 0), AnimationStart)
	l = AssignAnimationType(l, AnimationEnd)
	MapClocks(l, func(c ClockState, _, _ int) ClockState {
		test.That(t, c.AnimationType, test.ShouldEqual, AnimationEnd)
		return c
	})
}
