package engine

// RotateClock turns the needles of current until they point where target's
// do. Angles continue from current instead of snapping, and every field
// other than the angles comes from target.
func RotateClock(target, current ClockState, reverseMinutes bool) ClockState {
	out := target
	out.Hours = RotateForward(current.Hours, target.Hours)
	if reverseMinutes {
		out.Minutes = RotateReverse(current.Minutes, target.Minutes)
	} else {
		out.Minutes = RotateForward(current.Minutes, target.Minutes)
	}
	return out
}

// RotateLayout applies RotateClock to every position of target against the
// clock at the same (x, y) in current.
func RotateLayout(target, current Layout, reverseMinutes bool) Layout {
	return MapClocks(target, func(clock ClockState, x, y int) ClockState {
		return RotateClock(clock, current.At(x, y), reverseMinutes)
	})
}
