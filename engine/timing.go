package engine

// AssignDelay staggers one clock. animationTime is when the last clock in the
// stagger order finishes, so a clock that starts earlier gets the extra
// duration: delay+duration is animationTime + NumDigits*delayUnit for every x.
func AssignDelay(clock ClockState, xPos, animationTime, delayUnit int) ClockState {
	delay := xPos * delayUnit
	clock.AnimationDelay = delay
	clock.AnimationTime = animationTime + NumDigits*delayUnit - delay
	return clock
}

// AssignDelays staggers every clock of the layout by column. Left to right,
// column 0 starts first; right to left, column 7 does.
func AssignDelays(layout Layout, animationTime, delayUnit int, rightToLeft bool) Layout {
	return MapClocks(layout, func(clock ClockState, x, _ int) ClockState {
		if rightToLeft {
			x = Width - x
		}
		return AssignDelay(clock, x, animationTime, delayUnit)
	})
}

// AssignAnimationType overwrites the animation type of every clock.
func AssignAnimationType(layout Layout, t AnimationType) Layout {
	return MapClocks(layout, func(clock ClockState, _, _ int) ClockState {
		clock.AnimationType = t
		return clock
	})
}
