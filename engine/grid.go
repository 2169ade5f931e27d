// Package engine computes ClockClock animation timelines.
//
// A Layout is one frame of the display: four digits, each a 3x2 grid of
// analog faces. Every transform in this package takes layouts by value and
// returns a new one, so a resolved timeline can be handed to a renderer and
// replayed or abandoned without copying.
package engine

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	// NumDigits is the number of digit positions on the display.
	NumDigits = 4
	// NumRows is the number of clock rows in a digit.
	NumRows = 3
	// NumColumns is the number of clock columns in a digit.
	NumColumns = 2
	// Width is the number of clock columns across the whole display.
	Width = NumDigits * NumColumns
)

// AnimationType hints the renderer about emphasis. It has no effect on
// computed angles or timing.
type AnimationType int

const (
	AnimationNone AnimationType = iota
	AnimationStart
	AnimationEnd
)

func (t AnimationType) String() string {
	switch t {
	case AnimationNone:
		return ""
	case AnimationStart:
		return "start"
	case AnimationEnd:
		return "end"
	default:
		return fmt.Sprintf("AnimationType(%d)", int(t))
	}
}

// ParseAnimationType is the inverse of AnimationType.String.
func ParseAnimationType(s string) (AnimationType, error) {
	switch s {
	case "":
		return AnimationNone, nil
	case "start":
		return AnimationStart, nil
	case "end":
		return AnimationEnd, nil
	default:
		return AnimationNone, errors.Errorf("unknown animation type %q", s)
	}
}

// ClockState is one analog face. Hours and Minutes are absolute needle
// angles in degrees, 0 pointing up and growing clockwise. They are
// unbounded: a needle that has turned twice reads 720, not 0.
type ClockState struct {
	Hours   float64
	Minutes float64

	// AnimationTime is how long the needles take to reach this state, in ms.
	AnimationTime int
	// AnimationDelay is how long to wait before starting, in ms.
	AnimationDelay int
	AnimationType  AnimationType
}

// Row is a left and right clock.
type Row [NumColumns]ClockState

// Digit is three rows of clocks.
type Digit [NumRows]Row

// Layout is a full display frame.
type Layout [NumDigits]Digit

// At returns the clock at column x (0..7) and row y (0..2).
func (l Layout) At(x, y int) ClockState {
	if x < 0 || x >= Width || y < 0 || y >= NumRows {
		panic(fmt.Sprintf("engine: clock position (%d, %d) out of range", x, y))
	}
	return l[x/NumColumns][y][x%NumColumns]
}

// MapClocks returns a new layout with every clock replaced by f(clock, x, y),
// where x = digit*2 + column and y = row.
func MapClocks(layout Layout, f func(clock ClockState, x, y int) ClockState) Layout {
	var out Layout
	for d := range layout {
		for r := range layout[d] {
			for c := range layout[d][r] {
				out[d][r][c] = f(layout[d][r][c], d*NumColumns+c, r)
			}
		}
	}
	return out
}

// Reset maps every needle back onto [0, 360) and clears timing, giving the
// layout a cycle should start its next accumulation from.
func Reset(layout Layout) Layout {
	return MapClocks(layout, func(clock ClockState, _, _ int) ClockState {
		clock.Hours = CanonicalAngle(clock.Hours)
		clock.Minutes = CanonicalAngle(clock.Minutes)
		clock.AnimationTime = 0
		clock.AnimationDelay = 0
		return clock
	})
}

// SettleTime is how long until every clock in the layout has finished moving.
func SettleTime(layout Layout) time.Duration {
	longest := 0
	MapClocks(layout, func(clock ClockState, _, _ int) ClockState {
		if total := clock.AnimationDelay + clock.AnimationTime; total > longest {
			longest = total
		}
		return clock
	})
	return time.Duration(longest) * time.Millisecond
}
