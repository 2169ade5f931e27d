package models

import (
	"time"

	"github.com/pkg/errors"

	"clockclock24/engine"
)

const (
	setLayoutKey = "set_layout"
	settleKey    = "settle_ms"
)

// Animation is one layout of a timeline and how long it takes to settle.
type Animation struct {
	Layout   engine.Layout
	Duration time.Duration
}

// NewAnimation wraps a resolved layout.
func NewAnimation(layout engine.Layout) Animation {
	return Animation{Layout: layout, Duration: engine.SettleTime(layout)}
}

// Command is the needle component command that starts this animation.
func (a Animation) Command() map[string]any {
	return EncodeLayout(a.Layout)
}

// AnimationList plays a resolved timeline once, in order.
type AnimationList struct {
	Animations []Animation
	index      int
}

// NewAnimationList wraps a timeline from engine.ResolveSequence.
func NewAnimationList(timeline []engine.Layout) *AnimationList {
	list := &AnimationList{Animations: make([]Animation, 0, len(timeline))}
	for _, l := range timeline {
		list.Animations = append(list.Animations, NewAnimation(l))
	}
	return list
}

// NextAnimation returns the next animation, or false once the list is done.
func (a *AnimationList) NextAnimation() (Animation, bool) {
	if a.index >= len(a.Animations) {
		return Animation{}, false
	}
	animation := a.Animations[a.index]
	a.index++
	return animation, true
}

// Duration is the time the whole list takes to play.
func (a *AnimationList) Duration() time.Duration {
	var total time.Duration
	for _, animation := range a.Animations {
		total += animation.Duration
	}
	return total
}

// EncodeLayout turns a layout into a needle component command:
//
//	{"set_layout": [{"x": 0, "y": 0, "hours": 90, "minutes": 180,
//	  "animation_time_ms": 1000, "animation_delay_ms": 0, "animation_type": "start"}, ...],
//	 "settle_ms": 1400}
func EncodeLayout(layout engine.Layout) map[string]any {
	clocks := make([]any, 0, engine.Width*engine.NumRows)
	engine.MapClocks(layout, func(c engine.ClockState, x, y int) engine.ClockState {
		clocks = append(clocks, map[string]any{
			"x":                  x,
			"y":                  y,
			"hours":              c.Hours,
			"minutes":            c.Minutes,
			"animation_time_ms":  c.AnimationTime,
			"animation_delay_ms": c.AnimationDelay,
			"animation_type":     c.AnimationType.String(),
		})
		return c
	})
	return map[string]any{
		setLayoutKey: clocks,
		settleKey:    engine.SettleTime(layout).Milliseconds(),
	}
}

// DecodeLayout is the inverse of EncodeLayout. Numbers may arrive as any
// numeric type since commands cross the wire as protobuf structs.
func DecodeLayout(cmd map[string]any) (engine.Layout, error) {
	var layout engine.Layout
	raw, ok := cmd[setLayoutKey].([]any)
	if !ok {
		return layout, errors.Errorf("expected %q to be a list of clocks", setLayoutKey)
	}
	if len(raw) != engine.Width*engine.NumRows {
		return layout, errors.Errorf("expected %d clocks, got %d", engine.Width*engine.NumRows, len(raw))
	}

	var seen [engine.Width][engine.NumRows]bool
	for i, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			return layout, errors.Errorf("clock %d is not an object", i)
		}
		x, err := intField(fields, "x")
		if err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		y, err := intField(fields, "y")
		if err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		if x < 0 || x >= engine.Width || y < 0 || y >= engine.NumRows {
			return layout, errors.Errorf("clock %d: position (%d, %d) out of range", i, x, y)
		}
		if seen[x][y] {
			return layout, errors.Errorf("clock %d: position (%d, %d) given twice", i, x, y)
		}
		seen[x][y] = true

		var c engine.ClockState
		if c.Hours, err = numberField(fields, "hours"); err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		if c.Minutes, err = numberField(fields, "minutes"); err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		if c.AnimationTime, err = intField(fields, "animation_time_ms"); err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		if c.AnimationDelay, err = intField(fields, "animation_delay_ms"); err != nil {
			return layout, errors.Wrapf(err, "clock %d", i)
		}
		if t, ok := fields["animation_type"].(string); ok {
			if c.AnimationType, err = engine.ParseAnimationType(t); err != nil {
				return layout, errors.Wrapf(err, "clock %d", i)
			}
		}
		layout[x/engine.NumColumns][y][x%engine.NumColumns] = c
	}
	return layout, nil
}

func numberField(fields map[string]any, key string) (float64, error) {
	switch v := fields[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case nil:
		return 0, errors.Errorf("missing %q", key)
	default:
		return 0, errors.Errorf("%q is a %T, not a number", key, v)
	}
}

func intField(fields map[string]any, key string) (int, error) {
	v, err := numberField(fields, key)
	if err != nil {
		return 0, err
	}
	if v != float64(int(v)) {
		return 0, errors.Errorf("%q must be a whole number, got %v", key, v)
	}
	return int(v), nil
}
