package engine

import (
	"github.com/pkg/errors"
)

const (
	// DefaultAnimationTime is the time a shape or time step takes, in ms.
	DefaultAnimationTime = 10000
	// DefaultDelayUnit is the per-column stagger of a staggered step, in ms.
	DefaultDelayUnit = 300
	// DefaultShapeCount is the number of decorative shapes per cycle.
	DefaultShapeCount = 2
)

// Family is a group of decorative layouts the planner samples from.
type Family int

const (
	// FamilyLinear holds oblique, wind and deactivated shapes. Each draw may
	// pick a different one.
	FamilyLinear Family = iota
	// FamilySymmetrical holds square and mirrored shapes. A cycle repeats a
	// single draw.
	FamilySymmetrical
)

func (f Family) String() string {
	switch f {
	case FamilyLinear:
		return "linear"
	case FamilySymmetrical:
		return "symmetrical"
	default:
		return "unknown"
	}
}

// Rand is the source of randomness of a Planner. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// ShapeSource supplies the candidate layouts of a family.
type ShapeSource interface {
	Shapes(f Family) []Layout
}

// Options are the timing knobs of an animation cycle, all in ms.
type Options struct {
	AnimationTime int
	DelayUnit     int
	WaitTime      int
	ShapeCount    int
}

// DefaultOptions returns the timing used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		AnimationTime: DefaultAnimationTime,
		DelayUnit:     DefaultDelayUnit,
		WaitTime:      DefaultWaitTime,
		ShapeCount:    DefaultShapeCount,
	}
}

// Validate checks that every clock of a staggered step gets a non-negative
// duration.
func (o Options) Validate() error {
	if o.AnimationTime < 0 || o.DelayUnit < 0 || o.WaitTime < 0 {
		return errors.New("timing options must not be negative")
	}
	if o.ShapeCount < 1 {
		return errors.Errorf("shape count must be at least 1, got %d", o.ShapeCount)
	}
	if o.AnimationTime < NumDigits*o.DelayUnit {
		return errors.Errorf("animation time %dms is shorter than a full stagger of %dms",
			o.AnimationTime, NumDigits*o.DelayUnit)
	}
	return nil
}

// Planner assembles animation cycles. It is not safe for concurrent use
// unless its Rand is.
type Planner struct {
	opts   Options
	shapes ShapeSource
	rng    Rand
}

// NewPlanner returns a planner drawing shapes from shapes using rng.
func NewPlanner(opts Options, shapes ShapeSource, rng Rand) (*Planner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	for _, f := range []Family{FamilyLinear, FamilySymmetrical} {
		if len(shapes.Shapes(f)) == 0 {
			return nil, errors.Errorf("no %v shapes to draw from", f)
		}
	}
	return &Planner{opts: opts, shapes: shapes, rng: rng}, nil
}

// Options returns the timing the planner was built with.
func (p *Planner) Options() Options {
	return p.opts
}

func (p *Planner) coin() bool {
	return p.rng.Intn(2) == 1
}

func (p *Planner) draw(f Family) Layout {
	candidates := p.shapes.Shapes(f)
	return candidates[p.rng.Intn(len(candidates))]
}

// drawShapes picks the decorative layouts of a cycle: one symmetrical shape
// repeated, or independent linear ones.
func (p *Planner) drawShapes(same bool) []Layout {
	out := make([]Layout, p.opts.ShapeCount)
	if same {
		shape := p.draw(FamilySymmetrical)
		for i := range out {
			out[i] = shape
		}
		return out
	}
	for i := range out {
		out[i] = p.draw(FamilyLinear)
	}
	return out
}

// Plan builds the steps of one cycle ending on digits.
func (p *Planner) Plan(digits Layout) []Sequence {
	reverse := p.coin()

	var steps []Sequence
	for i, shape := range p.drawShapes(reverse) {
		// only the first shape may be followed by a pause
		hasWait := i == 0 && p.coin()

		animationType := AnimationNone
		switch {
		case i == 0 || (len(steps) > 0 && steps[len(steps)-1].Kind == KindWait):
			animationType = AnimationStart
		case hasWait:
			animationType = AnimationEnd
		}

		delay := 0
		if i == 0 && p.coin() {
			delay = p.opts.DelayUnit
		}

		steps = append(steps, Sequence{
			Kind:           KindShape,
			Target:         shape,
			AnimationTime:  p.opts.AnimationTime,
			Delay:          delay,
			ReverseMinutes: reverse,
			AnimationType:  animationType,
		})
		if hasWait {
			steps = append(steps, WaitStep(shape, p.opts.WaitTime))
		}
	}

	return append(steps, Sequence{
		Kind:           KindTime,
		Target:         digits,
		AnimationTime:  p.opts.AnimationTime,
		ReverseMinutes: reverse,
		AnimationType:  AnimationEnd,
	})
}

// Run plans a cycle ending on digits and resolves it from prev, the layout
// currently on display.
func (p *Planner) Run(prev, digits Layout) []Layout {
	return ResolveSequence(p.Plan(digits), prev)
}
