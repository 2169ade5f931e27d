// Package render draws clock layouts on a terminal.
package render

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"

	"clockclock24/engine"
)

const (
	// CellWidth and CellHeight are the screen cells taken by one clock face.
	CellWidth  = 7
	CellHeight = 5

	radiusX = 3
	radiusY = 2
)

var (
	faceStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hoursStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	minutesStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Terminal shows layouts on a tcell screen, moving each needle from where it
// was to its new angle over the clock's delay and animation time.
type Terminal struct {
	screen tcell.Screen
	clk    clock.Clock

	mu      sync.Mutex
	from    engine.Layout
	to      engine.Layout
	started time.Time
	caption string
}

// NewTerminal returns a renderer whose needles start at initial.
func NewTerminal(screen tcell.Screen, clk clock.Clock, initial engine.Layout) *Terminal {
	return &Terminal{
		screen:  screen,
		clk:     clk,
		from:    engine.Reset(initial),
		to:      engine.Reset(initial),
		started: clk.Now(),
	}
}

// Show starts animating towards layout from wherever the needles are now.
func (t *Terminal) Show(ctx context.Context, layout engine.Layout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	now := t.clk.Now()
	t.from = t.frameLocked(now)
	t.to = layout
	t.started = now
	t.mu.Unlock()

	t.Draw()
	return nil
}

// Frame is the layout as drawn at now.
func (t *Terminal) Frame(now time.Time) engine.Layout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frameLocked(now)
}

func (t *Terminal) frameLocked(now time.Time) engine.Layout {
	elapsed := float64(now.Sub(t.started).Milliseconds())
	return engine.MapClocks(t.to, func(to engine.ClockState, x, y int) engine.ClockState {
		from := t.from.At(x, y)
		p := progress(to, elapsed)
		return engine.ClockState{
			Hours:   from.Hours + (to.Hours-from.Hours)*p,
			Minutes: from.Minutes + (to.Minutes-from.Minutes)*p,
		}
	})
}

// progress is how far along its animation a clock is, eased by its type.
func progress(c engine.ClockState, elapsed float64) float64 {
	elapsed -= float64(c.AnimationDelay)
	if elapsed < 0 {
		return 0
	}
	if c.AnimationTime <= 0 || elapsed >= float64(c.AnimationTime) {
		return 1
	}
	p := elapsed / float64(c.AnimationTime)
	switch c.AnimationType {
	case engine.AnimationStart:
		return p * p
	case engine.AnimationEnd:
		return 1 - (1-p)*(1-p)
	default:
		return p
	}
}

// Settled reports whether every needle has reached its target.
func (t *Terminal) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clk.Now().Sub(t.started) >= engine.SettleTime(t.to)
}

// SetCaption sets a line of text drawn under the clocks.
func (t *Terminal) SetCaption(caption string) {
	t.mu.Lock()
	t.caption = caption
	t.mu.Unlock()
}

// Draw renders the current frame.
func (t *Terminal) Draw() {
	frame := t.Frame(t.clk.Now())
	t.mu.Lock()
	caption := t.caption
	t.mu.Unlock()

	t.screen.Clear()
	engine.MapClocks(frame, func(c engine.ClockState, x, y int) engine.ClockState {
		cx := x*CellWidth + radiusX
		cy := y*CellHeight + radiusY
		t.drawNeedle(cx, cy, c.Minutes, minutesStyle)
		t.drawNeedle(cx, cy, c.Hours, hoursStyle)
		t.screen.SetContent(cx, cy, '•', nil, faceStyle)
		return c
	})
	for i, r := range []rune(caption) {
		t.screen.SetContent(i, engine.NumRows*CellHeight, r, nil, faceStyle)
	}
	t.screen.Show()
}

func (t *Terminal) drawNeedle(cx, cy int, angle float64, style tcell.Style) {
	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	r := needleRune(angle)
	for k := 1; k <= radiusY; k++ {
		f := float64(k) / radiusY
		px := cx + int(math.Round(dx*radiusX*f))
		py := cy + int(math.Round(dy*radiusY*f))
		t.screen.SetContent(px, py, r, nil, style)
	}
}

// needleRune picks the line character closest to angle.
func needleRune(angle float64) rune {
	switch int(math.Round(engine.CanonicalAngle(angle)/45)) % 4 {
	case 0:
		return '│'
	case 1:
		return '╱'
	case 2:
		return '─'
	default:
		return '╲'
	}
}

// Loop redraws every frame interval until ctx is done.
func (t *Terminal) Loop(ctx context.Context, frame time.Duration) {
	ticker := t.clk.Ticker(frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Draw()
		}
	}
}
