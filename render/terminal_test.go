package render

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"go.viam.com/test"

	"clockclock24/engine"
)

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen, *clock.Mock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	test.That(t, screen.Init(), test.ShouldBeNil)
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	mock := clock.NewMock()
	return NewTerminal(screen, mock, engine.Layout{}), screen, mock
}

func single(state engine.ClockState) engine.Layout {
	var l engine.Layout
	l[0][0][0] = state
	return l
}

func TestDrawNeedles(t *testing.T) {
	term, screen, _ := newTestTerminal(t)

	err := term.Show(context.Background(), single(engine.ClockState{Hours: 0, Minutes: 90}))
	test.That(t, err, test.ShouldBeNil)

	mainc, _, _, _ := screen.GetContent(3, 2)
	test.That(t, mainc, test.ShouldEqual, '•')

	// hours point up
	for _, y := range []int{0, 1} {
		mainc, _, style, _ := screen.GetContent(3, y)
		test.That(t, mainc, test.ShouldEqual, '│')
		test.That(t, style, test.ShouldResemble, hoursStyle)
	}
	// minutes point right
	for _, x := range []int{5, 6} {
		mainc, _, style, _ := screen.GetContent(x, 2)
		test.That(t, mainc, test.ShouldEqual, '─')
		test.That(t, style, test.ShouldResemble, minutesStyle)
	}

	// second row of clocks, first column of the second digit
	mainc, _, _, _ = screen.GetContent(2*CellWidth+radiusX, CellHeight+radiusY)
	test.That(t, mainc, test.ShouldEqual, '•')
}

func TestCaption(t *testing.T) {
	term, screen, _ := newTestTerminal(t)
	term.SetCaption("hi")
	term.Draw()

	for x, want := range []rune("hi") {
		mainc, _, _, _ := screen.GetContent(x, engine.NumRows*CellHeight)
		test.That(t, mainc, test.ShouldEqual, want)
	}
}

func TestInterpolation(t *testing.T) {
	term, _, mock := newTestTerminal(t)

	target := single(engine.ClockState{Hours: 90, Minutes: 360, AnimationTime: 1000, AnimationDelay: 200})
	test.That(t, term.Show(context.Background(), target), test.ShouldBeNil)
	test.That(t, term.Settled(), test.ShouldBeFalse)

	mock.Add(100 * time.Millisecond)
	test.That(t, term.Frame(mock.Now()).At(0, 0).Hours, test.ShouldEqual, 0.0)

	mock.Add(600 * time.Millisecond)
	frame := term.Frame(mock.Now()).At(0, 0)
	test.That(t, frame.Hours, test.ShouldEqual, 45.0)
	test.That(t, frame.Minutes, test.ShouldEqual, 180.0)

	mock.Add(500 * time.Millisecond)
	test.That(t, term.Frame(mock.Now()).At(0, 0).Hours, test.ShouldEqual, 90.0)
	test.That(t, term.Settled(), test.ShouldBeTrue)
}

func TestShowMidAnimationStartsFromFrame(t *testing.T) {
	term, _, mock := newTestTerminal(t)

	test.That(t, term.Show(context.Background(), single(engine.ClockState{Hours: 100, AnimationTime: 1000})), test.ShouldBeNil)
	mock.Add(500 * time.Millisecond)
	test.That(t, term.Show(context.Background(), single(engine.ClockState{Hours: 250, AnimationTime: 1000})), test.ShouldBeNil)

	test.That(t, term.Frame(mock.Now()).At(0, 0).Hours, test.ShouldEqual, 50.0)
	mock.Add(500 * time.Millisecond)
	test.That(t, term.Frame(mock.Now()).At(0, 0).Hours, test.ShouldEqual, 150.0)
}

func TestResetSnaps(t *testing.T) {
	term, _, mock := newTestTerminal(t)

	moved := single(engine.ClockState{Hours: 765, AnimationTime: 1000})
	test.That(t, term.Show(context.Background(), moved), test.ShouldBeNil)
	mock.Add(time.Second)
	test.That(t, term.Show(context.Background(), engine.Reset(moved)), test.ShouldBeNil)
	test.That(t, term.Frame(mock.Now()).At(0, 0).Hours, test.ShouldEqual, 45.0)
	test.That(t, term.Settled(), test.ShouldBeTrue)
}

func TestProgressEasing(t *testing.T) {
	for _, tc := range []struct {
		typ  engine.AnimationType
		want float64
	}{
		{engine.AnimationNone, 0.5},
		{engine.AnimationStart, 0.25},
		{engine.AnimationEnd, 0.75},
	} {
		c := engine.ClockState{AnimationTime: 1000, AnimationType: tc.typ}
		test.That(t, progress(c, 500), test.ShouldEqual, tc.want)
	}
	test.That(t, progress(engine.ClockState{}, 0), test.ShouldEqual, 1.0)
}

func TestNeedleRune(t *testing.T) {
	for angle, want := range map[float64]rune{
		0:    '│',
		45:   '╱',
		90:   '─',
		135:  '╲',
		180:  '│',
		-90:  '─',
		315:  '╲',
		1080: '│',
	} {
		test.That(t, needleRune(angle), test.ShouldEqual, want)
	}
}

func TestShowCancelled(t *testing.T) {
	term, _, _ := newTestTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, term.Show(ctx, engine.Layout{}), test.ShouldNotBeNil)
}
