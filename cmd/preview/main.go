// Command preview plays clock cycles in the terminal.
//
// Space runs a cycle now, q or Esc quits. Without --once a cycle also runs
// at the start of every minute.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.viam.com/rdk/logging"
	goutils "go.viam.com/utils"

	"clockclock24/engine"
	"clockclock24/models"
	"clockclock24/render"
	"clockclock24/shapes"
)

const frameInterval = 33 * time.Millisecond

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	defaults := engine.DefaultOptions()
	opts := engine.Options{ShapeCount: defaults.ShapeCount}
	pflag.IntVar(&opts.AnimationTime, "animation-time", defaults.AnimationTime, "ms each clock takes to turn")
	pflag.IntVar(&opts.DelayUnit, "delay-unit", defaults.DelayUnit, "ms between neighbouring columns starting")
	pflag.IntVar(&opts.WaitTime, "wait-time", defaults.WaitTime, "ms to hold a shape before moving on")
	seed := pflag.Int64("seed", 0, "planner seed, 0 for a random one")
	shapesFile := pflag.String("shapes", "", "YAML shape catalog, empty for the built-in one")
	once := pflag.Bool("once", false, "play a single cycle and exit")
	pflag.Parse()

	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid timing flags")
	}
	catalog, err := shapes.Open(*shapesFile)
	if err != nil {
		return err
	}

	clk := clock.New()
	planner, err := engine.NewPlanner(opts, catalog, models.NewRand(*seed, clk))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// the screen owns the terminal, so only errors reach the log
	logger := logging.NewLogger("preview")
	logger.SetLevel(logging.ERROR)

	start := catalog.TimeLayout(clk.Now())
	term := render.NewTerminal(screen, clk, start)
	term.SetCaption("press space to animate, q to quit")
	player := models.NewPlayer(clk, term, start, logger)
	defer player.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	goutils.PanicCapturingGo(func() {
		term.Loop(ctx, frameInterval)
	})

	finished := make(chan struct{}, 1)
	cycle := func() {
		player.Play(ctx, planner.Run(player.Displayed(), catalog.TimeLayout(clk.Now())), func() {
			finished <- struct{}{}
		})
	}

	events := make(chan tcell.Event, 16)
	goutils.PanicCapturingGo(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	var cancelNext func() bool
	schedule := func() {
		if cancelNext != nil {
			cancelNext()
		}
		now := clk.Now()
		cancelNext = models.DelayThen(clk, now.Truncate(time.Minute).Add(time.Minute).Sub(now), func() {
			select {
			case events <- tcell.NewEventInterrupt(nil):
			case <-ctx.Done():
			}
		})
	}

	cycle()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					cycle()
				}
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventInterrupt:
				cycle()
			}
		case <-finished:
			if *once {
				return nil
			}
			schedule()
		}
	}
}
