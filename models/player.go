package models

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	goutils "go.viam.com/utils"

	"clockclock24/engine"
)

// Sink receives each layout of a timeline when it starts playing.
type Sink interface {
	Show(ctx context.Context, layout engine.Layout) error
}

// componentSink forwards layouts to a needle component.
type componentSink struct {
	needles resource.Resource
}

func (c componentSink) Show(ctx context.Context, layout engine.Layout) error {
	_, err := c.needles.DoCommand(ctx, EncodeLayout(layout))
	return errors.Wrapf(err, "unable to send layout to %v", c.needles.Name())
}

// DelayThen calls fn after d on clk. The returned function cancels the call
// and reports whether it was still pending.
func DelayThen(clk clock.Clock, d time.Duration, fn func()) (cancel func() bool) {
	return clk.AfterFunc(d, fn).Stop
}

// Player steps a sink through resolved timelines, waiting for every clock of
// a layout to settle before moving to the next one.
type Player struct {
	clk    clock.Clock
	sink   Sink
	logger logging.Logger

	mu        sync.Mutex
	displayed engine.Layout
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewPlayer returns a player whose sink currently shows initial.
func NewPlayer(clk clock.Clock, sink Sink, initial engine.Layout, logger logging.Logger) *Player {
	return &Player{
		clk:       clk,
		sink:      sink,
		logger:    logger,
		displayed: initial,
	}
}

// Displayed is the last layout the sink accepted.
func (p *Player) Displayed() engine.Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayed
}

func (p *Player) setDisplayed(layout engine.Layout) {
	p.mu.Lock()
	p.displayed = layout
	p.mu.Unlock()
}

// Playing reports whether a timeline is in flight.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Play stops any timeline in flight and starts timeline. Once its last
// layout settles the sink is sent the same layout reset onto [0, 360) and
// done is called. done is not called if the timeline is stopped or the sink
// fails. Play and Stop must not be called concurrently.
func (p *Player) Play(ctx context.Context, timeline []engine.Layout, done func()) {
	p.Stop()

	playCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	list := NewAnimationList(timeline)
	p.logger.Debugf("playing %d layouts over %v", len(list.Animations), list.Duration())

	p.wg.Add(1)
	goutils.PanicCapturingGo(func() {
		finished := func() bool {
			defer p.wg.Done()
			return p.play(playCtx, list)
		}()
		p.mu.Lock()
		if playCtx.Err() == nil {
			p.cancel = nil
		}
		p.mu.Unlock()
		cancel()
		// outside the wait group so done may call back into Play or Stop
		if finished && done != nil {
			done()
		}
	})
}

func (p *Player) play(ctx context.Context, list *AnimationList) bool {
	var last engine.Layout
	played := false
	for {
		animation, ok := list.NextAnimation()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			return false
		}
		// armed before showing so the wait covers the sink call
		timer := p.clk.Timer(animation.Duration)
		if err := p.show(ctx, animation.Layout); err != nil {
			timer.Stop()
			return false
		}
		last, played = animation.Layout, true

		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
	if !played {
		return true
	}
	return p.show(ctx, engine.Reset(last)) == nil
}

func (p *Player) show(ctx context.Context, layout engine.Layout) error {
	if err := p.sink.Show(ctx, layout); err != nil {
		if ctx.Err() == nil {
			p.logger.Error("error showing layout", "error", err)
		}
		return err
	}
	p.setDisplayed(layout)
	return nil
}

// Stop abandons the timeline in flight and waits for it to exit. The
// displayed layout stays at the last one the sink accepted.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
