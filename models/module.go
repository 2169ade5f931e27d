package models

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	genericComponent "go.viam.com/rdk/components/generic"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/generic"

	"clockclock24/engine"
	"clockclock24/shapes"
)

const (
	firstCycleDelay = time.Second
)

var (
	Service = resource.NewModel("clockclock24", "clockclock24", "clockclock")
)

func init() {
	resource.RegisterService(generic.API, Service,
		resource.Registration[resource.Resource, *Config]{
			Constructor: newClockclockService,
		},
	)
}

type Config struct {
	NeedleComponent string `json:"needle-component"`
	AnimationTimeMs int    `json:"animation-time-ms,omitempty"`
	DelayUnitMs     *int   `json:"delay-unit-ms,omitempty"`
	WaitTimeMs      int    `json:"wait-time-ms,omitempty"`
	Seed            int64  `json:"seed,omitempty"`
	ShapesFile      string `json:"shapes-file,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
}

// Validate ensures all parts of the config are valid and important fields exist.
// Returns the needle component as the only required dependency.
func (cfg *Config) Validate(path string) ([]string, []string, error) {
	if cfg.NeedleComponent == "" {
		return nil, nil, fmt.Errorf(`expected "needle-component" attribute for clockclock module`)
	}
	if err := TimingOptions(cfg.AnimationTimeMs, cfg.DelayUnitMs, cfg.WaitTimeMs).Validate(); err != nil {
		return nil, nil, errors.Wrapf(err, "invalid timing for %v", path)
	}
	if _, err := loadLocation(cfg.Timezone); err != nil {
		return nil, nil, fmt.Errorf(`invalid "timezone" attribute %q for clockclock module`, cfg.Timezone)
	}
	return []string{cfg.NeedleComponent}, nil, nil
}

// TimingOptions builds planner options from config attributes, falling back
// to the engine defaults for anything left unset.
func TimingOptions(animationTimeMs int, delayUnitMs *int, waitTimeMs int) engine.Options {
	opts := engine.DefaultOptions()
	if animationTimeMs != 0 {
		opts.AnimationTime = animationTimeMs
	}
	if delayUnitMs != nil {
		opts.DelayUnit = *delayUnitMs
	}
	if waitTimeMs != 0 {
		opts.WaitTime = waitTimeMs
	}
	return opts
}

// loadLocation is time.LoadLocation with an empty name meaning local time.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// NewRand returns the planner randomness for a seed; 0 picks one from the clock.
func NewRand(seed int64, clk clock.Clock) *rand.Rand {
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type clockclockService struct {
	name resource.Name

	logger logging.Logger
	cfg    *Config
	clk    clock.Clock

	cancelCtx  context.Context
	cancelFunc func()

	mu         sync.Mutex
	loc        *time.Location
	catalog    *shapes.Catalog
	planner    *engine.Planner
	player     *Player
	running    bool
	cycle      int
	cancelNext func() bool
}

func newClockclockService(ctx context.Context, deps resource.Dependencies, rawConf resource.Config, logger logging.Logger) (resource.Resource, error) {
	conf, err := resource.NativeConfig[*Config](rawConf)
	if err != nil {
		return nil, err
	}

	return NewClockclock(ctx, deps, rawConf.ResourceName(), conf, logger)
}

// NewClockclock builds the clock service driving the configured needle
// component on the system clock.
func NewClockclock(ctx context.Context, deps resource.Dependencies, name resource.Name, conf *Config, logger logging.Logger) (resource.Resource, error) {
	return newClockclock(ctx, deps, name, conf, logger, clock.New())
}

func newClockclock(
	ctx context.Context,
	deps resource.Dependencies,
	name resource.Name,
	conf *Config,
	logger logging.Logger,
	clk clock.Clock,
) (*clockclockService, error) {
	cancelCtx, cancelFunc := context.WithCancel(context.Background())

	s := &clockclockService{
		name:       name,
		logger:     logger,
		clk:        clk,
		cancelCtx:  cancelCtx,
		cancelFunc: cancelFunc,
	}
	if err := s.configure(deps, conf); err != nil {
		cancelFunc()
		return nil, err
	}
	return s, nil
}

func (s *clockclockService) Name() resource.Name {
	return s.name
}

func (s *clockclockService) Reconfigure(ctx context.Context, deps resource.Dependencies, conf resource.Config) error {
	config, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return err
	}
	return s.configure(deps, config)
}

func (s *clockclockService) configure(deps resource.Dependencies, config *Config) error {
	needles, err := genericComponent.FromDependencies(deps, config.NeedleComponent)
	if err != nil {
		return errors.Wrapf(err, "unable to get needle component %v for service", config.NeedleComponent)
	}
	loc, err := loadLocation(config.Timezone)
	if err != nil {
		return errors.Wrapf(err, "unable to load timezone %q", config.Timezone)
	}
	catalog, err := shapes.Open(config.ShapesFile)
	if err != nil {
		return err
	}
	planner, err := engine.NewPlanner(
		TimingOptions(config.AnimationTimeMs, config.DelayUnitMs, config.WaitTimeMs),
		catalog,
		NewRand(config.Seed, s.clk),
	)
	if err != nil {
		return errors.Wrap(err, "unable to build planner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	initial := catalog.TimeLayout(s.clk.Now().In(loc))
	wasRunning := s.running
	if s.player != nil {
		s.stopLocked()
		initial = s.player.Displayed()
	}

	s.cfg = config
	s.loc = loc
	s.catalog = catalog
	s.planner = planner
	s.player = NewPlayer(s.clk, componentSink{needles: needles}, initial, s.logger)

	if wasRunning {
		s.startLocked()
	}
	return nil
}

// format is {"state": "start"|"stop"}, {"animate": true}, {"show_time": "HH:MM"} or {"layout": true}

func (s *clockclockService) DoCommand(ctx context.Context, cmd map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := cmd["state"]; ok {
		switch state {
		case "start":
			if s.running {
				return map[string]any{"warning": "already running"}, nil
			}
			s.startLocked()
			return map[string]any{"started": "true"}, nil
		case "stop":
			if !s.running {
				return map[string]any{"warning": "no currently running clock to stop"}, nil
			}
			s.stopLocked()
			return map[string]any{"stopped": "true"}, nil
		default:
			return nil, errors.Errorf("unknown state %v", state)
		}
	}
	if _, ok := cmd["animate"]; ok {
		steps := s.runCycleLocked(s.now())
		return map[string]any{"animating": "true", "steps": steps}, nil
	}
	if raw, ok := cmd["show_time"]; ok {
		str, ok := raw.(string)
		if !ok {
			return nil, errors.New(`"show_time" must be a string like "12:34"`)
		}
		hour, minute, err := shapes.ParseClock(str)
		if err != nil {
			return nil, err
		}
		digits, err := s.catalog.ClockLayout(hour, minute)
		if err != nil {
			return nil, err
		}
		steps := s.runCycleLocked(digits)
		return map[string]any{"animating": "true", "steps": steps}, nil
	}
	if _, ok := cmd["layout"]; ok {
		return EncodeLayout(s.player.Displayed()), nil
	}
	return nil, errors.New("invalid command")
}

func (s *clockclockService) now() engine.Layout {
	return s.catalog.TimeLayout(s.clk.Now().In(s.loc))
}

func (s *clockclockService) startLocked() {
	s.logger.Info("starting clockclock")
	s.running = true
	s.scheduleLocked(firstCycleDelay)
}

func (s *clockclockService) stopLocked() {
	s.running = false
	if s.cancelNext != nil {
		s.cancelNext()
		s.cancelNext = nil
	}
	s.cycle++
	s.player.Stop()
}

func (s *clockclockService) scheduleLocked(d time.Duration) {
	if s.cancelNext != nil {
		s.cancelNext()
	}
	cycle := s.cycle
	s.cancelNext = DelayThen(s.clk, d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.running || cycle != s.cycle {
			return
		}
		s.cancelNext = nil
		s.runCycleLocked(s.now())
	})
}

// runCycleLocked abandons whatever is playing and animates from the layout
// last shown to digits. It returns the number of layouts in the cycle.
func (s *clockclockService) runCycleLocked(digits engine.Layout) int {
	if s.cancelNext != nil {
		s.cancelNext()
		s.cancelNext = nil
	}
	s.cycle++
	cycle := s.cycle

	s.player.Stop()
	timeline := s.planner.Run(s.player.Displayed(), digits)
	s.logger.Infof("animating %d layouts", len(timeline))
	s.player.Play(s.cancelCtx, timeline, func() {
		s.cycleDone(cycle)
	})
	return len(timeline)
}

func (s *clockclockService) cycleDone(cycle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || cycle != s.cycle {
		return
	}
	s.scheduleLocked(untilNextMinute(s.clk.Now()))
}

func untilNextMinute(now time.Time) time.Duration {
	return time.Minute - now.Sub(now.Truncate(time.Minute))
}

func (s *clockclockService) Close(context.Context) error {
	s.cancelFunc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	return nil
}
