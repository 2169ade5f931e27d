package clockclock24

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/generic"

	"clockclock24/engine"
	"clockclock24/models"
	"clockclock24/shapes"
)

var (
	Planner = resource.NewModel("clockclock24", "clockclock24", "planner")
)

func init() {
	resource.RegisterService(generic.API, Planner,
		resource.Registration[resource.Resource, *Config]{
			Constructor: newPlannerService,
		},
	)
}

type Config struct {
	AnimationTimeMs int    `json:"animation-time-ms,omitempty"`
	DelayUnitMs     *int   `json:"delay-unit-ms,omitempty"`
	WaitTimeMs      int    `json:"wait-time-ms,omitempty"`
	Seed            int64  `json:"seed,omitempty"`
	ShapesFile      string `json:"shapes-file,omitempty"`
}

// Validate checks the timing attributes. The planner has no dependencies.
func (cfg *Config) Validate(path string) ([]string, []string, error) {
	if err := cfg.options().Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid timing for planner module at %v: %w", path, err)
	}
	return nil, nil, nil
}

func (cfg *Config) options() engine.Options {
	return models.TimingOptions(cfg.AnimationTimeMs, cfg.DelayUnitMs, cfg.WaitTimeMs)
}

// plannerService plans cycles without driving any needles, so a client can
// preview or replay what the clock service would do.
type plannerService struct {
	resource.AlwaysRebuild

	name resource.Name

	logger  logging.Logger
	cfg     *Config
	clk     clock.Clock
	catalog *shapes.Catalog
	planner *engine.Planner
}

func newPlannerService(ctx context.Context, deps resource.Dependencies, rawConf resource.Config, logger logging.Logger) (resource.Resource, error) {
	conf, err := resource.NativeConfig[*Config](rawConf)
	if err != nil {
		return nil, err
	}

	return NewPlanner(ctx, deps, rawConf.ResourceName(), conf, logger)
}

func NewPlanner(ctx context.Context, deps resource.Dependencies, name resource.Name, conf *Config, logger logging.Logger) (resource.Resource, error) {
	return newPlanner(name, conf, logger, clock.New())
}

func newPlanner(name resource.Name, conf *Config, logger logging.Logger, clk clock.Clock) (*plannerService, error) {
	catalog, err := shapes.Open(conf.ShapesFile)
	if err != nil {
		return nil, err
	}
	planner, err := engine.NewPlanner(conf.options(), catalog, models.NewRand(conf.Seed, clk))
	if err != nil {
		return nil, errors.Wrap(err, "unable to build planner")
	}

	return &plannerService{
		name:    name,
		logger:  logger,
		cfg:     conf,
		clk:     clk,
		catalog: catalog,
		planner: planner,
	}, nil
}

func (s *plannerService) Name() resource.Name {
	return s.name
}

// format is {"plan": true, "time": "HH:MM"}; time defaults to now

func (s *plannerService) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	if _, ok := cmd["plan"]; !ok {
		return nil, errors.New("invalid command")
	}

	digits := s.catalog.TimeLayout(s.clk.Now())
	if raw, ok := cmd["time"]; ok {
		str, ok := raw.(string)
		if !ok {
			return nil, errors.New(`"time" must be a string like "12:34"`)
		}
		hour, minute, err := shapes.ParseClock(str)
		if err != nil {
			return nil, err
		}
		if digits, err = s.catalog.ClockLayout(hour, minute); err != nil {
			return nil, err
		}
	}

	steps := s.planner.Plan(digits)
	timeline := engine.ResolveSequence(steps, digits)
	s.logger.Info("planned cycle", "steps", len(steps))

	return map[string]interface{}{
		"steps": lo.Map(steps, func(step engine.Sequence, _ int) any {
			return map[string]any{
				"kind":              step.Kind.String(),
				"animation_time_ms": step.AnimationTime,
				"delay_ms":          step.Delay,
				"animation_type":    step.AnimationType.String(),
				"reverse_minutes":   step.ReverseMinutes,
			}
		}),
		"timeline": lo.Map(timeline, func(l engine.Layout, _ int) any {
			return models.EncodeLayout(l)
		}),
	}, nil
}

func (s *plannerService) Close(context.Context) error {
	return nil
}
