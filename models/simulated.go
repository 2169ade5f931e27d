package models

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	genericComponent "go.viam.com/rdk/components/generic"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"

	"clockclock24/engine"
)

var SimulatedNeedles = resource.NewModel("clockclock24", "clockclock24", "simulated-needles")

func init() {
	resource.RegisterComponent(genericComponent.API, SimulatedNeedles,
		resource.Registration[resource.Resource, *SimulatedConfig]{
			Constructor: newSimulatedNeedles,
		},
	)
}

// SimulatedConfig has no attributes.
type SimulatedConfig struct{}

func (cfg *SimulatedConfig) Validate(path string) ([]string, []string, error) {
	return nil, nil, nil
}

// simulatedNeedles stands in for the needle motors: it accepts layouts and
// remembers the last one, so the clock service can run without hardware.
type simulatedNeedles struct {
	resource.AlwaysRebuild

	name   resource.Name
	logger logging.Logger

	mu     sync.Mutex
	layout engine.Layout
	shown  int
}

func newSimulatedNeedles(ctx context.Context, deps resource.Dependencies, rawConf resource.Config, logger logging.Logger) (resource.Resource, error) {
	return NewSimulatedNeedles(rawConf.ResourceName(), logger), nil
}

// NewSimulatedNeedles returns a needle component that only records layouts.
func NewSimulatedNeedles(name resource.Name, logger logging.Logger) resource.Resource {
	return &simulatedNeedles{name: name, logger: logger}
}

func (n *simulatedNeedles) Name() resource.Name {
	return n.name
}

func (n *simulatedNeedles) DoCommand(ctx context.Context, cmd map[string]any) (map[string]any, error) {
	if _, ok := cmd[setLayoutKey]; ok {
		layout, err := DecodeLayout(cmd)
		if err != nil {
			return nil, errors.Wrap(err, "rejecting layout")
		}
		n.mu.Lock()
		n.layout = layout
		n.shown++
		shown := n.shown
		n.mu.Unlock()
		n.logger.Debugf("layout %d settles in %v", shown, engine.SettleTime(layout))
		return map[string]any{"accepted": "true"}, nil
	}
	if _, ok := cmd["get_layout"]; ok {
		n.mu.Lock()
		defer n.mu.Unlock()
		resp := EncodeLayout(n.layout)
		resp["shown"] = n.shown
		return resp, nil
	}
	return nil, errors.New("invalid command")
}

func (n *simulatedNeedles) Close(context.Context) error {
	return nil
}
