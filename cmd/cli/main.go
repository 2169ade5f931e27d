package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/pflag"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	generic "go.viam.com/rdk/services/generic"

	"clockclock24"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	ctx := context.Background()
	logger := logging.NewLogger("cli")

	at := pflag.String("time", "", "plan a cycle to HH:MM instead of now")
	seed := pflag.Int64("seed", 0, "planner seed, 0 for a random one")
	shapesFile := pflag.String("shapes", "", "YAML shape catalog, empty for the built-in one")
	pflag.Parse()

	deps := resource.Dependencies{}

	cfg := clockclock24.Config{Seed: *seed, ShapesFile: *shapesFile}
	if _, _, err := cfg.Validate("cli"); err != nil {
		return err
	}

	thing, err := clockclock24.NewPlanner(ctx, deps, generic.Named("planner"), &cfg, logger)
	if err != nil {
		return err
	}
	defer thing.Close(ctx)

	cmd := map[string]interface{}{"plan": true}
	if *at != "" {
		cmd["time"] = *at
	}
	resp, err := thing.DoCommand(ctx, cmd)
	if err != nil {
		return err
	}
	logger.Infof("planned %d steps", len(resp["steps"].([]any)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
