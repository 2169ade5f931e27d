package main

import (
	"clockclock24"
	"clockclock24/models"

	genericComponent "go.viam.com/rdk/components/generic"
	"go.viam.com/rdk/module"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/generic"
)

func main() {
	// ModularMain can take multiple APIModel arguments, if your module implements multiple models.
	module.ModularMain(
		resource.APIModel{API: generic.API, Model: models.Service},
		resource.APIModel{API: generic.API, Model: clockclock24.Planner},
		resource.APIModel{API: genericComponent.API, Model: models.SimulatedNeedles},
	)
}
