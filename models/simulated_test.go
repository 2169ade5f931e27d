package models

import (
	"context"
	"testing"

	genericComponent "go.viam.com/rdk/components/generic"
	"go.viam.com/rdk/logging"
	"go.viam.com/test"
)

func TestSimulatedNeedles(t *testing.T) {
	ctx := context.Background()
	needles := NewSimulatedNeedles(genericComponent.Named("needles"), logging.NewTestLogger(t))
	test.That(t, needles.Name(), test.ShouldResemble, genericComponent.Named("needles"))

	resp, err := needles.DoCommand(ctx, map[string]any{"get_layout": true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp["shown"], test.ShouldEqual, 0)

	layout := testTimeline()[0]
	_, err = needles.DoCommand(ctx, EncodeLayout(layout))
	test.That(t, err, test.ShouldBeNil)

	resp, err = needles.DoCommand(ctx, map[string]any{"get_layout": true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp["shown"], test.ShouldEqual, 1)
	got, err := DecodeLayout(resp)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, layout)

	_, err = needles.DoCommand(ctx, map[string]any{"set_layout": "nope"})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = needles.DoCommand(ctx, map[string]any{"spin": true})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, needles.Close(ctx), test.ShouldBeNil)
}
