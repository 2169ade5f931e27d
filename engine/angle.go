package engine

import "math"

// MinRotation is the smallest turn a collapsed rotation delta is reduced to.
const MinRotation = 180

func isNegative(x float64) bool {
	return x < 0
}

// NormalizeDelta removes one full turn from a rotation delta whose magnitude
// is at least 360+MinRotation, keeping its sign.
func NormalizeDelta(delta float64) float64 {
	m := math.Abs(delta)
	if m >= 360+MinRotation {
		m -= 360
	}
	if isNegative(delta) {
		return -m
	}
	return m
}

// CanonicalAngle maps an accumulated angle back onto [0, 360).
func CanonicalAngle(angle float64) float64 {
	r := math.Mod(angle, 360)
	if isNegative(r) {
		r += 360
	}
	if r >= 360 {
		// tiny negative remainders round up to a full turn
		r = 0
	}
	return r
}

func minNonZero(rest float64) float64 {
	if rest == 0 {
		return 360
	}
	return rest
}

// RotateForward returns the absolute angle reached by turning clockwise from
// start until the needle points at end. The result keeps accumulating past
// 360 rather than wrapping.
func RotateForward(start, end float64) float64 {
	return start + NormalizeDelta(360-(CanonicalAngle(start)-end))
}

// RotateReverse is RotateForward turning counter-clockwise.
func RotateReverse(start, end float64) float64 {
	return start + NormalizeDelta(-minNonZero(CanonicalAngle(start))+(end-360))
}
