// Package cog generates interlocking gear ("cog") outlines from tooth
// parameters. Everything here is a pure function of a Spec: the same
// spec always yields the same dimensions and contours.
package cog

import "math"

// Spec describes a gear's tooth profile. All widths are arc lengths
// measured along the pitch circle.
type Spec struct {
	ToothCount       int     `json:"toothCount"`
	ToothTopWidth    float64 `json:"toothTopWidth"`
	ToothValleyWidth float64 `json:"toothValleyWidth"`
	ToothHeight      float64 `json:"toothHeight"`
	SlopeWidth       float64 `json:"slopeWidth"`
}

// WithToothCount returns a copy of s with a different tooth count.
func (s Spec) WithToothCount(n int) Spec {
	s.ToothCount = n
	return s
}

// ToothPitch is the arc length one tooth occupies on the pitch circle:
// a valley, a top and the two slopes between them.
func (s Spec) ToothPitch() float64 {
	return 2*s.SlopeWidth + s.ToothTopWidth + s.ToothValleyWidth
}

// Dimensions are the radii and circumferences derived from a Spec.
type Dimensions struct {
	InnerCircumference float64
	OuterCircumference float64
	InnerRadius        float64 // pitch radius
	OuterRadius        float64 // tip radius
}

// CalculateDimensions derives a gear's size from its tooth profile.
func CalculateDimensions(s Spec) Dimensions {
	innerCircumference := float64(s.ToothCount) * s.ToothPitch()
	innerRadius := innerCircumference / (2 * math.Pi)
	outerRadius := innerRadius + s.ToothHeight
	return Dimensions{
		InnerCircumference: innerCircumference,
		OuterCircumference: 2 * math.Pi * outerRadius,
		InnerRadius:        innerRadius,
		OuterRadius:        outerRadius,
	}
}

// ClampToothCount bounds n to [min, max].
func ClampToothCount(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
