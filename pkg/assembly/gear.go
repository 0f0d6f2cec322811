// Package assembly is the live gear workspace: it places a dragged gear
// against the committed ones, snaps it into mesh with a parent and drives
// every gear's rotation from one shared phase clock.
package assembly

import (
	"math"

	"github.com/chazu/cogworks/pkg/cog"
	"github.com/chazu/cogworks/pkg/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// Handle identifies a gear. Handles are never reused by an Engine.
type Handle = graph.Handle

// Marker is the preview state a gear should be drawn with.
type Marker int

const (
	MarkerNormal Marker = iota
	MarkerValid
	MarkerInvalid
)

func (m Marker) String() string {
	switch m {
	case MarkerNormal:
		return "normal"
	case MarkerValid:
		return "valid"
	case MarkerInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// MarshalText encodes the marker by name for the frontend.
func (m Marker) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Gear is one gear in the workspace. Positions are world units; radii are
// gear units and get multiplied by the engine scale when compared with
// positions.
type Gear struct {
	Handle       Handle
	ToothCount   int
	Position     r2.Vec
	BaseRotation float64
	Direction    float64 // +1 or -1
	InnerRadius  float64
	OuterRadius  float64
}

func newGear(h Handle, spec cog.Spec) Gear {
	dims := cog.CalculateDimensions(spec)
	return Gear{
		Handle:      h,
		ToothCount:  spec.ToothCount,
		Direction:   1,
		InnerRadius: dims.InnerRadius,
		OuterRadius: dims.OuterRadius,
	}
}

// Rotation is the displayed rotation at the given phase. Smaller gears
// turn faster so meshed neighbors keep their teeth interlocked.
func (g Gear) Rotation(phase float64) float64 {
	return g.BaseRotation + phase*g.Direction/float64(g.ToothCount)
}

// Overlaps reports whether two gear discs with outer radii r1 and r2 whose
// centers are d apart collide.
func Overlaps(d, r1, r2, collisionOffset, scale float64) bool {
	return d < (r1+r2+collisionOffset)*scale
}

// SnapDistance is the center distance at which a gear with pitch radius
// childInner meshes with a parent of pitch radius parentInner.
func SnapDistance(parentInner, childInner, toothHeight, connectionOffset, scale float64) float64 {
	return (parentInner + childInner + toothHeight + connectionOffset) * scale
}

// MeshingRotation returns the base rotation that drops a childTeeth gear's
// teeth into the parent's valleys when it sits in direction dir from the
// parent's center. dir must be a unit vector.
func MeshingRotation(parent Gear, dir r2.Vec, childTeeth int) float64 {
	ref := r2.Vec{X: math.Cos(parent.BaseRotation), Y: math.Sin(parent.BaseRotation)}
	diff := math.Atan2(r2.Cross(ref, dir), r2.Dot(ref, dir))

	var offset float64
	if childTeeth%2 != 0 {
		offset = math.Pi / float64(childTeeth)
	}
	ratio := float64(parent.ToothCount) / float64(childTeeth)
	return parent.BaseRotation + diff*ratio + diff + offset
}
