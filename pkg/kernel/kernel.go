// Package kernel is the geometry backend boundary. A backend (sdfx or
// manifold) turns 2D gear profiles into extruded solids and renderable
// meshes; the solid builder in tessellate only sees this interface.
package kernel

import "github.com/chazu/cogworks/pkg/contour"

// Solid is a backend-owned solid.
type Solid interface {
	BoundingBox() (min, max [3]float64)
}

// Kernel builds and meshes solids.
type Kernel interface {
	// Extrude sweeps p along +Z over [0, depth]. segments is the sample
	// count for circular contours on backends that need polygons.
	Extrude(p contour.Profile, depth float64, segments int) (Solid, error)

	Union(solids ...Solid) Solid

	ToMesh(s Solid) (*Mesh, error)
}
