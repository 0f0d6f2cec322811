// Package pick converts pointer positions into world-space points on
// horizontal reference planes.
package pick

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon bounds both the parallel-ray test and the minimum ray distance.
const epsilon = 1e-4

// Camera is the read-only view of a camera needed for unprojection.
type Camera interface {
	// InverseProjection maps clip space back to eye space (4×4).
	InverseProjection() mat.Matrix
	// InverseView maps eye space to world space (4×4), i.e. the camera's
	// world transform.
	InverseView() mat.Matrix
	// Position is the camera's world-space origin.
	Position() r3.Vec
}

// Ray returns the world-space ray through screen pixel (x, y) of a
// width×height viewport. Pixel (0, 0) is the top-left corner.
func Ray(x, y, width, height float64, cam Camera) (origin, dir r3.Vec) {
	ndc := mat.NewVecDense(4, []float64{
		2*x/width - 1,
		1 - 2*y/height,
		-1,
		1,
	})

	var eye mat.VecDense
	eye.MulVec(cam.InverseProjection(), ndc)
	// Point the eye ray down -Z and drop w so the view transform only rotates it.
	eye.SetVec(2, -1)
	eye.SetVec(3, 0)

	var world mat.VecDense
	world.MulVec(cam.InverseView(), &eye)

	dir = r3.Unit(r3.Vec{X: world.AtVec(0), Y: world.AtVec(1), Z: world.AtVec(2)})
	return cam.Position(), dir
}

// IntersectPlane intersects a ray with the plane through center with the
// given normal. It reports false when the ray is parallel to the plane or
// the hit lies behind the ray origin.
func IntersectPlane(origin, dir, normal, center r3.Vec) (r3.Vec, bool) {
	denom := r3.Dot(normal, dir)
	if math.Abs(denom) <= epsilon {
		return r3.Vec{}, false
	}
	t := r3.Dot(r3.Sub(center, origin), normal) / denom
	if t <= epsilon {
		return r3.Vec{}, false
	}
	return r3.Add(origin, r3.Scale(t, dir)), true
}

// ScreenToWorld unprojects screen pixel (x, y) and intersects the result
// with the horizontal plane z = planeOffset. An empty viewport never hits.
func ScreenToWorld(x, y, width, height float64, cam Camera, planeOffset float64) (r3.Vec, bool) {
	if width <= 0 || height <= 0 {
		return r3.Vec{}, false
	}
	origin, dir := Ray(x, y, width, height, cam)
	if math.IsNaN(dir.X) {
		return r3.Vec{}, false
	}
	return IntersectPlane(origin, dir, r3.Vec{Z: 1}, r3.Vec{Z: planeOffset})
}
