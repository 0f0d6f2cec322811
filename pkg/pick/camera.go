package pick

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// PerspectiveCamera is a right-handed OpenGL-style camera looking from Eye
// towards Target.
type PerspectiveCamera struct {
	FOV    float64 // vertical field of view, degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64
	Eye    r3.Vec
	Target r3.Vec
	Up     r3.Vec
}

// Compile-time interface check.
var _ Camera = (*PerspectiveCamera)(nil)

// NewPerspectiveCamera returns a camera at eye looking at target with +Y up.
func NewPerspectiveCamera(fov, aspect, near, far float64, eye, target r3.Vec) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Eye:    eye,
		Target: target,
		Up:     r3.Vec{Y: 1},
	}
}

// Projection returns the perspective projection matrix.
func (c *PerspectiveCamera) Projection() *mat.Dense {
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	nf := c.Near - c.Far
	return mat.NewDense(4, 4, []float64{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (c.Far + c.Near) / nf, 2 * c.Far * c.Near / nf,
		0, 0, -1, 0,
	})
}

// InverseProjection returns the inverse of Projection. A degenerate
// camera yields the identity.
func (c *PerspectiveCamera) InverseProjection() mat.Matrix {
	var inv mat.Dense
	if err := inv.Inverse(c.Projection()); err != nil {
		return identity()
	}
	return &inv
}

// basis returns the camera's right, up and backward axes in world space.
func (c *PerspectiveCamera) basis() (x, y, z r3.Vec) {
	z = r3.Sub(c.Eye, c.Target)
	if r3.Norm2(z) == 0 {
		z = r3.Vec{Z: 1}
	}
	z = r3.Unit(z)
	x = r3.Cross(c.Up, z)
	if r3.Norm2(x) == 0 {
		// Up is parallel to the view direction; nudge it.
		x = r3.Cross(r3.Vec{X: 1}, z)
		if r3.Norm2(x) == 0 {
			x = r3.Cross(r3.Vec{Y: 1}, z)
		}
	}
	x = r3.Unit(x)
	y = r3.Cross(z, x)
	return x, y, z
}

// InverseView returns the camera's world transform.
func (c *PerspectiveCamera) InverseView() mat.Matrix {
	x, y, z := c.basis()
	return mat.NewDense(4, 4, []float64{
		x.X, y.X, z.X, c.Eye.X,
		x.Y, y.Y, z.Y, c.Eye.Y,
		x.Z, y.Z, z.Z, c.Eye.Z,
		0, 0, 0, 1,
	})
}

// Position returns the camera's world-space origin.
func (c *PerspectiveCamera) Position() r3.Vec {
	return c.Eye
}

func identity() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}
