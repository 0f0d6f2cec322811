// Package sdfx extrudes gear profiles as signed distance fields with
// github.com/deadsy/sdfx and meshes them by marching cubes.
package sdfx

import (
	"fmt"

	"github.com/chazu/cogworks/pkg/contour"
	"github.com/chazu/cogworks/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells is the marching cubes grid size along the longest axis.
const DefaultMeshCells = 120

// sdfxSolid is a kernel.Solid backed by a distance field.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox reports the field's bounds.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	box := s.s.BoundingBox()
	return [3]float64{box.Min.X, box.Min.Y, box.Min.Z}, [3]float64{box.Max.X, box.Max.Y, box.Max.Z}
}

// SdfxKernel is the pure-Go kernel. It is always available.
type SdfxKernel struct {
	meshCells int
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// MeshCells sets the marching cubes grid size along the longest axis.
func MeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// New returns a kernel meshing at DefaultMeshCells unless overridden.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: DefaultMeshCells}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func field(s kernel.Solid) sdf.SDF3 { return s.(*sdfxSolid).s }

func solid(s sdf.SDF3) kernel.Solid { return &sdfxSolid{s: s} }

// shape2D converts a contour into an SDF2. Circles stay analytic, so the
// segments hint is not needed here.
func shape2D(c contour.Contour) (sdf.SDF2, error) {
	switch c.Kind {
	case contour.Circle:
		s, err := sdf.Circle2D(c.Radius)
		if err != nil {
			return nil, fmt.Errorf("sdfx.Circle2D: %w", err)
		}
		if c.Center.X == 0 && c.Center.Y == 0 {
			return s, nil
		}
		return sdf.Transform2D(s, sdf.Translate2d(v2.Vec{X: c.Center.X, Y: c.Center.Y})), nil
	case contour.Polygon:
		pts := make([]v2.Vec, len(c.Points))
		for i, p := range c.Points {
			pts[i] = v2.Vec{X: p.X, Y: p.Y}
		}
		s, err := sdf.Polygon2D(pts)
		if err != nil {
			return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("sdfx: unsupported contour kind %v", c.Kind)
	}
}

// Extrude builds the profile as outer minus holes and extrudes it.
// sdf.Extrude3D is centered on z=0, so the result is lifted by depth/2
// to span [0, depth].
func (k *SdfxKernel) Extrude(p contour.Profile, depth float64, _ int) (kernel.Solid, error) {
	outer, err := shape2D(p.Outer)
	if err != nil {
		return nil, err
	}
	area := outer
	if len(p.Holes) > 0 {
		holes := make([]sdf.SDF2, 0, len(p.Holes))
		for _, h := range p.Holes {
			hs, err := shape2D(h)
			if err != nil {
				return nil, err
			}
			holes = append(holes, hs)
		}
		area = sdf.Difference2D(outer, sdf.Union2D(holes...))
	}
	s := sdf.Extrude3D(area, depth)
	m := sdf.Translate3d(v3.Vec{X: 0, Y: 0, Z: depth / 2})
	return solid(sdf.Transform3D(s, m)), nil
}

// Union merges gear parts into one field.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	if len(solids) == 1 {
		return solids[0]
	}
	parts := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		parts[i] = field(s)
	}
	return solid(sdf.Union3D(parts...))
}

// ToMesh samples the field on a uniform grid. Each triangle gets its own
// three vertices so that edges stay sharp.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(field(s), renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: marching cubes produced no triangles at %d cells", k.meshCells)
	}

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
