//go:build manifold

// Package manifold provides a CGo-based geometry kernel binding to the
// Manifold library (https://github.com/elalish/manifold). Manifold
// triangulates polygon cross-sections exactly, so gear outlines keep
// their sampled vertices instead of being re-meshed by marching cubes.
//
// This package requires the Manifold C library (manifoldc) to be installed.
// Build with: go build -tags=manifold
package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/cogworks/pkg/contour"
	"github.com/chazu/cogworks/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ kernel.Kernel = (*ManifoldKernel)(nil)
var _ kernel.Solid = (*manifoldSolid)(nil)

// manifoldSolid owns one C manifold.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox queries the manifold's cached bounds.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	bbox := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(bbox)

	min = [3]float64{
		float64(C.manifold_box_min_x(bbox)),
		float64(C.manifold_box_min_y(bbox)),
		float64(C.manifold_box_min_z(bbox)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(bbox)),
		float64(C.manifold_box_max_y(bbox)),
		float64(C.manifold_box_max_z(bbox)),
	}
	return min, max
}

// newSolid takes ownership of ptr; the finalizer frees it.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel extrudes gear profiles through manifoldc.
type ManifoldKernel struct{}

// New never fails when the backend is compiled in.
func New() (kernel.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// circleSegments is the number of vertices used for a circle when the
// caller asks for the given curve segments. Full circles get twice the
// per-curve count so small bores stay round.
func circleSegments(segments int) int {
	return 2 * segments
}

// loop samples a contour and winds it for Manifold's positive fill rule:
// outer loops counter-clockwise, holes clockwise.
func loop(c contour.Contour, segments int, outer bool) []r2.Vec {
	return contour.Orient(c.Sample(circleSegments(segments)), outer)
}

// Extrude triangulates the profile's cross-section and sweeps it from
// z=0 to z=depth.
func (k *ManifoldKernel) Extrude(p contour.Profile, depth float64, segments int) (kernel.Solid, error) {
	loops := [][]r2.Vec{loop(p.Outer, segments, true)}
	for _, h := range p.Holes {
		loops = append(loops, loop(h, segments, false))
	}

	simple := make([]*C.ManifoldSimplePolygon, 0, len(loops))
	defer func() {
		for _, sp := range simple {
			C.manifold_delete_simple_polygon(sp)
		}
	}()
	for i, l := range loops {
		if len(l) < 3 {
			return nil, fmt.Errorf("manifold: loop %d has %d vertices, need at least 3", i, len(l))
		}
		pts := make([]C.ManifoldVec2, len(l))
		for j, v := range l {
			pts[j] = C.ManifoldVec2{x: C.double(v.X), y: C.double(v.Y)}
		}
		sp := C.manifold_simple_polygon(C.manifold_alloc_simple_polygon(), &pts[0], C.size_t(len(pts)))
		simple = append(simple, sp)
	}

	polys := C.manifold_polygons(C.manifold_alloc_polygons(), &simple[0], C.size_t(len(simple)))
	defer C.manifold_delete_polygons(polys)

	ptr := C.manifold_extrude(C.manifold_alloc_manifold(), polys,
		C.double(depth),
		C.int(1), // slices
		C.double(0), // twist
		C.double(1), C.double(1), // top scale
	)
	return newSolid(ptr), nil
}

// Union folds the solids into one with boolean union.
func (k *ManifoldKernel) Union(solids ...kernel.Solid) kernel.Solid {
	acc := solids[0]
	for _, s := range solids[1:] {
		a := acc.(*manifoldSolid)
		b := s.(*manifoldSolid)
		acc = newSolid(C.manifold_union(C.manifold_alloc_manifold(), a.ptr, b.ptr))
	}
	return acc
}

// ToMesh extracts a triangle mesh from the solid using Manifold's MeshGL
// format. Vertex positions and normals are interleaved in MeshGL; this
// method separates them into the kernel.Mesh flat-array layout.
func (k *ManifoldKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	ms := s.(*manifoldSolid)

	meshGL := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return nil, fmt.Errorf("manifold: solid has no triangles")
	}

	// The first 3 properties are position; normals follow at 3..5 when present.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	vertices := make([]float32, numVert*3)
	hasNormals := numProp >= 6
	var normals []float32
	if hasNormals {
		normals = make([]float32, numVert*3)
	}
	for i := 0; i < numVert; i++ {
		base := i * numProp
		copy(vertices[i*3:i*3+3], propData[base:base+3])
		if hasNormals {
			copy(normals[i*3:i*3+3], propData[base+3:base+6])
		}
	}
	if !hasNormals {
		normals = vertexNormals(vertices, indices)
	}

	mesh := &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
	if mesh.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d",
			mesh.VertexCount(), numVert)
	}
	return mesh, nil
}

// vertexNormals averages the face normals around each vertex.
func vertexNormals(vertices []float32, indices []uint32) []float32 {
	normals := make([]float32, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		tri := [3]uint32{indices[t], indices[t+1], indices[t+2]}
		var p [3][3]float64
		for c, idx := range tri {
			for axis := 0; axis < 3; axis++ {
				p[c][axis] = float64(vertices[idx*3+uint32(axis)])
			}
		}
		e1 := [3]float64{p[1][0] - p[0][0], p[1][1] - p[0][1], p[1][2] - p[0][2]}
		e2 := [3]float64{p[2][0] - p[0][0], p[2][1] - p[0][1], p[2][2] - p[0][2]}
		n := [3]float32{
			float32(e1[1]*e2[2] - e1[2]*e2[1]),
			float32(e1[2]*e2[0] - e1[0]*e2[2]),
			float32(e1[0]*e2[1] - e1[1]*e2[0]),
		}
		for _, idx := range tri {
			for axis := 0; axis < 3; axis++ {
				normals[idx*3+uint32(axis)] += n[axis]
			}
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		nx, ny, nz := float64(normals[i]), float64(normals[i+1]), float64(normals[i+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 1e-12 {
			normals[i] = float32(nx / length)
			normals[i+1] = float32(ny / length)
			normals[i+2] = float32(nz / length)
		}
	}
	return normals
}
