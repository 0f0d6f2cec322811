package kernel

import (
	"testing"

	"github.com/chazu/cogworks/pkg/contour"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      Mesh
		vertices  int
		triangles int
		empty     bool
	}{
		{"empty", Mesh{}, 0, 0, true},
		{"one triangle", Mesh{
			Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Indices:  []uint32{0, 1, 2},
		}, 3, 1, false},
		{"quad", Mesh{
			Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
			Indices:  []uint32{0, 1, 2, 2, 3, 0},
		}, 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.vertices)
			}
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if got := tt.mesh.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

// --- Compile-time interface check with a stub kernel ---

// boxSolid records the bounds a stub extrusion would cover.
type boxSolid struct {
	min, max [3]float64
}

func (s *boxSolid) BoundingBox() (min, max [3]float64) {
	return s.min, s.max
}

// boundsKernel extrudes profiles into their bounding boxes. It proves the
// interface is satisfiable without a real modeling backend.
type boundsKernel struct{}

func (boundsKernel) Extrude(p contour.Profile, depth float64, _ int) (Solid, error) {
	lo, hi := p.Outer.Bounds()
	return &boxSolid{
		min: [3]float64{lo.X, lo.Y, 0},
		max: [3]float64{hi.X, hi.Y, depth},
	}, nil
}

func (boundsKernel) Union(solids ...Solid) Solid {
	out := &boxSolid{}
	for i, s := range solids {
		lo, hi := s.BoundingBox()
		if i == 0 {
			out.min, out.max = lo, hi
			continue
		}
		for j := 0; j < 3; j++ {
			out.min[j] = min(out.min[j], lo[j])
			out.max[j] = max(out.max[j], hi[j])
		}
	}
	return out
}

func (boundsKernel) ToMesh(Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

var _ Solid = (*boxSolid)(nil)
var _ Kernel = boundsKernel{}

func TestStubKernelExtrudeAndUnion(t *testing.T) {
	var k Kernel = boundsKernel{}

	disc, err := k.Extrude(contour.Profile{Outer: contour.NewCircle(r2.Vec{}, 2)}, 1, 12)
	if err != nil {
		t.Fatalf("Extrude() error = %v", err)
	}
	boss, err := k.Extrude(contour.Profile{Outer: contour.NewCircle(r2.Vec{}, 1)}, 3, 12)
	if err != nil {
		t.Fatalf("Extrude() error = %v", err)
	}

	min, max := k.Union(disc, boss).BoundingBox()
	if min != [3]float64{-2, -2, 0} {
		t.Errorf("union min = %v, want [-2 -2 0]", min)
	}
	if max != [3]float64{2, 2, 3} {
		t.Errorf("union max = %v, want [2 2 3]", max)
	}

	m, err := k.ToMesh(disc)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return an empty mesh")
	}
}
