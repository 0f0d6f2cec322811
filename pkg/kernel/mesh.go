package kernel

// Mesh is a triangulated gear ready for upload to a vertex buffer. Vertices
// and Normals hold one xyz triple per vertex; Indices hold one index triple
// per triangle, counter-clockwise seen from outside the solid.
type Mesh struct {
	Vertices   []float32 `json:"vertices"`
	Normals    []float32 `json:"normals"`
	Indices    []uint32  `json:"indices"`
	ToothCount int       `json:"toothCount"`
}

// VertexCount is the number of xyz triples in Vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount is the number of index triples in Indices.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the kernel produced no surface at all.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }
