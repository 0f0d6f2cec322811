// Package tessellate turns generated gear outlines into solids and
// triangle meshes using a geometry kernel. A gear solid is the union of
// three extrusions: the toothed rim, a thinner backing plate carrying the
// lightening holes, and a bored axle boss.
package tessellate

import (
	"fmt"
	"sync"

	"github.com/chazu/cogworks/pkg/cog"
	"github.com/chazu/cogworks/pkg/contour"
	"github.com/chazu/cogworks/pkg/kernel"
)

// defaultCurveSegments is the curve sampling used for the plate and boss,
// whose outlines are plain circles.
const defaultCurveSegments = 12

// Depths are the extrusion heights of the three gear parts, in gear units
// before display scaling.
type Depths struct {
	Base  float64 `json:"base"`  // toothed rim
	Plate float64 `json:"plate"` // backing plate
	Axle  float64 `json:"axle"`  // axle boss
}

// DefaultDepths matches the proportions of the reference gear model.
var DefaultDepths = Depths{Base: 2, Plate: 1, Axle: 2}

// CurveSegments is the curve sampling for a gear's toothed rim. Gears with
// more teeth are larger and need finer sampling to stay smooth.
func CurveSegments(toothCount int) int {
	return 10 + toothCount/2
}

// part is one extrusion of a gear.
type part struct {
	name     string
	profile  contour.Profile
	depth    float64
	segments int
}

// parts lays out the three extrusions that make up a gear.
func parts(sh cog.Shapes, toothCount int, d Depths) []part {
	return []part{
		{
			name:     "rim",
			profile:  contour.Profile{Outer: sh.Outline, Holes: []contour.Contour{sh.RimBore()}},
			depth:    d.Base,
			segments: CurveSegments(toothCount),
		},
		{
			name:     "plate",
			profile:  contour.Profile{Outer: sh.RimBore(), Holes: sh.Holes},
			depth:    d.Plate,
			segments: defaultCurveSegments,
		},
		{
			name:     "axle",
			profile:  contour.Profile{Outer: sh.Axle(), Holes: []contour.Contour{sh.AxleBore()}},
			depth:    d.Axle,
			segments: defaultCurveSegments,
		},
	}
}

// Solid builds the gear described by spec as a single kernel solid.
// The solid sits on z=0 and is centered on the gear axis.
func Solid(k kernel.Kernel, spec cog.Spec, d Depths) (kernel.Solid, error) {
	sh := cog.Generate(spec)

	var solids []kernel.Solid
	for _, p := range parts(sh, spec.ToothCount, d) {
		s, err := k.Extrude(p.profile, p.depth, p.segments)
		if err != nil {
			return nil, fmt.Errorf("tessellate: extrude %s of %d-tooth gear: %w", p.name, spec.ToothCount, err)
		}
		solids = append(solids, s)
	}
	return k.Union(solids...), nil
}

// Mesh builds and triangulates the gear described by spec.
func Mesh(k kernel.Kernel, spec cog.Spec, d Depths) (*kernel.Mesh, error) {
	s, err := Solid(k, spec, d)
	if err != nil {
		return nil, err
	}
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %d-tooth gear: %w", spec.ToothCount, err)
	}
	m.ToothCount = spec.ToothCount
	return m, nil
}

// Cache memoizes gear meshes by tooth count. Every gear with the same
// tooth count shares one mesh; the caller positions and rotates it.
// It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	kernel   kernel.Kernel
	template cog.Spec
	depths   Depths
	meshes   map[int]*kernel.Mesh
}

// NewCache returns a cache that builds gears from template with the tooth
// count replaced per request.
func NewCache(k kernel.Kernel, template cog.Spec, d Depths) *Cache {
	return &Cache{
		kernel:   k,
		template: template,
		depths:   d,
		meshes:   make(map[int]*kernel.Mesh),
	}
}

// Get returns the mesh for a gear with toothCount teeth, building it on
// first use. Failed builds are not cached.
func (c *Cache) Get(toothCount int) (*kernel.Mesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.meshes[toothCount]; ok {
		return m, nil
	}
	m, err := Mesh(c.kernel, c.template.WithToothCount(toothCount), c.depths)
	if err != nil {
		return nil, err
	}
	c.meshes[toothCount] = m
	return m, nil
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}
