package assembly

import (
	"github.com/chazu/cogworks/pkg/cog"
	"github.com/chazu/cogworks/pkg/graph"
	"github.com/chazu/cogworks/pkg/pick"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Params are the fixed tuning values of an Engine.
type Params struct {
	// Template supplies the tooth widths; its ToothCount is ignored.
	Template         cog.Spec
	CollisionOffset  float64
	ConnectionOffset float64
	// Scale converts gear units into world units.
	Scale float64
	// Speed is the phase advance per unit of tick time.
	Speed          float64
	RootToothCount int
	// UpperPlaneOffset is the height of the gears' top faces in world
	// units, used by PickAt.
	UpperPlaneOffset float64
}

// DefaultParams returns the stock workspace tuning.
func DefaultParams() Params {
	return Params{
		Template: cog.Spec{
			ToothTopWidth:    1.5,
			ToothValleyWidth: 1.65,
			ToothHeight:      2.5,
			SlopeWidth:       0.7,
		},
		CollisionOffset:  0.5,
		ConnectionOffset: 0.5,
		Scale:            0.1,
		Speed:            1,
		RootToothCount:   20,
		UpperPlaneOffset: 0.2,
	}
}

// Scene receives the renderable side effects of the engine.
type Scene interface {
	AddSolid(h Handle, toothCount int)
	RemoveSolid(h Handle)
	SetTransform(h Handle, position r2.Vec, rotation, scale float64)
}

type nopScene struct{}

func (nopScene) AddSolid(Handle, int)                        {}
func (nopScene) RemoveSolid(Handle)                          {}
func (nopScene) SetTransform(Handle, r2.Vec, float64, float64) {}

// Option configures an Engine.
type Option func(*Engine)

// WithScene attaches a scene that mirrors gear creation, removal and
// per-tick transforms.
func WithScene(s Scene) Option {
	return func(e *Engine) {
		if s != nil {
			e.scene = s
		}
	}
}

// WithDragObserver registers fn to be told when a drag starts or ends.
func WithDragObserver(fn func(dragging bool)) Option {
	return func(e *Engine) { e.onDrag = fn }
}

// Placement is the outcome of fitting the drag gear at a cursor position.
type Placement struct {
	Valid        bool
	Parent       Handle
	Position     r2.Vec
	BaseRotation float64
	Direction    float64
}

type dragState struct {
	gear      Gear
	placement Placement
	rotation  float64 // last displayed rotation
}

// Cursor is a pointer position in a viewport of the given size.
type Cursor struct {
	X, Y          float64
	Width, Height float64
}

// Engine owns the committed gears, their connection graph and the single
// drag slot. It is not safe for concurrent use.
type Engine struct {
	params Params
	scene  Scene
	onDrag func(bool)

	gears []Gear
	index map[Handle]int
	links *graph.Adjacency
	drag  *dragState

	phase  float64
	cursor r2.Vec
	next   Handle
}

// New returns an engine holding only the root gear.
func New(params Params, opts ...Option) *Engine {
	e := &Engine{
		params: params,
		scene:  nopScene{},
		index:  make(map[Handle]int),
		links:  graph.NewAdjacency(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.addRoot()
	return e
}

// Params returns the engine's tuning.
func (e *Engine) Params() Params { return e.params }

func (e *Engine) spec(toothCount int) cog.Spec {
	return e.params.Template.WithToothCount(toothCount)
}

func (e *Engine) allocate(toothCount int) Gear {
	e.next++
	g := newGear(e.next, e.spec(toothCount))
	e.scene.AddSolid(g.Handle, toothCount)
	return g
}

func (e *Engine) addRoot() {
	e.commit(e.allocate(e.params.RootToothCount))
}

func (e *Engine) commit(g Gear) {
	e.index[g.Handle] = len(e.gears)
	e.gears = append(e.gears, g)
}

func (e *Engine) notify(dragging bool) {
	if e.onDrag != nil {
		e.onDrag(dragging)
	}
}

// BeginDrag starts dragging a new gear, discarding any gear already being
// dragged. It returns the new gear's handle.
func (e *Engine) BeginDrag(toothCount int) Handle {
	e.discardDrag()
	g := e.allocate(toothCount)
	g.Position = e.cursor
	e.drag = &dragState{gear: g}
	e.notify(true)
	return g.Handle
}

func (e *Engine) discardDrag() bool {
	if e.drag == nil {
		return false
	}
	e.scene.RemoveSolid(e.drag.gear.Handle)
	e.drag = nil
	return true
}

// Tick unprojects the cursor onto the base plane and advances the
// workspace. A cursor that misses the plane keeps the previous position.
func (e *Engine) Tick(c Cursor, dt float64, cam pick.Camera) {
	if p, ok := pick.ScreenToWorld(c.X, c.Y, c.Width, c.Height, cam, 0); ok {
		e.cursor = r2.Vec{X: p.X, Y: p.Y}
	}
	e.TickAt(e.cursor, dt)
}

// TickAt advances the phase clock by dt, refits the drag gear at the world
// position cursor and pushes every transform to the scene.
func (e *Engine) TickAt(cursor r2.Vec, dt float64) {
	e.phase += dt * e.params.Speed
	e.cursor = cursor

	for _, g := range e.gears {
		e.scene.SetTransform(g.Handle, g.Position, g.Rotation(e.phase), e.params.Scale)
	}
	if e.drag == nil {
		return
	}

	d := e.drag
	p := e.Place(d.gear, cursor)
	d.placement = p
	d.gear.Position = p.Position
	if p.Valid {
		d.gear.BaseRotation = p.BaseRotation
		d.gear.Direction = p.Direction
		d.rotation = d.gear.Rotation(e.phase)
	}
	e.scene.SetTransform(d.gear.Handle, d.gear.Position, d.rotation, e.params.Scale)
}

// Place fits g at the world position cursor against the committed gears.
// An invalid placement leaves the gear at the cursor.
func (e *Engine) Place(g Gear, cursor r2.Vec) Placement {
	invalid := Placement{Position: cursor, BaseRotation: g.BaseRotation, Direction: g.Direction}

	parent, ok := e.closestColliding(cursor, g.OuterRadius)
	if !ok {
		return invalid
	}

	dir := r2.Sub(cursor, parent.Position)
	if r2.Norm2(dir) == 0 {
		dir = r2.Vec{X: 1}
	} else {
		dir = r2.Unit(dir)
	}

	dist := SnapDistance(parent.InnerRadius, g.InnerRadius,
		e.params.Template.ToothHeight, e.params.ConnectionOffset, e.params.Scale)
	pos := r2.Add(parent.Position, r2.Scale(dist, dir))

	if e.anyColliding(pos, g.OuterRadius, parent.Handle) {
		return invalid
	}

	return Placement{
		Valid:        true,
		Parent:       parent.Handle,
		Position:     pos,
		BaseRotation: MeshingRotation(parent, dir, g.ToothCount),
		Direction:    -parent.Direction,
	}
}

func (e *Engine) collides(pos r2.Vec, outer float64, g Gear) bool {
	d := r2.Norm(r2.Sub(g.Position, pos))
	return Overlaps(d, g.OuterRadius, outer, e.params.CollisionOffset, e.params.Scale)
}

// closestColliding returns the nearest committed gear overlapping a disc
// of radius outer at pos. Ties go to the earliest committed gear.
func (e *Engine) closestColliding(pos r2.Vec, outer float64) (Gear, bool) {
	hits := lo.Filter(e.gears, func(g Gear, _ int) bool {
		return e.collides(pos, outer, g)
	})
	if len(hits) == 0 {
		return Gear{}, false
	}
	return lo.MinBy(hits, func(a, b Gear) bool {
		return r2.Norm(r2.Sub(a.Position, pos)) < r2.Norm(r2.Sub(b.Position, pos))
	}), true
}

func (e *Engine) anyColliding(pos r2.Vec, outer float64, ignore ...Handle) bool {
	return lo.ContainsBy(e.gears, func(g Gear) bool {
		return !lo.Contains(ignore, g.Handle) && e.collides(pos, outer, g)
	})
}

// CommitDrag ends the drag. A validly placed gear joins the assembly,
// connected to its parent, and its handle is returned; an invalid one is
// discarded. It is a no-op without a drag.
func (e *Engine) CommitDrag() (Handle, bool) {
	d := e.drag
	if d == nil {
		return 0, false
	}
	e.notify(false)
	if !d.placement.Valid {
		e.discardDrag()
		return 0, false
	}

	g := d.gear
	g.Position = d.placement.Position
	g.BaseRotation = d.placement.BaseRotation
	g.Direction = d.placement.Direction
	e.commit(g)
	e.links.Connect(g.Handle, d.placement.Parent)
	e.drag = nil
	return g.Handle, true
}

// CancelDragIfInvalid discards the drag gear if its current placement is
// invalid and reports whether it did.
func (e *Engine) CancelDragIfInvalid() bool {
	if e.drag == nil || e.drag.placement.Valid {
		return false
	}
	e.discardDrag()
	e.notify(false)
	return true
}

// Reset removes every gear, including any drag gear, and recreates the
// root gear at the origin. The phase clock keeps running.
func (e *Engine) Reset() {
	if e.discardDrag() {
		e.notify(false)
	}
	for _, g := range e.gears {
		e.scene.RemoveSolid(g.Handle)
	}
	e.gears = e.gears[:0]
	clear(e.index)
	e.links.Clear()
	e.addRoot()
}

// PickAt returns the gear under the cursor. The top faces are tested
// before the base plane, and gears with two or more connections are
// never picked.
func (e *Engine) PickAt(c Cursor, cam pick.Camera) (Handle, bool) {
	pickable := lo.Filter(e.gears, func(g Gear, _ int) bool {
		return e.links.Degree(g.Handle) < 2
	})
	if len(pickable) == 0 {
		return 0, false
	}

	for _, offset := range []float64{e.params.UpperPlaneOffset, 0} {
		p, ok := pick.ScreenToWorld(c.X, c.Y, c.Width, c.Height, cam, offset)
		if !ok {
			continue
		}
		at := r2.Vec{X: p.X, Y: p.Y}
		g, found := lo.Find(pickable, func(g Gear) bool {
			return r2.Norm(r2.Sub(g.Position, at)) < g.OuterRadius*e.params.Scale
		})
		if found {
			return g.Handle, true
		}
	}
	return 0, false
}
