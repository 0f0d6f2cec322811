package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/chazu/cogworks/pkg/assembly"
	"github.com/chazu/cogworks/pkg/config"
	"github.com/chazu/cogworks/pkg/kernel"
	"github.com/chazu/cogworks/pkg/kernel/manifold"
	"github.com/chazu/cogworks/pkg/kernel/sdfx"
	"github.com/chazu/cogworks/pkg/pick"
	"github.com/chazu/cogworks/pkg/tessellate"
	"github.com/chazu/cogworks/pkg/thumbnail"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// gearColor is the material color sent with every gear mesh.
const gearColor = "#C9A227"

// DragStatusEvent is emitted with a bool whenever a drag starts or ends.
const DragStatusEvent = "drag-status"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	mu sync.Mutex

	cfg    config.Config
	log    logger.Logger
	kernel kernel.Kernel
	meshes *tessellate.Cache
	engine *assembly.Engine
	camera *pick.PerspectiveCamera
	scene  *sceneRecorder

	// emit publishes frontend events; nil until startup.
	emit func(name string, data ...interface{})
}

// GearData is one gear's transform and preview state.
type GearData struct {
	Handle     uint32  `json:"handle"`
	ToothCount int     `json:"toothCount"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotation   float64 `json:"rotation"`
	Scale      float64 `json:"scale"`
	Marker     string  `json:"marker"`
	Committed  bool    `json:"committed"`
}

// SolidData announces a gear whose mesh the frontend must attach.
type SolidData struct {
	Handle     uint32 `json:"handle"`
	ToothCount int    `json:"toothCount"`
}

// FrameData is everything the frontend needs to draw one frame. Added and
// Removed list scene changes since the previous call.
type FrameData struct {
	Gears    []GearData  `json:"gears"`
	Added    []SolidData `json:"added"`
	Removed  []uint32    `json:"removed"`
	Dragging bool        `json:"dragging"`
	Phase    float64     `json:"phase"`
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices   []float32 `json:"vertices"`
	Normals    []float32 `json:"normals"`
	Indices    []uint32  `json:"indices"`
	ToothCount int       `json:"toothCount"`
	Color      string    `json:"color"`
}

// MeshResult carries a mesh or the reasons it could not be built.
type MeshResult struct {
	Mesh   *MeshData `json:"mesh"`
	Errors []string  `json:"errors"`
}

// PickData is the gear under the pointer, if any.
type PickData struct {
	Handle uint32 `json:"handle"`
	Found  bool   `json:"found"`
}

// LimitsData bounds the tooth-count slider.
type LimitsData struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// sceneRecorder collects solid additions and removals between frames.
// Transforms are read from the engine's frame snapshot instead.
type sceneRecorder struct {
	added   []SolidData
	removed []uint32
}

func (s *sceneRecorder) AddSolid(h assembly.Handle, toothCount int) {
	s.added = append(s.added, SolidData{Handle: uint32(h), ToothCount: toothCount})
}

func (s *sceneRecorder) RemoveSolid(h assembly.Handle) {
	s.removed = append(s.removed, uint32(h))
}

func (s *sceneRecorder) SetTransform(assembly.Handle, r2.Vec, float64, float64) {}

// drain returns and forgets the recorded changes.
func (s *sceneRecorder) drain() ([]SolidData, []uint32) {
	added, removed := s.added, s.removed
	s.added, s.removed = nil, nil
	if added == nil {
		added = []SolidData{}
	}
	if removed == nil {
		removed = []uint32{}
	}
	return added, removed
}

// newKernel returns the configured geometry kernel, falling back to sdfx
// when the manifold backend is not compiled in.
func newKernel(cfg config.Config, log logger.Logger) kernel.Kernel {
	if cfg.Kernel == config.KernelManifold {
		k, err := manifold.New()
		if err == nil {
			return k
		}
		log.Warning(fmt.Sprintf("manifold kernel unavailable, using sdfx: %v", err))
	}
	return sdfx.New(sdfx.MeshCells(cfg.MeshCells))
}

// NewApp creates a new App with a fresh workspace holding the root gear.
func NewApp(cfg config.Config, log logger.Logger) *App {
	a := &App{
		cfg:   cfg,
		log:   log,
		scene: &sceneRecorder{},
		camera: pick.NewPerspectiveCamera(cfg.FOV, 1, cfg.Near, cfg.Far,
			r3.Vec{Z: cfg.CameraZ}, r3.Vec{}),
	}
	a.kernel = newKernel(cfg, log)
	a.meshes = tessellate.NewCache(a.kernel, cfg.Spec(0), tessellate.Depths{
		Base:  cfg.BaseDepth,
		Plate: cfg.PlateDepth,
		Axle:  cfg.AxleDepth,
	})
	a.engine = assembly.New(assembly.Params{
		Template:         cfg.Spec(0),
		CollisionOffset:  cfg.CollisionOffset,
		ConnectionOffset: cfg.ConnectionOffset,
		Scale:            cfg.Scale,
		Speed:            cfg.Speed,
		RootToothCount:   cfg.RootToothCount,
		UpperPlaneOffset: cfg.BaseDepth * cfg.Scale,
	}, assembly.WithScene(a.scene), assembly.WithDragObserver(a.dragStatus))
	return a
}

// startup is called by Wails on app startup. The context is kept so
// events can be emitted to the frontend.
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.emit = func(name string, data ...interface{}) {
		runtime.EventsEmit(ctx, name, data...)
	}
	a.log.Info(fmt.Sprintf("workspace ready: root gear %d teeth, kernel %s", a.cfg.RootToothCount, a.cfg.Kernel))
}

func (a *App) dragStatus(dragging bool) {
	if a.emit != nil {
		a.emit(DragStatusEvent, dragging)
	}
}

// frame snapshots the engine. Callers hold a.mu.
func (a *App) frame() FrameData {
	added, removed := a.scene.drain()
	snap := a.engine.Frame()
	gears := make([]GearData, len(snap))
	for i, g := range snap {
		gears[i] = GearData{
			Handle:     uint32(g.Handle),
			ToothCount: g.ToothCount,
			X:          g.Position.X,
			Y:          g.Position.Y,
			Rotation:   g.Rotation,
			Scale:      g.Scale,
			Marker:     g.Marker.String(),
			Committed:  g.Committed,
		}
	}
	return FrameData{
		Gears:    gears,
		Added:    added,
		Removed:  removed,
		Dragging: a.engine.Dragging(),
		Phase:    a.engine.Phase(),
	}
}

func (a *App) cursor(x, y, width, height float64) assembly.Cursor {
	if height > 0 {
		a.camera.Aspect = width / height
	}
	return assembly.Cursor{X: x, Y: y, Width: width, Height: height}
}

// Tick advances the simulation by dt seconds with the pointer at (x, y)
// in a width×height viewport.
func (a *App) Tick(x, y, width, height, dt float64) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Tick(a.cursor(x, y, width, height), dt, a.camera)
	return a.frame()
}

// BeginDrag starts placing a new gear. Tooth counts outside the configured
// range are clamped.
func (a *App) BeginDrag(toothCount int) FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.cfg.ClampToothCount(toothCount)
	h := a.engine.BeginDrag(n)
	a.log.Debug(fmt.Sprintf("drag %d started with %d teeth", h, n))
	return a.frame()
}

// CommitDrag drops the dragged gear, keeping it only if it meshes.
func (a *App) CommitDrag() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.engine.Dragging() {
		return a.frame()
	}
	if h, ok := a.engine.CommitDrag(); ok {
		a.log.Info(fmt.Sprintf("gear %d placed, meshing with %v", h, a.engine.Connections(h)))
	} else {
		a.log.Debug("drag released at invalid position, gear discarded")
	}
	return a.frame()
}

// CancelDragIfInvalid drops the dragged gear only when it has no valid
// placement.
func (a *App) CancelDragIfInvalid() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engine.CancelDragIfInvalid() {
		a.log.Debug("invalid drag cancelled")
	}
	return a.frame()
}

// Reset clears the workspace back to the root gear.
func (a *App) Reset() FrameData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.Reset()
	a.log.Info("workspace reset")
	return a.frame()
}

// Pick returns the gear under the pointer.
func (a *App) Pick(x, y, width, height float64) PickData {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, ok := a.engine.PickAt(a.cursor(x, y, width, height), a.camera)
	return PickData{Handle: uint32(h), Found: ok}
}

// GearMesh returns the triangle mesh for a gear with toothCount teeth.
// Meshes are built once per tooth count.
func (a *App) GearMesh(toothCount int) MeshResult {
	n := a.cfg.ClampToothCount(toothCount)
	m, err := a.meshes.Get(n)
	if err != nil {
		a.log.Error(fmt.Sprintf("mesh for %d teeth: %v", n, err))
		return MeshResult{Errors: []string{err.Error()}}
	}
	return MeshResult{
		Mesh: &MeshData{
			Vertices:   m.Vertices,
			Normals:    m.Normals,
			Indices:    m.Indices,
			ToothCount: m.ToothCount,
			Color:      gearColor,
		},
		Errors: []string{},
	}
}

// GearThumbnail returns an SVG preview of a gear with toothCount teeth,
// or an empty string if it cannot be drawn.
func (a *App) GearThumbnail(toothCount int) string {
	n := a.cfg.ClampToothCount(toothCount)
	out, err := thumbnail.Render(a.cfg.Spec(n), thumbnail.DefaultOptions())
	if err != nil {
		a.log.Error(fmt.Sprintf("thumbnail for %d teeth: %v", n, err))
		return ""
	}
	return out
}

// Limits returns the tooth-count range for the control panel.
func (a *App) Limits() LimitsData {
	return LimitsData{
		Min:     a.cfg.MinToothCount,
		Max:     a.cfg.MaxToothCount,
		Default: a.cfg.DefaultToothCount,
	}
}
