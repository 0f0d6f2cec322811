package main

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/chazu/cogworks/pkg/config"
)

// recordingLogger satisfies the Wails logger.Logger interface and keeps
// every line for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+msg)
}

func (l *recordingLogger) Print(m string)   { l.add("PRINT", m) }
func (l *recordingLogger) Trace(m string)   { l.add("TRACE", m) }
func (l *recordingLogger) Debug(m string)   { l.add("DEBUG", m) }
func (l *recordingLogger) Info(m string)    { l.add("INFO", m) }
func (l *recordingLogger) Warning(m string) { l.add("WARN", m) }
func (l *recordingLogger) Error(m string)   { l.add("ERROR", m) }
func (l *recordingLogger) Fatal(m string)   { l.add("FATAL", m) }

func (l *recordingLogger) contains(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.ContainsFunc(l.lines, func(s string) bool { return strings.HasPrefix(s, prefix) })
}

const (
	viewW = 800.0
	viewH = 600.0
)

// pixelFor returns the screen position whose ray meets the base plane at
// world (x, y) with the default camera.
func pixelFor(cfg config.Config, x, y float64) (float64, float64) {
	t := math.Tan(cfg.FOV * math.Pi / 360)
	aspect := viewW / viewH
	ndcX := x / cfg.CameraZ / (t * aspect)
	ndcY := y / cfg.CameraZ / t
	return (ndcX + 1) * viewW / 2, (1 - ndcY) * viewH / 2
}

// newTestApp returns an App with a coarse mesher and recorded events.
func newTestApp(t *testing.T) (*App, *recordingLogger, *[]bool) {
	t.Helper()
	cfg := config.Default()
	cfg.MeshCells = 40
	log := &recordingLogger{}
	app := NewApp(cfg, log)

	var events []bool
	app.emit = func(name string, data ...interface{}) {
		if name != DragStatusEvent {
			t.Errorf("unexpected event %q", name)
			return
		}
		events = append(events, data[0].(bool))
	}
	return app, log, &events
}

// TestE2EPlaceGear drives the same sequence the frontend does: tick,
// start a drag, move over the root gear, release.
func TestE2EPlaceGear(t *testing.T) {
	app, log, events := newTestApp(t)

	f := app.Tick(viewW/2, viewH/2, viewW, viewH, 0)
	if len(f.Gears) != 1 || f.Gears[0].ToothCount != 20 || !f.Gears[0].Committed {
		t.Fatalf("initial frame = %+v, want the root gear", f.Gears)
	}
	if len(f.Added) != 1 || f.Added[0].ToothCount != 20 {
		t.Errorf("initial frame should announce the root solid, got %+v", f.Added)
	}

	f = app.BeginDrag(10)
	if !f.Dragging || len(f.Added) != 1 || f.Added[0].ToothCount != 10 {
		t.Fatalf("BeginDrag frame = %+v", f)
	}
	dragHandle := f.Added[0].Handle

	x, y := pixelFor(app.cfg, 0, 2)
	f = app.Tick(x, y, viewW, viewH, 0.016)
	drag := f.Gears[len(f.Gears)-1]
	if drag.Handle != dragHandle || drag.Marker != "valid" || drag.Committed {
		t.Fatalf("drag gear = %+v, want valid preview", drag)
	}
	if math.Abs(drag.X) > 1e-6 || math.Abs(drag.Y-2.47247) > 1e-4 {
		t.Errorf("drag gear at (%f, %f), want snapped above root", drag.X, drag.Y)
	}
	if len(f.Added) != 0 {
		t.Errorf("added should be drained, got %+v", f.Added)
	}

	f = app.CommitDrag()
	if f.Dragging || len(f.Gears) != 2 {
		t.Fatalf("after commit: dragging=%v gears=%d", f.Dragging, len(f.Gears))
	}
	for _, g := range f.Gears {
		if !g.Committed || g.Marker != "normal" {
			t.Errorf("gear %d: committed=%v marker=%s", g.Handle, g.Committed, g.Marker)
		}
	}
	if !slices.Equal(*events, []bool{true, false}) {
		t.Errorf("drag-status events = %v, want [true false]", *events)
	}
	if !log.contains(fmt.Sprintf("INFO: gear %d placed", dragHandle)) {
		t.Errorf("placement not logged: %v", log.lines)
	}
}

// TestE2EMeshedGearsCounterRotate checks the rotation each frame reports.
func TestE2EMeshedGearsCounterRotate(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.BeginDrag(10)
	x, y := pixelFor(app.cfg, 0, 2)
	app.Tick(x, y, viewW, viewH, 0)
	app.CommitDrag()

	before := app.Tick(x, y, viewW, viewH, 0)
	after := app.Tick(x, y, viewW, viewH, 1.5)

	root0, root1 := before.Gears[0].Rotation, after.Gears[0].Rotation
	child0, child1 := before.Gears[1].Rotation, after.Gears[1].Rotation
	if got, want := root1-root0, 1.5/20; math.Abs(got-want) > 1e-12 {
		t.Errorf("root turned %v, want %v", got, want)
	}
	if got, want := child1-child0, -1.5/10; math.Abs(got-want) > 1e-12 {
		t.Errorf("child turned %v, want %v", got, want)
	}
	if after.Phase != 1.5 {
		t.Errorf("phase = %v, want 1.5", after.Phase)
	}
}

// TestE2EGearMesh builds a real mesh through the sdfx kernel.
func TestE2EGearMesh(t *testing.T) {
	app, _, _ := newTestApp(t)

	res := app.GearMesh(12)
	if len(res.Errors) != 0 {
		t.Fatalf("GearMesh errors: %v", res.Errors)
	}
	m := res.Mesh
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		t.Fatal("mesh should have geometry")
	}
	if len(m.Vertices) != len(m.Normals) {
		t.Errorf("vertices %d != normals %d", len(m.Vertices), len(m.Normals))
	}
	if m.ToothCount != 12 || m.Color == "" {
		t.Errorf("mesh metadata = %d/%q", m.ToothCount, m.Color)
	}

	app.GearMesh(12)
	if app.meshes.Len() != 1 {
		t.Errorf("cache holds %d meshes, want 1", app.meshes.Len())
	}
}

func TestE2EGearThumbnail(t *testing.T) {
	app, _, _ := newTestApp(t)
	out := app.GearThumbnail(16)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "16-tooth gear") {
		t.Errorf("unexpected thumbnail:\n%s", out)
	}
}
