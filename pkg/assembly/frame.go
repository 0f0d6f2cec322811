package assembly

import (
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/spatial/r2"
)

// GearFrame is the drawable state of one gear at the current phase.
type GearFrame struct {
	Handle     Handle  `json:"handle"`
	ToothCount int     `json:"toothCount"`
	Position   r2.Vec  `json:"position"`
	Rotation   float64 `json:"rotation"`
	Scale      float64 `json:"scale"`
	Marker     Marker  `json:"marker"`
	Committed  bool    `json:"committed"`
}

// Frame returns every committed gear in commit order followed by the drag
// gear, if any.
func (e *Engine) Frame() []GearFrame {
	out := lo.Map(e.gears, func(g Gear, _ int) GearFrame {
		return GearFrame{
			Handle:     g.Handle,
			ToothCount: g.ToothCount,
			Position:   g.Position,
			Rotation:   g.Rotation(e.phase),
			Scale:      e.params.Scale,
			Marker:     MarkerNormal,
			Committed:  true,
		}
	})
	if d := e.drag; d != nil {
		m := MarkerInvalid
		if d.placement.Valid {
			m = MarkerValid
		}
		out = append(out, GearFrame{
			Handle:     d.gear.Handle,
			ToothCount: d.gear.ToothCount,
			Position:   d.gear.Position,
			Rotation:   d.rotation,
			Scale:      e.params.Scale,
			Marker:     m,
		})
	}
	return out
}

// Gears returns a copy of the committed gears in commit order.
func (e *Engine) Gears() []Gear {
	return slices.Clone(e.gears)
}

// Gear looks up a committed gear.
func (e *Engine) Gear(h Handle) (Gear, bool) {
	i, ok := e.index[h]
	if !ok {
		return Gear{}, false
	}
	return e.gears[i], true
}

// Drag returns the drag gear and its latest placement.
func (e *Engine) Drag() (Gear, Placement, bool) {
	if e.drag == nil {
		return Gear{}, Placement{}, false
	}
	return e.drag.gear, e.drag.placement, true
}

// Dragging reports whether a gear is being dragged.
func (e *Engine) Dragging() bool { return e.drag != nil }

// Connections returns the handles of the gears meshed with h.
func (e *Engine) Connections(h Handle) []Handle {
	return e.links.Neighbors(h)
}

// Phase returns the accumulated phase clock.
func (e *Engine) Phase() float64 { return e.phase }

// Cursor returns the last world-space cursor position.
func (e *Engine) Cursor() r2.Vec { return e.cursor }
