// Package thumbnail draws flat SVG previews of gears for the control panel.
package thumbnail

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/chazu/cogworks/pkg/cog"
	"github.com/chazu/cogworks/pkg/contour"
	"github.com/jbeda/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// CircleSegments is the number of points used for every circular contour.
const CircleSegments = 12

// Options control the preview's size and colors.
type Options struct {
	Size    int     // width and height in pixels
	Padding float64 // margin around the gear in pixels
	Fill    string
	Stroke  string
}

// DefaultOptions returns the control panel's preview style.
func DefaultOptions() Options {
	return Options{
		Size:    128,
		Padding: 6,
		Fill:    "#d9b36c",
		Stroke:  "#5a4424",
	}
}

// view maps gear coordinates into the square SVG canvas, flipping Y.
type view struct {
	center geom.Coord
	scale  float64
	half   float64
}

func newView(bounds geom.Rect, size int, padding float64) view {
	extent := math.Max(bounds.Width(), bounds.Height())
	avail := float64(size) - 2*padding
	scale := 1.0
	if extent > 0 && avail > 0 {
		scale = avail / extent
	}
	return view{
		center: bounds.Min.Plus(bounds.Max).Times(0.5),
		scale:  scale,
		half:   float64(size) / 2,
	}
}

func (v view) apply(c geom.Coord) geom.Coord {
	d := c.Minus(v.center).Times(v.scale)
	return geom.Coord{X: v.half + d.X, Y: v.half - d.Y}
}

func toCoords(points []r2.Vec) []geom.Coord {
	out := make([]geom.Coord, len(points))
	for i, p := range points {
		out[i] = geom.Coord{X: p.X, Y: p.Y}
	}
	return out
}

func boundsOf(coords []geom.Coord) geom.Rect {
	r := geom.Rect{Min: coords[0], Max: coords[0]}
	for _, c := range coords[1:] {
		r.ExpandToContainCoord(c)
	}
	return r
}

// pathData returns closed SVG path data for points mapped through v.
func pathData(v view, coords []geom.Coord) string {
	var b strings.Builder
	for i, c := range coords {
		p := v.apply(c)
		if i == 0 {
			fmt.Fprintf(&b, "M%.2f %.2f", p.X, p.Y)
			continue
		}
		fmt.Fprintf(&b, " L%.2f %.2f", p.X, p.Y)
	}
	b.WriteString(" Z")
	return b.String()
}

// errWriter remembers the first write error so the SVG writer, which
// ignores errors, can still report one.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// Write renders a preview of the gear described by spec: the tooth outline
// filled, and the rim bore, axle, axle bore and lightening holes stroked.
func Write(w io.Writer, spec cog.Spec, opts Options) error {
	if opts.Size <= 0 {
		return fmt.Errorf("thumbnail: invalid size %d", opts.Size)
	}
	sh := cog.Generate(spec)
	outline := toCoords(sh.Outline.Points)
	if len(outline) < 3 {
		return fmt.Errorf("thumbnail: degenerate outline for %d teeth", spec.ToothCount)
	}
	v := newView(boundsOf(outline), opts.Size, opts.Padding)

	circles := []contour.Contour{sh.RimBore(), sh.Axle(), sh.AxleBore()}
	circles = append(circles, sh.Holes...)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opts.Size, opts.Size)
	canvas.Title(fmt.Sprintf("%d-tooth gear", spec.ToothCount))
	canvas.Path(pathData(v, outline), fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", opts.Fill, opts.Stroke))
	for _, c := range circles {
		canvas.Path(pathData(v, toCoords(c.Sample(CircleSegments))),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", opts.Stroke))
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("thumbnail: %w", ew.err)
	}
	return nil
}

// Render returns the preview as a string.
func Render(spec cog.Spec, opts Options) (string, error) {
	var b strings.Builder
	if err := Write(&b, spec, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}
