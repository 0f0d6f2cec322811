package thumbnail

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/chazu/cogworks/pkg/cog"
	"github.com/jbeda/geom"
)

func gearSpec(teeth int) cog.Spec {
	return cog.Spec{
		ToothCount:       teeth,
		ToothTopWidth:    1.5,
		ToothValleyWidth: 1.65,
		ToothHeight:      2.5,
		SlopeWidth:       0.7,
	}
}

var coordRE = regexp.MustCompile(`[ML](-?[0-9.]+) (-?[0-9.]+)`)

func TestRenderStructure(t *testing.T) {
	tests := []struct {
		teeth int
		paths int
	}{
		{8, 4},
		{13, 4},
		{20, 4 + cog.Generate(gearSpec(20)).HoleCount},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.teeth), func(t *testing.T) {
			out, err := Render(gearSpec(tt.teeth), DefaultOptions())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
				t.Errorf("not a complete SVG document:\n%s", out)
			}
			if n := strings.Count(out, "<path"); n != tt.paths {
				t.Errorf("got %d paths, want %d", n, tt.paths)
			}
			if want := strconv.Itoa(tt.teeth) + "-tooth gear"; !strings.Contains(out, want) {
				t.Errorf("missing title %q", want)
			}
		})
	}
}

func TestRenderFitsCanvas(t *testing.T) {
	opts := DefaultOptions()
	out, err := Render(gearSpec(33), opts)
	if err != nil {
		t.Fatal(err)
	}
	matches := coordRE.FindAllStringSubmatch(out, -1)
	if len(matches) == 0 {
		t.Fatal("no path coordinates found")
	}
	lo, hi := opts.Padding-0.01, float64(opts.Size)-opts.Padding+0.01
	var minX, maxX = math.Inf(1), math.Inf(-1)
	for _, m := range matches {
		x, _ := strconv.ParseFloat(m[1], 64)
		y, _ := strconv.ParseFloat(m[2], 64)
		if x < lo || x > hi || y < lo || y > hi {
			t.Fatalf("point (%v, %v) outside padded canvas", x, y)
		}
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
	}
	if span := maxX - minX; span < float64(opts.Size)-2*opts.Padding-2 {
		t.Errorf("gear spans %v px, expected it to fill the canvas", span)
	}
}

func TestViewFlipsAndCenters(t *testing.T) {
	bounds := geom.Rect{Min: geom.Coord{X: -10, Y: -5}, Max: geom.Coord{X: 10, Y: 5}}
	v := newView(bounds, 100, 10)

	tests := []struct {
		in, want geom.Coord
	}{
		{geom.Coord{X: 0, Y: 0}, geom.Coord{X: 50, Y: 50}},
		{geom.Coord{X: 10, Y: 0}, geom.Coord{X: 90, Y: 50}},
		{geom.Coord{X: -10, Y: 5}, geom.Coord{X: 10, Y: 30}},
	}
	for _, tt := range tests {
		got := v.apply(tt.in)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteErrors(t *testing.T) {
	if err := Write(failingWriter{}, gearSpec(10), DefaultOptions()); !errors.Is(err, errDiskFull) {
		t.Errorf("Write to failing writer = %v, want %v", err, errDiskFull)
	}
	opts := DefaultOptions()
	opts.Size = 0
	if err := Write(&strings.Builder{}, gearSpec(10), opts); err == nil {
		t.Error("zero size should be rejected")
	}
}
