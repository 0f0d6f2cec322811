package cog

import (
	"math"

	"github.com/chazu/cogworks/pkg/contour"
	"gonum.org/v1/gonum/spatial/r2"
)

// LighteningHoleMinTeeth is the smallest tooth count that gets lightening
// holes. Smaller gears have no room between rim and axle.
const LighteningHoleMinTeeth = 14

// Shapes is the generated 2D geometry of one gear.
type Shapes struct {
	// Outline is the toothed outer silhouette.
	Outline contour.Contour
	// Holes are the lightening holes punched through the backing plate.
	Holes []contour.Contour

	InnerRadius    float64
	OuterRadius    float64
	RimWidth       float64
	AxleRadius     float64
	AxleHoleRadius float64
	HoleCount      int
}

// RimBore is the circular opening inside the toothed rim.
func (s Shapes) RimBore() contour.Contour {
	return contour.NewCircle(r2.Vec{}, s.InnerRadius-s.RimWidth)
}

// Axle is the outline of the central boss.
func (s Shapes) Axle() contour.Contour {
	return contour.NewCircle(r2.Vec{}, s.AxleRadius)
}

// AxleBore is the hole through the axle boss.
func (s Shapes) AxleBore() contour.Contour {
	return contour.NewCircle(r2.Vec{}, s.AxleHoleRadius)
}

// Generate builds the tooth outline and hole contours for spec.
//
// The outline alternates valley arcs on the pitch circle with tooth tops.
// A tooth top is its pitch arc pushed outward by ToothHeight along the
// normal of the arc's chord, so every top is a flat bump and the slopes
// come from the angular gap between valley and top. Point density along
// both arcs is 1 + 3/innerRadius points per unit of arc length.
func Generate(spec Spec) Shapes {
	dims := CalculateDimensions(spec)
	innerRadius := dims.InnerRadius

	resolution := 1 + 3/innerRadius
	valleyPoints := int(math.Ceil(spec.ToothValleyWidth * resolution))
	topPoints := int(math.Ceil(spec.ToothTopWidth * resolution))

	toAngle := func(width float64) float64 {
		return width / dims.InnerCircumference * 2 * math.Pi
	}
	valleyAngle := toAngle(spec.ToothValleyWidth)
	topAngle := toAngle(spec.ToothTopWidth)
	slopeAngle := toAngle(spec.SlopeWidth)
	toothAngle := valleyAngle + topAngle + 2*slopeAngle

	startOffset := slopeAngle * 0.5 * (spec.ToothTopWidth / spec.ToothValleyWidth)

	points := make([]r2.Vec, 0, spec.ToothCount*(valleyPoints+topPoints))
	for i := 0; i < spec.ToothCount; i++ {
		valleyStart := startOffset + float64(i)*toothAngle
		for j := 0; j < valleyPoints; j++ {
			a := valleyStart + valleyAngle*fraction(j, valleyPoints)
			points = append(points, r2.Scale(innerRadius, unit(a)))
		}

		topStart := startOffset + float64(i+1)*valleyAngle + float64(i)*(topAngle+2*slopeAngle) + slopeAngle
		chord := r2.Sub(unit(topStart+topAngle), unit(topStart))
		lift := r2.Scale(spec.ToothHeight, r2.Unit(r2.Vec{X: chord.Y, Y: -chord.X}))
		for j := 0; j < topPoints; j++ {
			a := topStart + topAngle*fraction(j, topPoints)
			points = append(points, r2.Add(r2.Scale(innerRadius, unit(a)), lift))
		}
	}

	shapes := Shapes{
		Outline:     contour.NewPolygon(points),
		InnerRadius: innerRadius,
		OuterRadius: dims.OuterRadius,
		RimWidth:    0.1 + innerRadius*0.1,
		AxleRadius:  innerRadius * 0.3,
	}
	shapes.AxleHoleRadius = shapes.AxleRadius * 0.4

	if spec.ToothCount >= LighteningHoleMinTeeth {
		shapes.Holes = lighteningHoles(innerRadius, shapes.RimWidth, shapes.AxleRadius)
		shapes.HoleCount = len(shapes.Holes)
	}
	return shapes
}

// lighteningHoles spaces circular holes evenly on the ring halfway between
// axle and rim, as many as fit while covering about 70% of the ring.
func lighteningHoles(innerRadius, rimWidth, axleRadius float64) []contour.Contour {
	gap := innerRadius - rimWidth - axleRadius
	midRadius := axleRadius + gap*0.5
	holeRadius := gap * 0.5 * 0.8

	count := int(math.Floor(2 * math.Pi * midRadius * 0.7 / (2 * holeRadius)))
	holes := make([]contour.Contour, 0, count)
	for i := 0; i < count; i++ {
		a := 2 * math.Pi / float64(count) * float64(i)
		holes = append(holes, contour.NewCircle(r2.Scale(midRadius, unit(a)), holeRadius))
	}
	return holes
}

func unit(angle float64) r2.Vec {
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// fraction maps step i of n onto [0, 1]. A single step sits at 0.
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
