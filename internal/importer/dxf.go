package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// Drawing units commonly found in pool drawings, in meters per unit.
const (
	UnitMillimeters = 0.001
	UnitCentimeters = 0.01
	UnitMeters      = 1.0
)

// MinOutlineSize is the smallest bounding box side, in meters, accepted as
// a pool outline.
const MinOutlineSize = 0.5

// arcSegments is the number of chords used per arc or bulge.
const arcSegments = 32

// OutlineResult holds a pool outline read from a drawing.
type OutlineResult struct {
	Outline  model.Outline
	Errors   []string
	Warnings []string
}

// segment is a line between two points, used to chain loose LINE and ARC
// entities into closed outlines.
type segment struct {
	start, end model.Point2D
}

// ImportOutlineDXF reads the basin outline of a custom pool from a DXF file.
// Closed LWPOLYLINEs, CIRCLEs and chains of LINEs and ARCs are collected;
// the one enclosing the largest area is the pool. Coordinates are multiplied
// by unit (meters per drawing unit) and moved to the origin.
func ImportOutlineDXF(path string, unit float64) OutlineResult {
	result := OutlineResult{}
	if unit <= 0 {
		unit = UnitMeters
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if outline := lwPolylineToOutline(e); len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e, 2*arcSegments))
		case *entity.Arc:
			segments = append(segments, pointsToSegments(arcToPoints(e, arcSegments))...)
		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})
		}
	}
	// Endpoints closer than a millimetre are joined.
	closed, open := chainSegments(segments, 0.001/unit)
	outlines = append(outlines, closed...)
	if open > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d open line chain(s)", open))
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].Area() > outlines[j].Area()
	})
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest as the pool outline", len(outlines)))
	}

	outline := scaleOutline(outlines[0], unit).Normalized()
	w, h := outline.Size()
	if w < MinOutlineSize || h < MinOutlineSize {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Pool outline is too small (%.2f x %.2f m); check the drawing unit", w, h))
		return result
	}
	result.Outline = outline
	return result
}

// CustomPool returns pool dimensions for an imported outline.
func CustomPool(outline model.Outline, depth float64) model.PoolDimensions {
	l, w := outline.Size()
	return model.PoolDimensions{
		Shape:   model.ShapeCustom,
		Length:  l,
		Width:   w,
		Depth:   depth,
		Outline: outline,
	}
}

func scaleOutline(o model.Outline, unit float64) model.Outline {
	out := make(model.Outline, len(o))
	for i, p := range o {
		out[i] = model.Point2D{X: p.X * unit, Y: p.Y * unit}
	}
	return out
}

// lwPolylineToOutline converts a LWPOLYLINE to an outline, expanding
// bulged vertices into arc points.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		current := model.Point2D{X: v[0], Y: v[1]}
		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			outline = append(outline, current)
			continue
		}
		nv := lw.Vertices[(i+1)%n]
		arc := bulgeArcPoints(current, model.Point2D{X: nv[0], Y: nv[1]}, lw.Bulges[i], arcSegments)
		// The next vertex adds the arc's end point.
		outline = append(outline, arc[:len(arc)-1]...)
	}
	return outline
}

// bulgeArcPoints returns points along the arc from p1 to p2 described by a
// DXF bulge, the tangent of a quarter of the included angle. Positive
// bulges turn counter-clockwise.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, n int) model.Outline {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return model.Outline{p1, p2}
	}

	sweep := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Sin(math.Abs(sweep)/2))
	// Distance from chord midpoint to centre, signed towards the arc's inside.
	toCentre := radius * math.Cos(sweep/2)
	if bulge < 0 {
		toCentre = -toCentre
	}
	cx := (p1.X+p2.X)/2 - dy/chord*toCentre
	cy := (p1.Y+p2.Y)/2 + dx/chord*toCentre

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	pts := make(model.Outline, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		pts[i] = model.Point2D{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	pts[n] = p2
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, n int) model.Outline {
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	outline := make(model.Outline, n)
	for i := range outline {
		a := 2 * math.Pi * float64(i) / float64(n)
		outline[i] = model.Point2D{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return outline
}

// arcToPoints converts an ARC to n+1 points from its start to end angle,
// counter-clockwise.
func arcToPoints(a *entity.Arc, n int) []model.Point2D {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}
	pts := make([]model.Point2D, n+1)
	for i := range pts {
		t := start + (end-start)*float64(i)/float64(n)
		pts[i] = model.Point2D{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
	}
	return pts
}

func pointsToSegments(pts []model.Point2D) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, segment{start: pts[i-1], end: pts[i]})
	}
	return segs
}

// chainSegments joins segments whose endpoints meet within tol. It returns
// the closed chains and the number of chains left open.
func chainSegments(segs []segment, tol float64) ([]model.Outline, int) {
	used := make([]bool, len(segs))
	var closed []model.Outline
	open := 0

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := []model.Point2D{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				var next model.Point2D
				switch {
				case near(tail, seg.start, tol):
					next = seg.end
				case near(tail, seg.end, tol):
					next = seg.start
				default:
					continue
				}
				chain = append(chain, next)
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && near(chain[0], chain[len(chain)-1], tol) {
			closed = append(closed, model.Outline(chain[:len(chain)-1]))
		} else {
			open++
		}
	}
	return closed, open
}

func near(a, b model.Point2D, tol float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tol
}
