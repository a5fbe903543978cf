package model

import (
	"fmt"
	"math"
)

// RollWidth is the physical width of a foil roll in meters.
// Only the two values below exist in the trade.
type RollWidth float64

const (
	RollNarrow RollWidth = 1.65
	RollWide   RollWidth = 2.05
)

// RollWidths lists the available widths, narrow first.
var RollWidths = []RollWidth{RollNarrow, RollWide}

func (w RollWidth) String() string {
	return fmt.Sprintf("%.2fm", float64(w))
}

// Valid reports whether w is one of the two physical roll widths.
func (w RollWidth) Valid() bool {
	return w == RollNarrow || w == RollWide
}

// Meters returns the width as a plain float.
func (w RollWidth) Meters() float64 {
	return float64(w)
}

// FoilSubtype identifies the foil product family chosen for the pool.
type FoilSubtype string

const (
	SubtypeStandard   FoilSubtype = "standard"   // Plain reinforced liner, both widths available
	SubtypePrinted    FoilSubtype = "printed"    // Pattern-printed liner, narrow rolls only
	SubtypeStructural FoilSubtype = "structural" // Embossed anti-slip liner, narrow rolls only
)

// NarrowOnly reports whether the subtype is only manufactured on 1.65m rolls.
func (s FoilSubtype) NarrowOnly() bool {
	return s == SubtypePrinted || s == SubtypeStructural
}

// Valid reports whether s is a known subtype.
func (s FoilSubtype) Valid() bool {
	switch s {
	case SubtypeStandard, SubtypePrinted, SubtypeStructural:
		return true
	}
	return false
}

// AllowedWidths returns the roll widths the subtype may use.
func (s FoilSubtype) AllowedWidths() []RollWidth {
	if s.NarrowOnly() {
		return []RollWidth{RollNarrow}
	}
	return RollWidths
}

// FoilAssignment says which foil a surface is lined with.
type FoilAssignment string

const (
	FoilMain       FoilAssignment = "main"       // The pool's chosen liner
	FoilStructural FoilAssignment = "structural" // Anti-slip liner, narrow only
)

// SurfaceKey names a physical area that needs foil. Declaration order
// below is also the packing order.
type SurfaceKey string

const (
	SurfaceBottom       SurfaceKey = "bottom"
	SurfaceWalls        SurfaceKey = "walls"
	SurfaceStairs       SurfaceKey = "stairs"
	SurfaceWadingBottom SurfaceKey = "wading_bottom"
	SurfaceWadingWalls  SurfaceKey = "wading_walls"
	SurfaceDividingWall SurfaceKey = "dividing_wall"
)

// SurfaceKeys lists every surface in packing order.
var SurfaceKeys = []SurfaceKey{
	SurfaceBottom,
	SurfaceWalls,
	SurfaceStairs,
	SurfaceWadingBottom,
	SurfaceWadingWalls,
	SurfaceDividingWall,
}

// Valid reports whether k is a known surface.
func (k SurfaceKey) Valid() bool {
	for _, s := range SurfaceKeys {
		if s == k {
			return true
		}
	}
	return false
}

// Order returns the packing position of the surface, or -1 if unknown.
func (k SurfaceKey) Order() int {
	for i, s := range SurfaceKeys {
		if s == k {
			return i
		}
	}
	return -1
}

// IsRun reports whether the surface is lined by strips running along a
// perimeter (walls) rather than parallel strips across a flat area.
func (k SurfaceKey) IsRun() bool {
	return k == SurfaceWalls || k == SurfaceWadingWalls || k == SurfaceDividingWall
}

// Label returns a human readable surface name.
func (k SurfaceKey) Label() string {
	switch k {
	case SurfaceBottom:
		return "Bottom"
	case SurfaceWalls:
		return "Walls"
	case SurfaceStairs:
		return "Stairs"
	case SurfaceWadingBottom:
		return "Wading pool bottom"
	case SurfaceWadingWalls:
		return "Wading pool walls"
	case SurfaceDividingWall:
		return "Dividing wall"
	default:
		return string(k)
	}
}

// WallLabel marks a wall (and the corner it starts at) going clockwise
// around the pool from the fixed starting corner.
type WallLabel string

const (
	WallA WallLabel = "A"
	WallB WallLabel = "B"
	WallC WallLabel = "C"
	WallD WallLabel = "D"
)

// WallLabels lists the labels in clockwise order.
var WallLabels = []WallLabel{WallA, WallB, WallC, WallD}

// OptimizationMode selects the objective of the wall strip optimizer.
type OptimizationMode string

const (
	ModeMinWaste OptimizationMode = "minWaste"
	ModeMinRolls OptimizationMode = "minRolls"
)

// Valid reports whether m is a known mode.
func (m OptimizationMode) Valid() bool {
	return m == ModeMinWaste || m == ModeMinRolls
}

// PoolShape is the plan-view shape of the pool basin.
type PoolShape string

const (
	ShapeRectangular PoolShape = "rectangular"
	ShapeOval        PoolShape = "oval"
	ShapeCustom      PoolShape = "custom"
)

// Point2D represents a 2D coordinate in meters.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area returns the enclosed area (shoelace formula), always positive.
func (o Outline) Area() float64 {
	if len(o) < 3 {
		return 0
	}
	var sum float64
	for i := range o {
		j := (i + 1) % len(o)
		sum += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the length of the closed polyline.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := range o {
		j := (i + 1) % len(o)
		total += math.Hypot(o[j].X-o[i].X, o[j].Y-o[i].Y)
	}
	return total
}

// Size returns the bounding box width (x extent) and height (y extent).
func (o Outline) Size() (w, h float64) {
	min, max := o.BoundingBox()
	return max.X - min.X, max.Y - min.Y
}

// Normalized returns the outline translated so its bounding box starts at the origin.
func (o Outline) Normalized() Outline {
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}

// Transposed swaps the x and y axes.
func (o Outline) Transposed() Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.Y, Y: p.X}
	}
	return result
}

// ExtentInBand returns the x extent of the polygon restricted to the
// horizontal band y0 <= y <= y1. It returns 0 when the band misses the polygon.
func (o Outline) ExtentInBand(y0, y1 float64) float64 {
	clipped := clipBelow(clipAbove(o, y0), y1)
	if len(clipped) == 0 {
		return 0
	}
	min, max := clipped.BoundingBox()
	return max.X - min.X
}

// clipAbove keeps the part of the polygon with y >= limit (Sutherland-Hodgman).
func clipAbove(o Outline, limit float64) Outline {
	return clipHalfPlane(o, func(p Point2D) float64 { return p.Y - limit })
}

// clipBelow keeps the part of the polygon with y <= limit.
func clipBelow(o Outline, limit float64) Outline {
	return clipHalfPlane(o, func(p Point2D) float64 { return limit - p.Y })
}

func clipHalfPlane(o Outline, dist func(Point2D) float64) Outline {
	if len(o) == 0 {
		return nil
	}
	var out Outline
	for i := range o {
		cur := o[i]
		next := o[(i+1)%len(o)]
		dc, dn := dist(cur), dist(next)
		if dc >= 0 {
			out = append(out, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			t := dc / (dc - dn)
			out = append(out, Point2D{
				X: cur.X + t*(next.X-cur.X),
				Y: cur.Y + t*(next.Y-cur.Y),
			})
		}
	}
	return out
}
