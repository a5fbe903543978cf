package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned when pool geometry is zero, negative or
// otherwise unusable.
var ErrInvalidDimensions = errors.New("invalid pool dimensions")

// PoolDimensions is the geometry snapshot a plan is computed from.
// All lengths are in meters.
type PoolDimensions struct {
	Shape        PoolShape        `json:"shape" yaml:"shape"`
	Length       float64          `json:"length" yaml:"length"`
	Width        float64          `json:"width" yaml:"width"`
	Depth        float64          `json:"depth" yaml:"depth"`
	DeepEndDepth float64          `json:"deep_end_depth,omitempty" yaml:"deep_end_depth,omitempty"` // 0 = flat bottom
	Outline      Outline          `json:"outline,omitempty" yaml:"outline,omitempty"`               // Custom shapes only
	Stairs       StairsConfig     `json:"stairs" yaml:"stairs"`
	WadingPool   WadingPoolConfig `json:"wading_pool" yaml:"wading_pool"`
}

// StairsConfig describes built-in entry stairs. Only the tread footprint is foiled.
type StairsConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	StepCount int     `json:"step_count" yaml:"step_count"`
	StepDepth float64 `json:"step_depth" yaml:"step_depth"` // Tread depth of one step
	Width     float64 `json:"width" yaml:"width"`
	Outline   Outline `json:"outline,omitempty" yaml:"outline,omitempty"` // Tread projection for non-rectangular stairs
}

// WadingPoolConfig describes a paddling pool next to the main basin.
type WadingPoolConfig struct {
	Enabled      bool               `json:"enabled" yaml:"enabled"`
	Length       float64            `json:"length" yaml:"length"` // Side shared with the main pool
	Width        float64            `json:"width" yaml:"width"`
	Depth        float64            `json:"depth" yaml:"depth"`
	DividingWall DividingWallConfig `json:"dividing_wall" yaml:"dividing_wall"`
}

// DividingWallConfig describes the wall between the wading pool and the main pool.
type DividingWallConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Offset  float64 `json:"offset" yaml:"offset"` // Wall top sits this far below the wading pool rim
}

// NewRectangularPool returns rectangular pool dimensions with no extras.
func NewRectangularPool(length, width, depth float64) PoolDimensions {
	return PoolDimensions{
		Shape:  ShapeRectangular,
		Length: length,
		Width:  width,
		Depth:  depth,
	}
}

// WallHeight returns the height the walls must be lined to: the deep end
// when the bottom slopes, otherwise the nominal depth.
func (p PoolDimensions) WallHeight() float64 {
	return math.Max(p.Depth, p.DeepEndDepth)
}

// PlanSize returns the bounding length and width of the basin. Custom
// shapes fall back to the outline's bounding box when unset.
func (p PoolDimensions) PlanSize() (length, width float64) {
	length, width = p.Length, p.Width
	if p.Shape == ShapeCustom && (length <= 0 || width <= 0) {
		length, width = p.Outline.Size()
	}
	return length, width
}

// BottomOutline returns the plan outline of the basin with its bounding box
// at the origin. Rectangles are returned as four corners; ovals are
// approximated by a 128-gon.
func (p PoolDimensions) BottomOutline() Outline {
	l, w := p.PlanSize()
	switch p.Shape {
	case ShapeCustom:
		return p.Outline.Normalized()
	case ShapeOval:
		return EllipseOutline(l/2, w/2, 128).Translate(l/2, w/2)
	default:
		return Outline{{0, 0}, {l, 0}, {l, w}, {0, w}}
	}
}

// Validate checks the geometry invariants.
func (p PoolDimensions) Validate() error {
	switch p.Shape {
	case ShapeRectangular, ShapeOval, "":
		if p.Length <= 0 || p.Width <= 0 {
			return fmt.Errorf("%w: length and width must be positive (got %.2f x %.2f)", ErrInvalidDimensions, p.Length, p.Width)
		}
	case ShapeCustom:
		if len(p.Outline) < 3 || p.Outline.Area() <= 0 {
			return fmt.Errorf("%w: custom shape needs an outline with at least 3 points", ErrInvalidDimensions)
		}
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidDimensions, p.Shape)
	}
	if p.Depth <= 0 {
		return fmt.Errorf("%w: depth must be positive (got %.2f)", ErrInvalidDimensions, p.Depth)
	}
	if p.DeepEndDepth < 0 {
		return fmt.Errorf("%w: deep end depth must not be negative", ErrInvalidDimensions)
	}
	return nil
}

// EllipseOutline approximates an ellipse centred on the origin.
func EllipseOutline(a, b float64, segments int) Outline {
	if segments < 8 {
		segments = 8
	}
	out := make(Outline, segments)
	for i := 0; i < segments; i++ {
		t := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = Point2D{X: a * math.Cos(t), Y: b * math.Sin(t)}
	}
	return out
}

// EllipsePerimeter returns Ramanujan's second approximation of the
// circumference of an ellipse with semi-axes a and b.
func EllipsePerimeter(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	h := math.Pow(a-b, 2) / math.Pow(a+b, 2)
	return math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
}
