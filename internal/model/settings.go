package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSettings is returned by PlannerSettings.Validate.
var ErrInvalidSettings = errors.New("invalid planner settings")

// PlannerSettings holds every tunable constant of the optimizer. It is
// passed by value into each planning call; nothing reads global state.
type PlannerSettings struct {
	RollLength float64 `json:"roll_length" yaml:"roll_length"` // Physical length of every roll

	// Seam allowances
	VerticalOverlap      float64 `json:"vertical_overlap" yaml:"vertical_overlap"`             // Per vertical seam between wall strips
	StripOverlap         float64 `json:"strip_overlap" yaml:"strip_overlap"`                   // Per seam between parallel strips on flat surfaces
	HorizontalOverlapMin float64 `json:"horizontal_overlap_min" yaml:"horizontal_overlap_min"` // Lower bound for top/bottom wall seams
	HorizontalOverlapMax float64 `json:"horizontal_overlap_max" yaml:"horizontal_overlap_max"` // Upper bound for top/bottom wall seams

	// Walls deeper than this are lined with wide rolls to avoid a second course.
	WideDepthThreshold float64 `json:"wide_depth_threshold" yaml:"wide_depth_threshold"`

	DividingWallTopOverlap    float64 `json:"dividing_wall_top_overlap" yaml:"dividing_wall_top_overlap"`
	DividingWallBottomOverlap float64 `json:"dividing_wall_bottom_overlap" yaml:"dividing_wall_bottom_overlap"`

	MaxWallStrips int  `json:"max_wall_strips" yaml:"max_wall_strips"`
	ReuseRemnants bool `json:"reuse_remnants" yaml:"reuse_remnants"` // Feed bottom roll tails into wall strips

	Tolerance float64 `json:"tolerance" yaml:"tolerance"` // Float comparison tolerance in meters / square meters
}

// DefaultSettings returns the nominal trade values.
func DefaultSettings() PlannerSettings {
	return PlannerSettings{
		RollLength:                25.0,
		VerticalOverlap:           0.10,
		StripOverlap:              0.10,
		HorizontalOverlapMin:      0.05,
		HorizontalOverlapMax:      0.10,
		WideDepthThreshold:        1.55,
		DividingWallTopOverlap:    0.10,
		DividingWallBottomOverlap: 0.10,
		MaxWallStrips:             4,
		ReuseRemnants:             true,
		Tolerance:                 1e-6,
	}
}

// Validate checks that the settings describe a usable configuration.
func (s PlannerSettings) Validate() error {
	if s.RollLength <= 0 {
		return fmt.Errorf("%w: roll length must be positive", ErrInvalidSettings)
	}
	if s.VerticalOverlap < 0 || s.StripOverlap < 0 {
		return fmt.Errorf("%w: overlaps must not be negative", ErrInvalidSettings)
	}
	if s.StripOverlap >= RollNarrow.Meters() {
		return fmt.Errorf("%w: strip overlap %.2f exceeds the narrow roll width", ErrInvalidSettings, s.StripOverlap)
	}
	if s.HorizontalOverlapMin < 0 || s.HorizontalOverlapMax < s.HorizontalOverlapMin {
		return fmt.Errorf("%w: horizontal overlap bounds [%.2f, %.2f] are inconsistent",
			ErrInvalidSettings, s.HorizontalOverlapMin, s.HorizontalOverlapMax)
	}
	if s.WideDepthThreshold <= 0 {
		return fmt.Errorf("%w: wide depth threshold must be positive", ErrInvalidSettings)
	}
	if s.MaxWallStrips < 1 {
		return fmt.Errorf("%w: at least one wall strip must be allowed", ErrInvalidSettings)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidSettings)
	}
	return nil
}

// ClampHorizontalOverlap bounds a top/bottom seam allowance to the configured range.
func (s PlannerSettings) ClampHorizontalOverlap(v float64) float64 {
	return math.Min(math.Max(v, s.HorizontalOverlapMin), s.HorizontalOverlapMax)
}

// Eq reports whether a and b are equal within the tolerance.
func (s PlannerSettings) Eq(a, b float64) bool {
	return math.Abs(a-b) <= s.Tolerance
}

// Less reports whether a is smaller than b by more than the tolerance.
func (s PlannerSettings) Less(a, b float64) bool {
	return a < b-s.Tolerance
}

// Fits reports whether length fits within capacity, allowing for tolerance.
func (s PlannerSettings) Fits(length, capacity float64) bool {
	return length <= capacity+s.Tolerance
}
