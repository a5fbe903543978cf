package model

import (
	"fmt"
	"math"
)

// WallSegment is one straight (or quarter-arc) stretch of a perimeter run.
type WallSegment struct {
	Label  WallLabel `json:"label"`
	Length float64   `json:"length"`
}

// Surface describes a physical area that needs foil, independent of the
// roll widths eventually chosen for it.
//
// Flat surfaces are lined with parallel strips: CoverWidth is the dimension
// the strips stack across, StripLength the longest strip, and Outline the
// plan shape oriented with strips along x. Run surfaces (walls) are lined
// with strips along a perimeter: StripLength is the run length, CoverWidth
// the height to line, and Segments the labelled walls of the run.
type Surface struct {
	Key              SurfaceKey     `json:"key"`
	CoverWidth       float64        `json:"cover_width"`
	StripLength      float64        `json:"strip_length"`
	Area             float64        `json:"area"`
	Assignment       FoilAssignment `json:"assignment"`
	RecommendedWidth RollWidth      `json:"recommended_width"`
	Segments         []WallSegment  `json:"segments,omitempty"`
	Outline          Outline        `json:"outline,omitempty"`
}

// NarrowOnly reports whether the surface may only use 1.65m rolls given the
// main foil subtype.
func (s Surface) NarrowOnly(subtype FoilSubtype) bool {
	if s.Assignment == FoilStructural {
		return true
	}
	return subtype.NarrowOnly()
}

// Strip is one cut length of foil assigned to a surface.
type Strip struct {
	Index           int       `json:"index"`
	Width           RollWidth `json:"width"`
	Length          float64   `json:"length"`           // Cut length including seam allowance
	Span            float64   `json:"span"`             // Coverage contributed, excluding overlap
	Offset          float64   `json:"offset"`           // Position of the span along the cover direction
	VerticalOverlap float64   `json:"vertical_overlap"` // Run surfaces only
	Course          int       `json:"course,omitempty"` // Horizontal course on run surfaces, 0 = lowest
	Piece           int       `json:"piece,omitempty"`  // Flat strips longer than a roll are cut in pieces; only piece 0 carries the span
	StartLabel      WallLabel `json:"start_label,omitempty"`
	EndLabel        WallLabel `json:"end_label,omitempty"`

	RollNumber    int        `json:"roll_number"` // 1-based within the owning surface; 0 = cut from another surface's roll
	Reused        bool       `json:"reused"`
	SourceSurface SurfaceKey `json:"source_surface,omitempty"`
	SourceRoll    int        `json:"source_roll,omitempty"`
}

// Area returns the foil area cut for the strip.
func (s Strip) Area() float64 {
	return s.Length * s.Width.Meters()
}

// StripPlan is the ordered strip decomposition of one surface.
type StripPlan struct {
	Surface SurfaceKey `json:"surface"`
	Strips  []Strip    `json:"strips"`
}

// CoveredLength returns the total span of the strips of the given course.
func (p StripPlan) CoveredLength(course int) float64 {
	var total float64
	for _, s := range p.Strips {
		if s.Course == course {
			total += s.Span
		}
	}
	return total
}

// RollCut is one strip cut from a physical roll.
type RollCut struct {
	Surface SurfaceKey `json:"surface"`
	Strip   int        `json:"strip"`
	Offset  float64    `json:"offset"` // Distance from the roll start
	Length  float64    `json:"length"`
}

// RollAllocation is one physical roll and the strips cut from it.
type RollAllocation struct {
	Number   int       `json:"number"`
	Width    RollWidth `json:"width"`
	Capacity float64   `json:"capacity"`
	Cuts     []RollCut `json:"cuts"`
	Used     float64   `json:"used"`
	Waste    float64   `json:"waste"`
}

// NewRoll returns an empty roll.
func NewRoll(number int, width RollWidth, capacity float64) RollAllocation {
	return RollAllocation{
		Number:   number,
		Width:    width,
		Capacity: capacity,
		Waste:    capacity,
	}
}

// Remaining returns the uncut length left on the roll.
func (r RollAllocation) Remaining() float64 {
	return r.Capacity - r.Used
}

// Add appends a cut at the current end of the roll. The caller checks capacity.
func (r *RollAllocation) Add(surface SurfaceKey, strip int, length float64) RollCut {
	cut := RollCut{Surface: surface, Strip: strip, Offset: r.Used, Length: length}
	r.Cuts = append(r.Cuts, cut)
	r.Used += length
	r.Waste = math.Max(r.Capacity-r.Used, 0)
	return cut
}

// Remove drops every cut belonging to the given surface and re-lays the
// remaining cuts from the roll start.
func (r *RollAllocation) Remove(surface SurfaceKey) {
	kept := r.Cuts[:0:0]
	r.Used = 0
	for _, c := range r.Cuts {
		if c.Surface == surface {
			continue
		}
		c.Offset = r.Used
		kept = append(kept, c)
		r.Used += c.Length
	}
	r.Cuts = kept
	r.Waste = math.Max(r.Capacity-r.Used, 0)
}

// WasteArea returns the unused tail area of the roll.
func (r RollAllocation) WasteArea() float64 {
	return r.Waste * r.Width.Meters()
}

// Label returns a short identifier such as "2.05m #3".
func (r RollAllocation) Label() string {
	return fmt.Sprintf("%s #%d", r.Width, r.Number)
}

// SurfaceRollConfig is the plan chosen for one surface.
type SurfaceRollConfig struct {
	Surface        Surface          `json:"surface"`
	RollWidth      RollWidth        `json:"roll_width"` // Base width; strips may still mix in remnant widths
	Mixed          bool             `json:"mixed"`
	StripCount     int              `json:"strip_count"`
	Courses        int              `json:"courses,omitempty"`
	Area           float64          `json:"area"`
	Consumed       float64          `json:"consumed"` // Foil area cut for the surface
	Waste          float64          `json:"waste"`    // Tail area of the rolls the surface opened
	Strips         []Strip          `json:"strips"`
	Rolls          []RollAllocation `json:"rolls"`
	ManualOverride bool             `json:"manual_override"`
	Override       *SurfaceOverride `json:"override,omitempty"`
}

// SurfaceOverride pins a surface's roll width and/or strip count.
// Zero values leave that choice to the optimizer.
type SurfaceOverride struct {
	Width      RollWidth `json:"width,omitempty"`
	StripCount int       `json:"strip_count,omitempty"`
}

// Key returns the surface key.
func (c SurfaceRollConfig) Key() SurfaceKey {
	return c.Surface.Key
}

// Plan returns the strip plan view of the config.
func (c SurfaceRollConfig) Plan() StripPlan {
	return StripPlan{Surface: c.Surface.Key, Strips: c.Strips}
}

// RollCount returns the number of rolls opened per width.
func (c SurfaceRollConfig) RollCount(w RollWidth) int {
	n := 0
	for _, r := range c.Rolls {
		if r.Width == w {
			n++
		}
	}
	return n
}

// PlanRequest is the full input of a planning run.
type PlanRequest struct {
	Pool    PoolDimensions   `json:"pool" yaml:"pool"`
	Subtype FoilSubtype      `json:"subtype" yaml:"subtype"`
	Mode    OptimizationMode `json:"mode" yaml:"mode"`
}

// Validate checks the request before any planning runs.
func (r PlanRequest) Validate() error {
	if err := r.Pool.Validate(); err != nil {
		return err
	}
	if !r.Subtype.Valid() {
		return fmt.Errorf("unknown foil subtype %q", r.Subtype)
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("unknown optimization mode %q", r.Mode)
	}
	return nil
}

// MixConfiguration is the optimizer's complete output. It is plain data and
// is always replaced wholesale, never mutated in place.
type MixConfiguration struct {
	Request         PlanRequest         `json:"request"`
	Settings        PlannerSettings     `json:"settings"`
	Surfaces        []SurfaceRollConfig `json:"surfaces"`
	TotalRolls165   int                 `json:"total_rolls_165"`
	TotalRolls205   int                 `json:"total_rolls_205"`
	TotalWaste      float64             `json:"total_waste"`
	UsefulArea      float64             `json:"useful_area"`
	WastePercentage float64             `json:"waste_percentage"`
	IsOptimized     bool                `json:"is_optimized"`
}

// Find returns the index of the surface config with the given key, or -1.
func (c MixConfiguration) Find(key SurfaceKey) int {
	for i, s := range c.Surfaces {
		if s.Surface.Key == key {
			return i
		}
	}
	return -1
}

// Surface returns the config of the given surface and whether it exists.
func (c MixConfiguration) Surface(key SurfaceKey) (SurfaceRollConfig, bool) {
	if i := c.Find(key); i >= 0 {
		return c.Surfaces[i], true
	}
	return SurfaceRollConfig{}, false
}

// TotalRolls returns the number of rolls of all widths.
func (c MixConfiguration) TotalRolls() int {
	return c.TotalRolls165 + c.TotalRolls205
}

// AllRolls returns every roll in surface order.
func (c MixConfiguration) AllRolls() []RollAllocation {
	var rolls []RollAllocation
	for _, s := range c.Surfaces {
		rolls = append(rolls, s.Rolls...)
	}
	return rolls
}

// Clone returns a deep copy so overrides never alias the original.
func (c MixConfiguration) Clone() MixConfiguration {
	out := c
	out.Request.Pool.Outline = append(Outline(nil), c.Request.Pool.Outline...)
	out.Request.Pool.Stairs.Outline = append(Outline(nil), c.Request.Pool.Stairs.Outline...)
	out.Surfaces = make([]SurfaceRollConfig, len(c.Surfaces))
	for i, s := range c.Surfaces {
		cp := s
		cp.Surface.Segments = append([]WallSegment(nil), s.Surface.Segments...)
		cp.Surface.Outline = append(Outline(nil), s.Surface.Outline...)
		cp.Strips = append([]Strip(nil), s.Strips...)
		if s.Override != nil {
			ov := *s.Override
			cp.Override = &ov
		}
		cp.Rolls = make([]RollAllocation, len(s.Rolls))
		for j, r := range s.Rolls {
			rc := r
			rc.Cuts = append([]RollCut(nil), r.Cuts...)
			cp.Rolls[j] = rc
		}
		out.Surfaces[i] = cp
	}
	return out
}
