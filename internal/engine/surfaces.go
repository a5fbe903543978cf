package engine

import (
	"math"

	"github.com/piwi3910/foilplan/internal/model"
)

// PlanBottom returns the main basin floor. Strips run along the longer side
// of the basin, so the cover dimension is the shorter side. A sloped
// rectangular floor is measured along the slope.
func PlanBottom(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	if pool.Validate() != nil {
		return nil
	}
	outline := pool.BottomOutline()
	area := outline.Area()
	switch pool.Shape {
	case model.ShapeOval:
		area = math.Pi * pool.Length / 2 * pool.Width / 2
	case model.ShapeRectangular, "":
		length, width := pool.Length, pool.Width
		if drop := pool.DeepEndDepth - pool.Depth; drop > 0 {
			length = math.Hypot(pool.Length, drop)
		}
		outline = model.Outline{{X: 0, Y: 0}, {X: length, Y: 0}, {X: length, Y: width}, {X: 0, Y: width}}
		area = length * width
	}
	return flatSurface(model.SurfaceBottom, outline, area, model.FoilMain)
}

// PlanWalls returns the perimeter walls of the main basin as a single run
// labelled A to D clockwise from the starting corner. A rectangle runs
// length, width, length, width; curved shapes are split into four equal
// quarters.
func PlanWalls(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	if pool.Validate() != nil {
		return nil
	}
	height := pool.WallHeight()
	// On a sloped floor the walls are lined to a depth running from the
	// shallow to the deep end, so the area uses the mean depth.
	meanDepth := (pool.Depth + height) / 2
	var segments []model.WallSegment
	var perimeter float64
	switch pool.Shape {
	case model.ShapeOval:
		perimeter = model.EllipsePerimeter(pool.Length/2, pool.Width/2)
		segments = quarterSegments(perimeter)
	case model.ShapeCustom:
		perimeter = pool.Outline.Perimeter()
		segments = quarterSegments(perimeter)
	default:
		segments = []model.WallSegment{
			{Label: model.WallA, Length: pool.Length},
			{Label: model.WallB, Length: pool.Width},
			{Label: model.WallC, Length: pool.Length},
			{Label: model.WallD, Length: pool.Width},
		}
		perimeter = 2 * (pool.Length + pool.Width)
	}
	area := perimeter * meanDepth
	return runSurface(model.SurfaceWalls, segments, height, area, model.FoilMain, s)
}

// PlanStairs returns the anti-slip tread footprint of the entry stairs.
// Risers are not foiled with structural foil and are not part of the plan.
func PlanStairs(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	st := pool.Stairs
	if !st.Enabled {
		return nil
	}
	if len(st.Outline) >= 3 {
		area := st.Outline.Area()
		if area <= 0 {
			return nil
		}
		return flatSurface(model.SurfaceStairs, st.Outline.Normalized(), area, model.FoilStructural)
	}
	if st.StepCount <= 0 || st.StepDepth <= 0 || st.Width <= 0 {
		return nil
	}
	run := st.StepDepth * float64(st.StepCount)
	outline := model.Outline{{X: 0, Y: 0}, {X: st.Width, Y: 0}, {X: st.Width, Y: run}, {X: 0, Y: run}}
	return flatSurface(model.SurfaceStairs, outline, run*st.Width, model.FoilStructural)
}

// PlanWadingBottom returns the anti-slip floor of the wading pool.
func PlanWadingBottom(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	wp := pool.WadingPool
	if !wp.Enabled || wp.Length <= 0 || wp.Width <= 0 {
		return nil
	}
	outline := model.Outline{{X: 0, Y: 0}, {X: wp.Length, Y: 0}, {X: wp.Length, Y: wp.Width}, {X: 0, Y: wp.Width}}
	return flatSurface(model.SurfaceWadingBottom, outline, wp.Length*wp.Width, model.FoilStructural)
}

// PlanWadingWalls returns the three external walls of the wading pool. The
// side shared with the main basin is not part of the run.
func PlanWadingWalls(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	wp := pool.WadingPool
	if !wp.Enabled || wp.Length <= 0 || wp.Width <= 0 || wp.Depth <= 0 {
		return nil
	}
	segments := []model.WallSegment{
		{Label: model.WallA, Length: wp.Width},
		{Label: model.WallB, Length: wp.Length},
		{Label: model.WallC, Length: wp.Width},
	}
	area := (wp.Length + 2*wp.Width) * wp.Depth
	return runSurface(model.SurfaceWadingWalls, segments, wp.Depth, area, model.FoilMain, s)
}

// PlanDividingWall returns the wall between the wading pool and the main
// basin, lined by a single run along the shared side. The lined height is
// the wading depth minus the offset plus the top and bottom seam allowances.
func PlanDividingWall(pool model.PoolDimensions, s model.PlannerSettings) *model.Surface {
	wp := pool.WadingPool
	if !wp.Enabled || !wp.DividingWall.Enabled || wp.Length <= 0 {
		return nil
	}
	height := wp.Depth - wp.DividingWall.Offset
	if height <= 0 {
		return nil
	}
	height += s.ClampHorizontalOverlap(s.DividingWallTopOverlap) + s.ClampHorizontalOverlap(s.DividingWallBottomOverlap)
	segments := []model.WallSegment{{Label: model.WallA, Length: wp.Length}}
	return runSurface(model.SurfaceDividingWall, segments, height, wp.Length*height, model.FoilMain, s)
}

// PlanSurfaces runs every planner and returns the surfaces that exist, in
// packing order.
func PlanSurfaces(pool model.PoolDimensions, s model.PlannerSettings) []model.Surface {
	planners := []func(model.PoolDimensions, model.PlannerSettings) *model.Surface{
		PlanBottom,
		PlanWalls,
		PlanStairs,
		PlanWadingBottom,
		PlanWadingWalls,
		PlanDividingWall,
	}
	surfaces := make([]model.Surface, 0, len(planners))
	for _, plan := range planners {
		if surface := plan(pool, s); surface != nil {
			surfaces = append(surfaces, *surface)
		}
	}
	return surfaces
}

// flatSurface orients the outline so strips run along x (the longer side)
// and builds the descriptor.
func flatSurface(key model.SurfaceKey, outline model.Outline, area float64, assignment model.FoilAssignment) *model.Surface {
	outline = outline.Normalized()
	w, h := outline.Size()
	if h > w {
		outline = outline.Transposed()
		w, h = h, w
	}
	if w <= 0 || h <= 0 || area <= 0 {
		return nil
	}
	recommended := model.RollWide
	if assignment == model.FoilStructural {
		recommended = model.RollNarrow
	}
	return &model.Surface{
		Key:              key,
		CoverWidth:       h,
		StripLength:      w,
		Area:             area,
		Assignment:       assignment,
		RecommendedWidth: recommended,
		Outline:          outline,
	}
}

func runSurface(key model.SurfaceKey, segments []model.WallSegment, height, area float64, assignment model.FoilAssignment, s model.PlannerSettings) *model.Surface {
	var perimeter float64
	for _, seg := range segments {
		perimeter += seg.Length
	}
	if perimeter <= 0 || height <= 0 || area <= 0 {
		return nil
	}
	recommended := model.RollNarrow
	if height > s.WideDepthThreshold {
		recommended = model.RollWide
	}
	return &model.Surface{
		Key:              key,
		CoverWidth:       height,
		StripLength:      perimeter,
		Area:             area,
		Assignment:       assignment,
		RecommendedWidth: recommended,
		Segments:         segments,
	}
}

func quarterSegments(perimeter float64) []model.WallSegment {
	segments := make([]model.WallSegment, len(model.WallLabels))
	for i, label := range model.WallLabels {
		segments[i] = model.WallSegment{Label: label, Length: perimeter / 4}
	}
	return segments
}
