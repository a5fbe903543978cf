package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/foilplan/internal/model"
)

// Remnant is the unused tail of a roll already opened for another surface.
type Remnant struct {
	Surface model.SurfaceKey `json:"surface"`
	Roll    int              `json:"roll"`
	Width   model.RollWidth  `json:"width"`
	Length  float64          `json:"length"`
}

// WallInput describes one perimeter run to be lined.
type WallInput struct {
	Surface      model.SurfaceKey
	Segments     []model.WallSegment
	Height       float64 // Height to cover
	HemAllowance float64 // Extra height for the top and bottom seams
	NarrowOnly   bool
	Mode         model.OptimizationMode
	Remnants     []Remnant

	// Overrides; zero values leave the choice to the optimizer.
	ForceWidth model.RollWidth
	ForceCount int
}

// WallPlan is the chosen strip layout of a run.
type WallPlan struct {
	Strips          []model.Strip
	TotalStripCount int
	Courses         int
	BaseWidth       model.RollWidth
	Consumed        float64 // Foil area cut for the strips
	Waste           float64 // Fresh roll tails, unused remnant length and seam overlap
	Rolls           []model.RollAllocation
	Remnants        []Remnant // Offered remnants with their length left after the plan
}

// Mixed reports whether strips of both widths are used.
func (p WallPlan) Mixed() bool {
	for _, st := range p.Strips {
		if st.Width != p.BaseWidth {
			return true
		}
	}
	return false
}

// wallSpan is one contiguous stretch of the perimeter covered by one strip
// per course.
type wallSpan struct {
	Offset float64
	Length float64
	Start  model.WallLabel
	End    model.WallLabel
}

type remnantState struct {
	Remnant
	left     float64
	upgraded bool
}

// OptimizeWall chooses the strip count, per-strip widths and seam overlap
// placement for a perimeter run.
//
// Candidates with 1 to MaxWallStrips strips per course are built and scored;
// a candidate whose strip would not fit on a roll is dropped. minWaste ranks
// by waste, then strip count, then consumed area. minRolls ranks by
// consumed area, then waste, then strip count.
func OptimizeWall(in WallInput, s model.PlannerSettings) (WallPlan, error) {
	if !in.Mode.Valid() {
		return WallPlan{}, fmt.Errorf("unknown optimization mode %q", in.Mode)
	}
	var perimeter float64
	for _, seg := range in.Segments {
		perimeter += seg.Length
	}
	if perimeter <= 0 || in.Height <= 0 {
		return WallPlan{}, fmt.Errorf("%w: %s has no perimeter to line", ErrNoFeasiblePlan, in.Surface)
	}

	base := model.RollNarrow
	switch {
	case in.ForceWidth != 0:
		if in.NarrowOnly && in.ForceWidth == model.RollWide {
			return WallPlan{}, fmt.Errorf("%w: %s", ErrNarrowOnly, in.Surface)
		}
		base = in.ForceWidth
	case !in.NarrowOnly && in.Height > s.WideDepthThreshold:
		base = model.RollWide
	}
	courses := courseCount(in.Height+in.HemAllowance, base, s)

	minCount, maxCount := 1, s.MaxWallStrips
	if in.ForceCount > 0 {
		minCount, maxCount = in.ForceCount, in.ForceCount
	}

	var best WallPlan
	found := false
	for n := minCount; n <= maxCount; n++ {
		spans := baseSpans(in.Segments, n, s)
		tooLong := false
		for _, sp := range spans {
			if !s.Fits(sp.Length, s.RollLength) {
				tooLong = true
				break
			}
		}
		if tooLong {
			continue
		}
		cand, ok := buildWallCandidate(in, spans, courses, base, s)
		if !ok {
			continue
		}
		if !found || betterWall(cand, best, in.Mode, s) {
			best, found = cand, true
		}
	}
	if !found {
		if in.ForceCount == 0 {
			return WallPlan{}, fmt.Errorf("%w: %s perimeter %.2fm does not fit %d strips per course, raise max_wall_strips",
				ErrNoFeasiblePlan, in.Surface, perimeter, s.MaxWallStrips)
		}
		return WallPlan{}, fmt.Errorf("%w: %s perimeter %.2fm", ErrNoFeasiblePlan, in.Surface, perimeter)
	}
	return best, nil
}

// courseCount returns how many horizontal courses of the given width cover
// the height, each joint using the maximum horizontal overlap.
func courseCount(height float64, width model.RollWidth, s model.PlannerSettings) int {
	step := width.Meters() - s.HorizontalOverlapMax
	if step <= 0 {
		return 1
	}
	c := 1
	for s.Less(float64(c)*width.Meters()-float64(c-1)*s.HorizontalOverlapMax, height) {
		c++
	}
	return c
}

func buildWallCandidate(in WallInput, spans []wallSpan, courses int, base model.RollWidth, s model.PlannerSettings) (WallPlan, bool) {
	n := len(spans)
	strips := make([]model.Strip, 0, n*courses)
	for c := 0; c < courses; c++ {
		for _, sp := range spans {
			strips = append(strips, model.Strip{
				Index:      len(strips) + 1,
				Width:      base,
				Length:     sp.Length,
				Span:       sp.Length,
				Offset:     sp.Offset,
				Course:     c,
				StartLabel: sp.Start,
				EndLabel:   sp.End,
			})
		}
	}

	rem := make([]remnantState, len(in.Remnants))
	for i, r := range in.Remnants {
		rem[i] = remnantState{Remnant: r, left: r.Length}
	}
	source := make([]int, len(strips))
	for i := range source {
		source[i] = -1
	}

	// Longest strips pick remnants first.
	order := make([]int, len(strips))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return strips[order[a]].Length > strips[order[b]].Length
	})
	allowUpgrade := !in.NarrowOnly && in.ForceWidth == 0
	for _, i := range order {
		st := &strips[i]
		if j := bestRemnant(rem, st.Length, s, func(r remnantState) bool { return r.Width == st.Width }); j >= 0 {
			source[i] = j
			rem[j].left -= st.Length
			continue
		}
		if !allowUpgrade {
			continue
		}
		if j := bestRemnant(rem, st.Length, s, func(r remnantState) bool { return r.Width > base && !r.upgraded }); j >= 0 {
			source[i] = j
			rem[j].left -= st.Length
			rem[j].upgraded = true
			st.Width = rem[j].Width
		}
	}

	// Each course carries one vertical overlap per internal seam.
	need := float64(n-1) * s.VerticalOverlap
	if need > 0 {
		for c := 0; c < courses; c++ {
			carrier := overlapCarrier(strips, source, rem, c, need, base, s)
			if carrier < 0 {
				return WallPlan{}, false
			}
			strips[carrier].Length += need
			strips[carrier].VerticalOverlap = need
			if j := source[carrier]; j >= 0 {
				rem[j].left -= need
			}
		}
	}

	p := newRollPacker(in.Surface, s)
	for i := range strips {
		st := &strips[i]
		if j := source[i]; j >= 0 {
			st.Reused = true
			st.RollNumber = 0
			st.SourceSurface = rem[j].Surface
			st.SourceRoll = rem[j].Roll
			continue
		}
		num, err := p.insert(in.Surface, st.Index, st.Width, st.Length)
		if err != nil {
			return WallPlan{}, false
		}
		st.RollNumber = num
	}

	plan := WallPlan{
		Strips:          strips,
		TotalStripCount: len(strips),
		Courses:         courses,
		BaseWidth:       base,
		Rolls:           p.rolls,
		Waste:           tailArea(p.rolls),
	}
	for _, st := range strips {
		plan.Consumed += st.Area()
		plan.Waste += st.VerticalOverlap * st.Width.Meters()
	}
	for _, r := range rem {
		plan.Waste += math.Max(r.left, 0) * r.Width.Meters()
		left := r.Remnant
		left.Length = math.Max(r.left, 0)
		plan.Remnants = append(plan.Remnants, left)
	}
	return plan, true
}

// bestRemnant returns the eligible remnant with the least length left that
// still holds the strip, or -1.
func bestRemnant(rem []remnantState, length float64, s model.PlannerSettings, eligible func(remnantState) bool) int {
	best := -1
	for j, r := range rem {
		if !eligible(r) || !s.Fits(length, r.left) {
			continue
		}
		if best < 0 || s.Less(r.left, rem[best].left) {
			best = j
		}
	}
	return best
}

// overlapCarrier picks the strip of a course that takes the course's seam
// overlap: a fresh base-width strip first, then a base-width remnant strip
// whose remnant has room. As a last resort a remnant strip is moved to a
// fresh roll. Upgraded strips never carry overlap.
func overlapCarrier(strips []model.Strip, source []int, rem []remnantState, course int, need float64, base model.RollWidth, s model.PlannerSettings) int {
	for i, st := range strips {
		if st.Course == course && source[i] < 0 && st.Width == base && s.Fits(st.Length+need, s.RollLength) {
			return i
		}
	}
	for i, st := range strips {
		if st.Course == course && source[i] >= 0 && st.Width == base && s.Fits(need, rem[source[i]].left) {
			return i
		}
	}
	for i, st := range strips {
		if st.Course == course && source[i] >= 0 && st.Width == base && s.Fits(st.Length+need, s.RollLength) {
			rem[source[i]].left += st.Length
			source[i] = -1
			return i
		}
	}
	return -1
}

func betterWall(a, b WallPlan, mode model.OptimizationMode, s model.PlannerSettings) bool {
	var ka, kb []float64
	switch mode {
	case model.ModeMinRolls:
		ka = []float64{a.Consumed, a.Waste, float64(a.TotalStripCount)}
		kb = []float64{b.Consumed, b.Waste, float64(b.TotalStripCount)}
	default:
		ka = []float64{a.Waste, float64(a.TotalStripCount), a.Consumed}
		kb = []float64{b.Waste, float64(b.TotalStripCount), b.Consumed}
	}
	for i := range ka {
		if s.Less(ka[i], kb[i]) {
			return true
		}
		if s.Less(kb[i], ka[i]) {
			return false
		}
	}
	return false
}

// baseSpans divides the run into n contiguous spans starting at corner A.
// When the run has at least n walls the spans follow wall boundaries,
// grouping neighbouring walls so the longest span is as short as possible.
// Otherwise, or when a grouped span would not fit a roll, the run is split
// into n equal spans.
func baseSpans(segments []model.WallSegment, n int, s model.PlannerSettings) []wallSpan {
	if n <= len(segments) {
		var best []wallSpan
		bestMax := math.Inf(1)
		forEachGrouping(len(segments), n, func(cuts []int) {
			spans := groupSpans(segments, cuts)
			longest := 0.0
			for _, sp := range spans {
				longest = math.Max(longest, sp.Length)
			}
			if s.Less(longest, bestMax) {
				best, bestMax = spans, longest
			}
		})
		if best != nil && s.Fits(bestMax, s.RollLength) {
			return best
		}
	}

	var perimeter float64
	for _, seg := range segments {
		perimeter += seg.Length
	}
	each := perimeter / float64(n)
	spans := make([]wallSpan, n)
	for i := range spans {
		start := float64(i) * each
		spans[i] = wallSpan{
			Offset: start,
			Length: each,
			Start:  labelAt(segments, start+s.Tolerance),
			End:    labelAt(segments, start+each-s.Tolerance),
		}
	}
	return spans
}

// forEachGrouping calls fn with every set of n-1 ascending cut positions
// between m walls, in lexicographic order.
func forEachGrouping(m, n int, fn func(cuts []int)) {
	cuts := make([]int, 0, n-1)
	var walk func(from int)
	walk = func(from int) {
		if len(cuts) == n-1 {
			fn(cuts)
			return
		}
		for c := from; c <= m-(n-1-len(cuts)); c++ {
			cuts = append(cuts, c)
			walk(c + 1)
			cuts = cuts[:len(cuts)-1]
		}
	}
	walk(1)
}

func groupSpans(segments []model.WallSegment, cuts []int) []wallSpan {
	bounds := append(append([]int{0}, cuts...), len(segments))
	spans := make([]wallSpan, 0, len(bounds)-1)
	offset := 0.0
	for i := 0; i < len(bounds)-1; i++ {
		var length float64
		for _, seg := range segments[bounds[i]:bounds[i+1]] {
			length += seg.Length
		}
		spans = append(spans, wallSpan{
			Offset: offset,
			Length: length,
			Start:  segments[bounds[i]].Label,
			End:    segments[bounds[i+1]-1].Label,
		})
		offset += length
	}
	return spans
}

// labelAt returns the label of the wall containing the given run position.
func labelAt(segments []model.WallSegment, pos float64) model.WallLabel {
	var cum float64
	for _, seg := range segments {
		cum += seg.Length
		if pos < cum {
			return seg.Label
		}
	}
	return segments[len(segments)-1].Label
}
