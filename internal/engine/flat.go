package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/foilplan/internal/model"
)

// flatOptions pins choices of the flat strip planner. Zero values leave the
// choice free.
type flatOptions struct {
	ForceWidth model.RollWidth
	ForceCount int
}

// flatMix is one candidate combination of wide and narrow strips.
type flatMix struct {
	count  int
	wide   int
	excess float64
}

// planFlat lines a flat surface with parallel strips running along x.
//
// Every combination of strip count and wide strip count is tried. The
// winner uses the fewest strips, then wastes the least width past the
// cover dimension, then uses the fewest wide strips. Wide strips are laid
// first. Strips longer than a roll are cut into pieces joined with the
// strip overlap.
func planFlat(surface model.Surface, narrowOnly bool, opts flatOptions, s model.PlannerSettings) ([]model.Strip, error) {
	if narrowOnly && opts.ForceWidth == model.RollWide {
		return nil, fmt.Errorf("%w: %s", ErrNarrowOnly, surface.Key)
	}
	mix, ok := chooseFlatMix(surface.CoverWidth, narrowOnly, opts, s)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be covered with %d strips", ErrNoFeasiblePlan, surface.Key, opts.ForceCount)
	}

	widths := make([]model.RollWidth, mix.count)
	for i := range widths {
		widths[i] = model.RollNarrow
		if i < mix.wide {
			widths[i] = model.RollWide
		}
	}

	var strips []model.Strip
	offset := 0.0
	for i, w := range widths {
		span := w.Meters() - s.StripOverlap
		if i == len(widths)-1 {
			span = surface.CoverWidth - offset
		}
		top := math.Min(offset+w.Meters(), surface.CoverWidth)
		length := surface.StripLength
		if len(surface.Outline) >= 3 {
			length = surface.Outline.ExtentInBand(offset, top)
		}
		for p, piece := range splitLength(length, s) {
			strip := model.Strip{
				Index:  len(strips) + 1,
				Width:  w,
				Length: piece,
				Offset: offset,
				Piece:  p,
			}
			if p == 0 {
				strip.Span = span
			}
			strips = append(strips, strip)
		}
		offset += span
	}
	return strips, nil
}

func chooseFlatMix(cover float64, narrowOnly bool, opts flatOptions, s model.PlannerSettings) (flatMix, bool) {
	narrow, wide := model.RollNarrow.Meters(), model.RollWide.Meters()
	maxCount := int(math.Ceil((cover-s.StripOverlap)/(narrow-s.StripOverlap))) + 1
	if maxCount < 1 {
		maxCount = 1
	}
	minCount := 1
	if opts.ForceCount > 0 {
		minCount, maxCount = opts.ForceCount, opts.ForceCount
	}

	coverage := func(count, wideCount int) float64 {
		if count <= 0 {
			return 0
		}
		return float64(wideCount)*wide + float64(count-wideCount)*narrow - float64(count-1)*s.StripOverlap
	}

	for count := minCount; count <= maxCount; count++ {
		var best flatMix
		found := false
		for wideCount := 0; wideCount <= count; wideCount++ {
			if wideCount > 0 && (narrowOnly || opts.ForceWidth == model.RollNarrow) {
				break
			}
			if opts.ForceWidth == model.RollWide && wideCount != count {
				continue
			}
			total := coverage(count, wideCount)
			if s.Less(total, cover) {
				continue
			}
			// The last strip must add coverage; otherwise it is redundant.
			if count > 1 && !s.Less(coverage(count-1, min(wideCount, count-1)), cover) {
				continue
			}
			cand := flatMix{count: count, wide: wideCount, excess: total - cover}
			if !found || s.Less(cand.excess, best.excess) {
				best, found = cand, true
			}
		}
		if found {
			return best, true
		}
	}
	return flatMix{}, false
}

// splitLength cuts a strip into the fewest equal pieces that fit a roll,
// each joint adding one strip overlap.
func splitLength(length float64, s model.PlannerSettings) []float64 {
	if s.Fits(length, s.RollLength) {
		return []float64{length}
	}
	pieces := 2
	for !s.Fits((length+float64(pieces-1)*s.StripOverlap)/float64(pieces), s.RollLength) {
		pieces++
	}
	each := (length + float64(pieces-1)*s.StripOverlap) / float64(pieces)
	out := make([]float64, pieces)
	for i := range out {
		out[i] = each
	}
	return out
}
