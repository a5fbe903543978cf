package engine

import (
	"fmt"

	"github.com/piwi3910/foilplan/internal/model"
)

// rollPacker lays strips onto physical rolls of fixed length.
//
// Strips are packed first-fit in the order given: each strip goes onto the
// first open roll of its width with enough length left, otherwise a new roll
// is opened. Declaration order is kept on purpose so cut sheets follow the
// surface layout; this is an approximation, not an optimal bin packing.
type rollPacker struct {
	surface  model.SurfaceKey
	capacity float64
	settings model.PlannerSettings
	rolls    []model.RollAllocation
}

func newRollPacker(surface model.SurfaceKey, settings model.PlannerSettings) *rollPacker {
	return &rollPacker{
		surface:  surface,
		capacity: settings.RollLength,
		settings: settings,
	}
}

// newRollPackerWithRolls resumes packing onto rolls that already hold cuts.
func newRollPackerWithRolls(surface model.SurfaceKey, settings model.PlannerSettings, rolls []model.RollAllocation) *rollPacker {
	p := newRollPacker(surface, settings)
	p.rolls = rolls
	return p
}

// insert places a strip of the given width and length and returns the
// roll number it landed on.
func (p *rollPacker) insert(owner model.SurfaceKey, strip int, width model.RollWidth, length float64) (int, error) {
	if !p.settings.Fits(length, p.capacity) {
		return 0, fmt.Errorf("%w: strip of %.2fm exceeds the %.0fm roll", ErrNoFeasiblePlan, length, p.capacity)
	}
	for i := range p.rolls {
		r := &p.rolls[i]
		if r.Width != width {
			continue
		}
		if p.settings.Fits(r.Used+length, r.Capacity) {
			r.Add(owner, strip, length)
			return r.Number, nil
		}
	}
	roll := model.NewRoll(len(p.rolls)+1, width, p.capacity)
	roll.Add(owner, strip, length)
	p.rolls = append(p.rolls, roll)
	return roll.Number, nil
}

// packStrips packs every strip that is not already sourced from another
// surface's roll and records the roll number on it.
func packStrips(surface model.SurfaceKey, strips []model.Strip, settings model.PlannerSettings) ([]model.Strip, []model.RollAllocation, error) {
	p := newRollPacker(surface, settings)
	out := make([]model.Strip, len(strips))
	copy(out, strips)
	for i := range out {
		if out[i].Reused {
			continue
		}
		n, err := p.insert(surface, out[i].Index, out[i].Width, out[i].Length)
		if err != nil {
			return nil, nil, err
		}
		out[i].RollNumber = n
	}
	return out, p.rolls, nil
}

// tailArea returns the total unused tail area of the rolls.
func tailArea(rolls []model.RollAllocation) float64 {
	var total float64
	for _, r := range rolls {
		total += r.WasteArea()
	}
	return total
}

// lastRollOfWidth returns the index of the most recently opened roll of the
// given width, or -1.
func lastRollOfWidth(rolls []model.RollAllocation, width model.RollWidth) int {
	for i := len(rolls) - 1; i >= 0; i-- {
		if rolls[i].Width == width {
			return i
		}
	}
	return -1
}
