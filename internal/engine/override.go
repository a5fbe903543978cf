package engine

import (
	"fmt"

	"github.com/piwi3910/foilplan/internal/model"
)

// SetSurfaceRollWidth returns a copy of cfg with the surface re-planned on
// rolls of the given width. Other surfaces keep their plans; strips they cut
// from the surface's rolls are re-packed onto the new rolls.
func SetSurfaceRollWidth(cfg model.MixConfiguration, key model.SurfaceKey, width model.RollWidth) (model.MixConfiguration, error) {
	idx, err := overrideTarget(cfg, key)
	if err != nil {
		return cfg, err
	}
	if !width.Valid() {
		return cfg, fmt.Errorf("invalid roll width %.2f", width.Meters())
	}
	if width == model.RollWide && cfg.Surfaces[idx].Surface.NarrowOnly(cfg.Request.Subtype) {
		return cfg, fmt.Errorf("%w: %s", ErrNarrowOnly, key)
	}
	ov := currentOverride(cfg.Surfaces[idx])
	ov.Width = width
	return replanSurface(cfg, idx, ov)
}

// SetSurfaceStripCount returns a copy of cfg with the surface re-planned
// using exactly n strips (per course on walls).
func SetSurfaceStripCount(cfg model.MixConfiguration, key model.SurfaceKey, n int) (model.MixConfiguration, error) {
	idx, err := overrideTarget(cfg, key)
	if err != nil {
		return cfg, err
	}
	if n < 1 {
		return cfg, fmt.Errorf("%w: strip count must be at least 1", ErrNoFeasiblePlan)
	}
	ov := currentOverride(cfg.Surfaces[idx])
	ov.StripCount = n
	return replanSurface(cfg, idx, ov)
}

// ResetToOptimal drops every override by running a fresh optimization of
// the configuration's request.
func ResetToOptimal(cfg model.MixConfiguration) (model.MixConfiguration, error) {
	return New(cfg.Settings).Optimize(cfg.Request)
}

func overrideTarget(cfg model.MixConfiguration, key model.SurfaceKey) (int, error) {
	if !key.Valid() {
		return -1, fmt.Errorf("%w: %q", ErrUnknownSurface, key)
	}
	idx := cfg.Find(key)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s is not part of this pool", ErrUnknownSurface, key)
	}
	return idx, nil
}

func currentOverride(sc model.SurfaceRollConfig) model.SurfaceOverride {
	if sc.Override != nil {
		return *sc.Override
	}
	return model.SurfaceOverride{}
}

// guestCut is a strip of another surface cut from the re-planned surface's rolls.
type guestCut struct {
	surface model.SurfaceKey
	strip   int
	width   model.RollWidth
	length  float64
}

func replanSurface(cfg model.MixConfiguration, idx int, ov model.SurfaceOverride) (model.MixConfiguration, error) {
	out := cfg.Clone()
	key := out.Surfaces[idx].Key()

	// Strips of the target hosted on other surfaces' rolls go back to the host.
	for i := range out.Surfaces {
		if i == idx {
			continue
		}
		for r := range out.Surfaces[i].Rolls {
			out.Surfaces[i].Rolls[r].Remove(key)
		}
		dropEmptyRolls(&out, i)
	}

	var guests []guestCut
	for _, r := range out.Surfaces[idx].Rolls {
		for _, c := range r.Cuts {
			if c.Surface != key {
				guests = append(guests, guestCut{surface: c.Surface, strip: c.Strip, width: r.Width, length: c.Length})
			}
		}
	}

	o := New(out.Settings)
	sc, err := o.planSurface(&out, out.Surfaces[idx].Surface, &ov)
	if err != nil {
		return cfg, err
	}

	p := newRollPackerWithRolls(key, out.Settings, sc.Rolls)
	for _, g := range guests {
		num, err := p.insert(g.surface, g.strip, g.width, g.length)
		if err != nil {
			return cfg, err
		}
		if gi := out.Find(g.surface); gi >= 0 {
			for s := range out.Surfaces[gi].Strips {
				if out.Surfaces[gi].Strips[s].Index == g.strip {
					out.Surfaces[gi].Strips[s].SourceRoll = num
				}
			}
		}
	}
	sc.Rolls = p.rolls
	sc.ManualOverride = true
	sc.Override = &ov
	out.Surfaces[idx] = sc

	if err := hostReusedStrips(&out, sc); err != nil {
		return cfg, err
	}
	out.IsOptimized = false
	recomputeTotals(&out)
	return out, nil
}

// dropEmptyRolls removes rolls of surface i left without cuts and renumbers
// the rest, following the new numbers on every strip that refers to them.
func dropEmptyRolls(cfg *model.MixConfiguration, i int) {
	host := &cfg.Surfaces[i]
	renumber := make(map[int]int, len(host.Rolls))
	kept := host.Rolls[:0]
	for _, r := range host.Rolls {
		if len(r.Cuts) == 0 {
			continue
		}
		renumber[r.Number] = len(kept) + 1
		r.Number = len(kept) + 1
		kept = append(kept, r)
	}
	if len(kept) == len(host.Rolls) {
		return
	}
	host.Rolls = kept
	for s := range host.Strips {
		if !host.Strips[s].Reused {
			host.Strips[s].RollNumber = renumber[host.Strips[s].RollNumber]
		}
	}
	for j := range cfg.Surfaces {
		for s := range cfg.Surfaces[j].Strips {
			st := &cfg.Surfaces[j].Strips[s]
			if st.Reused && st.SourceSurface == host.Surface.Key {
				st.SourceRoll = renumber[st.SourceRoll]
			}
		}
	}
}
