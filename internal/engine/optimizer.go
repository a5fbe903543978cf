package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/foilplan/internal/model"
)

var (
	// ErrUnknownSurface is returned when an override names a surface the
	// configuration does not contain.
	ErrUnknownSurface = errors.New("unknown surface")
	// ErrNarrowOnly is returned when a 2.05m roll is requested for foil that
	// only comes on 1.65m rolls.
	ErrNarrowOnly = errors.New("foil is only available on 1.65m rolls")
	// ErrNoFeasiblePlan is returned when no strip layout satisfies the constraints.
	ErrNoFeasiblePlan = errors.New("no feasible strip plan")
)

// Optimizer plans foil for a whole pool: every surface's strips and the
// physical rolls they are cut from.
type Optimizer struct {
	Settings model.PlannerSettings
}

func New(settings model.PlannerSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Plan is a shorthand for New(settings).Optimize(req).
func Plan(req model.PlanRequest, settings model.PlannerSettings) (model.MixConfiguration, error) {
	return New(settings).Optimize(req)
}

// Optimize plans every surface of the pool in packing order.
//
// Flat surfaces get the fewest parallel strips that cover them. Perimeter
// runs go through the wall strip optimizer; the main walls are offered the
// tail of the bottom's last roll of each width so a strip can be cut from
// it instead of opening a new roll. Such strips carry roll number 0 and are
// recorded as cuts on the bottom's roll.
func (o *Optimizer) Optimize(req model.PlanRequest) (model.MixConfiguration, error) {
	if err := o.Settings.Validate(); err != nil {
		return model.MixConfiguration{}, err
	}
	if err := req.Validate(); err != nil {
		return model.MixConfiguration{}, err
	}

	cfg := model.MixConfiguration{
		Request:     req,
		Settings:    o.Settings,
		IsOptimized: true,
	}
	for _, surface := range PlanSurfaces(req.Pool, o.Settings) {
		sc, err := o.planSurface(&cfg, surface, nil)
		if err != nil {
			return model.MixConfiguration{}, fmt.Errorf("failed to plan %s: %w", surface.Key, err)
		}
		cfg.Surfaces = append(cfg.Surfaces, sc)
		if err := hostReusedStrips(&cfg, sc); err != nil {
			return model.MixConfiguration{}, err
		}
	}
	recomputeTotals(&cfg)
	return cfg, nil
}

// planSurface builds the roll config of one surface against the rolls
// already in cfg. A non-nil override pins width and/or strip count.
func (o *Optimizer) planSurface(cfg *model.MixConfiguration, surface model.Surface, ov *model.SurfaceOverride) (model.SurfaceRollConfig, error) {
	narrowOnly := surface.NarrowOnly(cfg.Request.Subtype)
	var forceWidth model.RollWidth
	var forceCount int
	if ov != nil {
		forceWidth, forceCount = ov.Width, ov.StripCount
	}
	if narrowOnly && forceWidth == model.RollWide {
		return model.SurfaceRollConfig{}, fmt.Errorf("%w: %s", ErrNarrowOnly, surface.Key)
	}

	sc := model.SurfaceRollConfig{
		Surface: surface,
		Area:    surface.Area,
	}
	if surface.Key.IsRun() {
		in := WallInput{
			Surface:      surface.Key,
			Segments:     surface.Segments,
			Height:       surface.CoverWidth,
			HemAllowance: 2 * o.Settings.HorizontalOverlapMin,
			NarrowOnly:   narrowOnly,
			Mode:         cfg.Request.Mode,
			ForceWidth:   forceWidth,
			ForceCount:   forceCount,
		}
		if surface.Key == model.SurfaceDividingWall {
			// Seam allowances are already part of the lined height.
			in.HemAllowance = 0
		}
		if surface.Key == model.SurfaceWalls && o.Settings.ReuseRemnants {
			in.Remnants = bottomRemnants(*cfg, o.Settings)
		}
		plan, err := OptimizeWall(in, o.Settings)
		if err != nil {
			return model.SurfaceRollConfig{}, err
		}
		sc.RollWidth = plan.BaseWidth
		sc.Mixed = plan.Mixed()
		sc.StripCount = plan.TotalStripCount
		sc.Courses = plan.Courses
		sc.Strips = plan.Strips
		sc.Rolls = plan.Rolls
	} else {
		strips, err := planFlat(surface, narrowOnly, flatOptions{ForceWidth: forceWidth, ForceCount: forceCount}, o.Settings)
		if err != nil {
			return model.SurfaceRollConfig{}, err
		}
		strips, rolls, err := packStrips(surface.Key, strips, o.Settings)
		if err != nil {
			return model.SurfaceRollConfig{}, err
		}
		sc.RollWidth = strips[0].Width
		for _, st := range strips {
			if st.Piece == 0 {
				sc.StripCount++
			}
			if st.Width != sc.RollWidth {
				sc.Mixed = true
			}
		}
		sc.Strips = strips
		sc.Rolls = rolls
	}
	for _, st := range sc.Strips {
		sc.Consumed += st.Area()
	}
	sc.Waste = tailArea(sc.Rolls)
	return sc, nil
}

// bottomRemnants returns the tail of the bottom's last roll of each width.
func bottomRemnants(cfg model.MixConfiguration, s model.PlannerSettings) []Remnant {
	bottom, ok := cfg.Surface(model.SurfaceBottom)
	if !ok {
		return nil
	}
	var out []Remnant
	for _, w := range model.RollWidths {
		i := lastRollOfWidth(bottom.Rolls, w)
		if i < 0 {
			continue
		}
		r := bottom.Rolls[i]
		if r.Remaining() <= s.Tolerance {
			continue
		}
		out = append(out, Remnant{
			Surface: model.SurfaceBottom,
			Roll:    r.Number,
			Width:   r.Width,
			Length:  r.Remaining(),
		})
	}
	return out
}

// hostReusedStrips records every reused strip of sc as a cut on the roll it
// is taken from.
func hostReusedStrips(cfg *model.MixConfiguration, sc model.SurfaceRollConfig) error {
	for _, st := range sc.Strips {
		if !st.Reused {
			continue
		}
		h := cfg.Find(st.SourceSurface)
		if h < 0 {
			return fmt.Errorf("%w: strip %d of %s reuses missing surface %s", ErrNoFeasiblePlan, st.Index, sc.Key(), st.SourceSurface)
		}
		host := &cfg.Surfaces[h]
		found := false
		for r := range host.Rolls {
			if host.Rolls[r].Number == st.SourceRoll {
				host.Rolls[r].Add(sc.Key(), st.Index, st.Length)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: strip %d of %s reuses missing roll %d", ErrNoFeasiblePlan, st.Index, sc.Key(), st.SourceRoll)
		}
	}
	return nil
}

// recomputeTotals refreshes per-surface waste and the global totals from
// the rolls.
func recomputeTotals(cfg *model.MixConfiguration) {
	cfg.TotalRolls165, cfg.TotalRolls205 = 0, 0
	cfg.TotalWaste, cfg.UsefulArea, cfg.WastePercentage = 0, 0, 0
	for i := range cfg.Surfaces {
		sc := &cfg.Surfaces[i]
		sc.Waste = tailArea(sc.Rolls)
		cfg.TotalRolls165 += sc.RollCount(model.RollNarrow)
		cfg.TotalRolls205 += sc.RollCount(model.RollWide)
		cfg.TotalWaste += sc.Waste
		for _, st := range sc.Strips {
			cfg.UsefulArea += st.Area()
		}
	}
	if total := cfg.TotalWaste + cfg.UsefulArea; total > 0 {
		cfg.WastePercentage = cfg.TotalWaste / total * 100
	}
}
