package engine

import (
	"testing"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRequest(mode model.OptimizationMode) model.PlanRequest {
	return model.PlanRequest{
		Pool:    model.NewRectangularPool(10, 5, 1.5),
		Subtype: model.SubtypeStandard,
		Mode:    mode,
	}
}

func optimize(t *testing.T, req model.PlanRequest) model.MixConfiguration {
	t.Helper()
	cfg, err := New(model.DefaultSettings()).Optimize(req)
	require.NoError(t, err)
	return cfg
}

// assertPlanInvariants checks the properties every plan must hold.
func assertPlanInvariants(t *testing.T, cfg model.MixConfiguration) {
	t.Helper()
	s := cfg.Settings
	for _, sc := range cfg.Surfaces {
		plan := sc.Plan()
		if sc.Surface.Key.IsRun() {
			for c := 0; c < sc.Courses; c++ {
				assert.InDelta(t, sc.Surface.StripLength, plan.CoveredLength(c), 1e-6, "%s course %d", sc.Key(), c)
			}
		} else {
			assert.InDelta(t, sc.Surface.CoverWidth, plan.CoveredLength(0), 1e-6, "%s coverage", sc.Key())
		}
		for _, r := range sc.Rolls {
			var sum float64
			for _, c := range r.Cuts {
				sum += c.Length
			}
			assert.LessOrEqual(t, sum, s.RollLength+s.Tolerance, "%s %s over capacity", sc.Key(), r.Label())
			assert.GreaterOrEqual(t, r.Waste, 0.0)
		}
		if sc.Surface.NarrowOnly(cfg.Request.Subtype) {
			assert.Equal(t, model.RollNarrow, sc.RollWidth, "%s", sc.Key())
			for _, st := range sc.Strips {
				assert.Equal(t, model.RollNarrow, st.Width, "%s strip %d", sc.Key(), st.Index)
			}
		}
	}
	assert.GreaterOrEqual(t, cfg.TotalWaste, 0.0)
	assert.GreaterOrEqual(t, cfg.WastePercentage, 0.0)
	assert.Less(t, cfg.WastePercentage, 100.0)
}

func TestOptimize_ScenarioMinWaste(t *testing.T) {
	cfg := optimize(t, scenarioRequest(model.ModeMinWaste))
	require.Len(t, cfg.Surfaces, 2)
	assert.True(t, cfg.IsOptimized)

	bottom, ok := cfg.Surface(model.SurfaceBottom)
	require.True(t, ok)
	assert.Equal(t, 3, bottom.StripCount)
	assert.True(t, bottom.Mixed)
	assert.Equal(t, model.RollWide, bottom.RollWidth)

	walls, ok := cfg.Surface(model.SurfaceWalls)
	require.True(t, ok)
	assert.Equal(t, 2, walls.StripCount)
	assert.True(t, walls.Mixed)

	// The wide wall strip is cut from the bottom's 2.05m roll.
	require.True(t, walls.Strips[0].Reused)
	assert.Equal(t, model.SurfaceBottom, walls.Strips[0].SourceSurface)
	assert.Equal(t, 1, walls.Strips[0].SourceRoll)
	wideRoll := bottom.Rolls[0]
	assert.Equal(t, model.RollWide, wideRoll.Width)
	require.Len(t, wideRoll.Cuts, 2)
	assert.Equal(t, model.SurfaceWalls, wideRoll.Cuts[1].Surface)
	assert.InDelta(t, 10.0, wideRoll.Cuts[1].Offset, 1e-9)
	assert.InDelta(t, 0.0, wideRoll.Waste, 1e-9)

	assert.Equal(t, 2, cfg.TotalRolls165)
	assert.Equal(t, 1, cfg.TotalRolls205)
	assert.InDelta(t, 5*1.65+9.9*1.65, cfg.TotalWaste, 1e-9)
	assert.InDelta(t, 53.5+55.665, cfg.UsefulArea, 1e-9)
	assert.InDelta(t, cfg.TotalWaste/(cfg.TotalWaste+cfg.UsefulArea)*100, cfg.WastePercentage, 1e-9)

	assertPlanInvariants(t, cfg)
}

func TestOptimize_ScenarioMinRolls(t *testing.T) {
	cfg := optimize(t, scenarioRequest(model.ModeMinRolls))
	walls, ok := cfg.Surface(model.SurfaceWalls)
	require.True(t, ok)
	assert.Equal(t, 4, walls.StripCount)

	wide := 0
	for _, st := range walls.Strips {
		if st.Width == model.RollWide {
			wide++
			assert.Zero(t, st.VerticalOverlap)
		}
	}
	assert.GreaterOrEqual(t, wide, 1)

	bottom, _ := cfg.Surface(model.SurfaceBottom)
	for _, r := range bottom.Rolls {
		assert.Len(t, r.Cuts, map[model.RollWidth]int{model.RollWide: 2, model.RollNarrow: 3}[r.Width])
	}
	assert.Equal(t, 2, cfg.TotalRolls165)
	assert.Equal(t, 1, cfg.TotalRolls205)

	assertPlanInvariants(t, cfg)
}

func TestOptimize_MinRollsConsumesNoMore(t *testing.T) {
	pools := []model.PoolDimensions{
		model.NewRectangularPool(10, 5, 1.5),
		model.NewRectangularPool(8, 4, 1.4),
		model.NewRectangularPool(12, 6, 1.8),
		fullPool(),
	}
	for _, p := range pools {
		waste := optimize(t, model.PlanRequest{Pool: p, Subtype: model.SubtypeStandard, Mode: model.ModeMinWaste})
		rolls := optimize(t, model.PlanRequest{Pool: p, Subtype: model.SubtypeStandard, Mode: model.ModeMinRolls})

		var cw, cr float64
		for _, sc := range waste.Surfaces {
			cw += sc.Consumed
		}
		for _, sc := range rolls.Surfaces {
			cr += sc.Consumed
		}
		assert.LessOrEqual(t, cr, cw+1e-6, "pool %.0fx%.0f", p.Length, p.Width)
		assertPlanInvariants(t, waste)
		assertPlanInvariants(t, rolls)
	}
}

func TestOptimize_NarrowOnlySubtypes(t *testing.T) {
	for _, subtype := range []model.FoilSubtype{model.SubtypePrinted, model.SubtypeStructural} {
		for _, mode := range []model.OptimizationMode{model.ModeMinWaste, model.ModeMinRolls} {
			req := model.PlanRequest{Pool: fullPool(), Subtype: subtype, Mode: mode}
			cfg := optimize(t, req)
			assert.Zero(t, cfg.TotalRolls205, "%s/%s", subtype, mode)
			for _, sc := range cfg.Surfaces {
				for _, st := range sc.Strips {
					assert.Equal(t, model.RollNarrow, st.Width)
				}
			}
			assertPlanInvariants(t, cfg)
		}
	}
}

func TestOptimize_FullPoolSurfaces(t *testing.T) {
	cfg := optimize(t, model.PlanRequest{Pool: fullPool(), Subtype: model.SubtypeStandard, Mode: model.ModeMinWaste})
	keys := make([]model.SurfaceKey, len(cfg.Surfaces))
	for i, sc := range cfg.Surfaces {
		keys[i] = sc.Key()
	}
	assert.Equal(t, model.SurfaceKeys, keys)

	stairs, _ := cfg.Surface(model.SurfaceStairs)
	assert.Equal(t, model.RollNarrow, stairs.RollWidth)
	wading, _ := cfg.Surface(model.SurfaceWadingBottom)
	assert.Equal(t, model.RollNarrow, wading.RollWidth)
	assert.Equal(t, 2, wading.StripCount)

	assertPlanInvariants(t, cfg)
}

func TestOptimize_NoRemnantReuse(t *testing.T) {
	s := model.DefaultSettings()
	s.ReuseRemnants = false
	cfg, err := New(s).Optimize(scenarioRequest(model.ModeMinRolls))
	require.NoError(t, err)
	for _, sc := range cfg.Surfaces {
		for _, st := range sc.Strips {
			assert.False(t, st.Reused)
			assert.NotZero(t, st.RollNumber)
		}
		for _, r := range sc.Rolls {
			for _, c := range r.Cuts {
				assert.Equal(t, sc.Key(), c.Surface)
			}
		}
	}
}

func TestOptimize_InvalidInput(t *testing.T) {
	_, err := New(model.DefaultSettings()).Optimize(model.PlanRequest{
		Pool:    model.NewRectangularPool(10, 0, 1.5),
		Subtype: model.SubtypeStandard,
		Mode:    model.ModeMinWaste,
	})
	assert.ErrorIs(t, err, model.ErrInvalidDimensions)

	s := model.DefaultSettings()
	s.RollLength = 0
	_, err = New(s).Optimize(scenarioRequest(model.ModeMinWaste))
	assert.ErrorIs(t, err, model.ErrInvalidSettings)

	req := scenarioRequest("")
	_, err = Plan(req, model.DefaultSettings())
	assert.Error(t, err)
}

func TestOptimize_Deterministic(t *testing.T) {
	req := model.PlanRequest{Pool: fullPool(), Subtype: model.SubtypeStandard, Mode: model.ModeMinRolls}
	assert.Equal(t, optimize(t, req), optimize(t, req))
}
