package engine

import (
	"fmt"

	"github.com/piwi3910/foilplan/internal/model"
)

// ComparisonScenario defines a named request and settings to compare.
type ComparisonScenario struct {
	Name     string
	Request  model.PlanRequest
	Settings model.PlannerSettings
}

// ComparisonResult holds the plan and computed statistics for a single
// scenario. Err is set when the scenario has no feasible plan.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.MixConfiguration
	Rolls165     int
	Rolls205     int
	TotalStrips  int
	Consumed     float64
	WastePercent float64
	Err          error
}

// CompareScenarios plans each scenario and returns the results in scenario
// order, for side-by-side comparison of modes, foils or settings.
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cfg, err := New(scenario.Settings).Optimize(scenario.Request)
		res := ComparisonResult{Scenario: scenario, Err: err}
		if err == nil {
			res.Result = cfg
			res.Rolls165 = cfg.TotalRolls165
			res.Rolls205 = cfg.TotalRolls205
			res.WastePercent = cfg.WastePercentage
			for _, sc := range cfg.Surfaces {
				res.TotalStrips += sc.StripCount
				res.Consumed += sc.Consumed
			}
		}
		results = append(results, res)
	}

	return results
}

// CompareModes plans the request once per optimization mode.
func CompareModes(req model.PlanRequest, settings model.PlannerSettings) []ComparisonResult {
	var scenarios []ComparisonScenario
	for _, mode := range []model.OptimizationMode{model.ModeMinWaste, model.ModeMinRolls} {
		r := req
		r.Mode = mode
		scenarios = append(scenarios, ComparisonScenario{Name: string(mode), Request: r, Settings: settings})
	}
	return CompareScenarios(scenarios)
}

// BuildDefaultScenarios generates what-if alternatives around the current
// request: the other optimization mode, no remnant reuse, and narrow rolls
// only when the foil would allow wide ones.
func BuildDefaultScenarios(req model.PlanRequest, baseSettings model.PlannerSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Request:  req,
			Settings: baseSettings,
		},
	}

	// Scenario: the other objective
	alt := req
	if req.Mode == model.ModeMinRolls {
		alt.Mode = model.ModeMinWaste
	} else {
		alt.Mode = model.ModeMinRolls
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Mode %s", alt.Mode),
		Request:  alt,
		Settings: baseSettings,
	})

	// Scenario: every surface on fresh rolls
	if baseSettings.ReuseRemnants {
		noReuse := baseSettings
		noReuse.ReuseRemnants = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Remnant Reuse",
			Request:  req,
			Settings: noReuse,
		})
	}

	// Scenario: narrow-only printed foil
	if !req.Subtype.NarrowOnly() {
		narrow := req
		narrow.Subtype = model.SubtypePrinted
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Narrow Rolls Only",
			Request:  narrow,
			Settings: baseSettings,
		})
	}

	return scenarios
}
