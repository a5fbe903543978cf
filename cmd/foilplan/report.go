package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/foilplan/internal/engine"
	"github.com/piwi3910/foilplan/internal/model"
)

func printPlan(w io.Writer, title string, cfg model.MixConfiguration) {
	fmt.Fprintf(w, "%s (%s foil, %s)\n\n", title, cfg.Request.Subtype, cfg.Request.Mode)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Surface\tWidth\tStrips\tRolls\tArea m2\tConsumed m2\tWaste m2\t")
	for _, sc := range cfg.Surfaces {
		width := sc.RollWidth.String()
		if sc.Mixed {
			width += " mixed"
		}
		if sc.ManualOverride {
			width += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t\n",
			sc.Key().Label(), width, sc.StripCount, len(sc.Rolls), sc.Area, sc.Consumed, sc.Waste)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nRolls: %d x 1.65m, %d x 2.05m\n", cfg.TotalRolls165, cfg.TotalRolls205)
	fmt.Fprintf(w, "Waste: %.2f m2 (%.1f%%)\n", cfg.TotalWaste, cfg.WastePercentage)
	if !cfg.IsOptimized {
		fmt.Fprintln(w, "Manual overrides applied (*)")
	}

	seams := model.CalculateSeams(cfg, model.SealantWastePercent)
	fmt.Fprintf(w, "Seams: %.2f m, %d bottles of liquid PVC\n", seams.TotalLength, seams.LiquidPVCBottles)

	offcuts := model.DetectAllOffcuts(cfg, nil)
	if len(offcuts) > 0 {
		fmt.Fprintln(w, "\nOffcuts worth keeping:")
		for _, o := range offcuts {
			fmt.Fprintf(w, "  %s: %.2f m\n", o.Label(), o.Length)
		}
	}
}

func printCost(w io.Writer, est model.CostEstimate, currency string) {
	fmt.Fprintf(w, "\nCost (%s):\n", est.Product)
	fmt.Fprintf(w, "  Foil:  %.2f %s\n", est.FoilCost, currency)
	if est.WeldCost > 0 {
		fmt.Fprintf(w, "  Weld:  %.2f %s\n", est.WeldCost, currency)
	}
	fmt.Fprintf(w, "  Total: %.2f %s (%.2f %s/m2)\n", est.TotalCost, currency, est.CostPerM2, currency)
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tRolls 1.65m\tRolls 2.05m\tStrips\tWaste %\t")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%v\t\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\t\n", r.Scenario.Name, r.Rolls165, r.Rolls205, r.TotalStrips, r.WastePercent)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
