package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/foilplan/internal/model"
	"github.com/xuri/excelize/v2"
)

// BOM sheet names.
const (
	SheetSummary = "Summary"
	SheetRolls   = "Rolls"
	SheetStrips  = "Strips"
	SheetOffcuts = "Offcuts"
	SheetCost    = "Cost"
)

// ExportBOM writes the bill of materials workbook of a plan. A product adds
// a cost sheet and values the offcuts; it may be nil.
func ExportBOM(path string, cfg model.MixConfiguration, product *model.FoilProduct, weldPricePerMeter float64) error {
	if len(cfg.Surfaces) == 0 {
		return fmt.Errorf("no surfaces to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	w := &bomWriter{f: f, header: header}

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	w.summary(cfg)
	w.rolls(cfg)
	w.strips(cfg)
	w.offcuts(model.DetectAllOffcuts(cfg, product))
	if product != nil {
		w.cost(model.EstimateCost(cfg, *product, weldPricePerMeter))
	}
	if w.err != nil {
		return w.err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// bomWriter appends rows to sheets and keeps the first error.
type bomWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *bomWriter) sheet(name string, headers ...string) {
	if w.err != nil {
		return
	}
	if name != SheetSummary {
		if _, err := w.f.NewSheet(name); err != nil {
			w.err = fmt.Errorf("failed to add sheet %s: %w", name, err)
			return
		}
	}
	if len(headers) == 0 {
		return
	}
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	w.row(name, 1, row...)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.f.SetCellStyle(name, "A1", last, w.header); err != nil && w.err == nil {
		w.err = err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := w.f.SetColWidth(name, "A", lastCol, 16); err != nil && w.err == nil {
		w.err = err
	}
}

func (w *bomWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(1, n)
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, n, err)
	}
}

func (w *bomWriter) summary(cfg model.MixConfiguration) {
	w.sheet(SheetSummary, "Item", "Value")
	seams := model.CalculateSeams(cfg, model.SealantWastePercent)
	items := [][2]interface{}{
		{"Foil", string(cfg.Request.Subtype)},
		{"Mode", string(cfg.Request.Mode)},
		{"Optimized", cfg.IsOptimized},
		{"Rolls 1.65m", cfg.TotalRolls165},
		{"Rolls 2.05m", cfg.TotalRolls205},
		{"Useful area (m2)", round2(cfg.UsefulArea)},
		{"Roll tail waste (m2)", round2(cfg.TotalWaste)},
		{"Waste (%)", round2(cfg.WastePercentage)},
		{"Seam length (m)", round2(seams.TotalLength)},
		{"Liquid PVC bottles", seams.LiquidPVCBottles},
	}
	for i, it := range items {
		w.row(SheetSummary, i+2, it[0], it[1])
	}
}

func (w *bomWriter) rolls(cfg model.MixConfiguration) {
	w.sheet(SheetRolls, "Surface", "Roll", "Width (m)", "Length (m)", "Used (m)", "Left (m)", "Cuts")
	n := 2
	for _, sc := range cfg.Surfaces {
		for _, r := range sc.Rolls {
			w.row(SheetRolls, n, sc.Key().Label(), r.Number, r.Width.Meters(), r.Capacity, round2(r.Used), round2(r.Waste), len(r.Cuts))
			n++
		}
	}
}

func (w *bomWriter) strips(cfg model.MixConfiguration) {
	w.sheet(SheetStrips, "Surface", "Strip", "Width (m)", "Length (m)", "Span (m)", "Overlap (m)",
		"Course", "Piece", "From", "To", "Roll", "Remnant of")
	n := 2
	for _, sc := range cfg.Surfaces {
		for _, st := range sc.Strips {
			remnant := ""
			if st.Reused {
				remnant = fmt.Sprintf("%s #%d", st.SourceSurface.Label(), st.SourceRoll)
			}
			w.row(SheetStrips, n, sc.Key().Label(), st.Index, st.Width.Meters(), round2(st.Length), round2(st.Span),
				round2(st.VerticalOverlap), st.Course+1, st.Piece+1, string(st.StartLabel), string(st.EndLabel),
				st.RollNumber, remnant)
			n++
		}
	}
}

func (w *bomWriter) offcuts(offcuts []model.Offcut) {
	w.sheet(SheetOffcuts, "Offcut", "Surface", "Roll", "Width (m)", "Length (m)", "Area (m2)", "Value")
	for i, o := range offcuts {
		w.row(SheetOffcuts, i+2, o.ID, o.Surface.Label(), o.RollNumber, o.Width.Meters(), round2(o.Length), round2(o.Area()), round2(o.Value))
	}
}

func (w *bomWriter) cost(est model.CostEstimate) {
	w.sheet(SheetCost, "Item", "Quantity", "Unit price", "Total")
	rows := [][]interface{}{
		{est.Product + " 1.65m", est.Rolls165, est.PricePerRoll165, float64(est.Rolls165) * est.PricePerRoll165},
		{est.Product + " 2.05m", est.Rolls205, est.PricePerRoll205, float64(est.Rolls205) * est.PricePerRoll205},
		{"Seam welding (m)", round2(est.Seams.TotalLength), est.WeldPricePerMeter, round2(est.WeldCost)},
		{"Total", "", "", round2(est.TotalCost)},
		{"Cost per m2", "", "", round2(est.CostPerM2)},
		{"Offcut value", "", "", round2(est.OffcutValue)},
	}
	for i, r := range rows {
		w.row(SheetCost, i+2, r...)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
