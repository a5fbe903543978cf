// Package export writes workshop documents for a foil plan: cut sheets,
// roll labels and a bill of materials.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/foilplan/internal/model"
)

// rgb is a fill or draw color.
type rgb struct {
	R, G, B int
}

// surfaceColors gives each surface its own cut color, in packing order.
var surfaceColors = map[model.SurfaceKey]rgb{
	model.SurfaceBottom:       {R: 33, G: 150, B: 243}, // blue
	model.SurfaceWalls:        {R: 76, G: 175, B: 80},  // green
	model.SurfaceStairs:       {R: 255, G: 152, B: 0},  // orange
	model.SurfaceWadingBottom: {R: 0, G: 188, B: 212},  // cyan
	model.SurfaceWadingWalls:  {R: 156, G: 39, B: 176}, // purple
	model.SurfaceDividingWall: {R: 121, G: 85, B: 72},  // brown
}

func colorFor(key model.SurfaceKey) rgb {
	if c, ok := surfaceColors[key]; ok {
		return c
	}
	return rgb{R: 158, G: 158, B: 158}
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	contentWidth = pageWidth - marginLeft - marginRight
	rollBarWidth = 18.0 // Height of one roll bar; scaled from the roll width
	rowHeight    = 5.5
)

// ExportCutSheet writes the cut sheet of a plan: one page per surface with
// its rolls drawn to scale and a strip table, followed by a summary page.
func ExportCutSheet(path string, cfg model.MixConfiguration, title string) error {
	if len(cfg.Surfaces) == 0 {
		return fmt.Errorf("no surfaces to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(title, true)

	for _, sc := range cfg.Surfaces {
		pdf.AddPage()
		renderSurfacePage(pdf, cfg, sc, title)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, cfg, title)

	return pdf.OutputFileAndClose(path)
}

// renderSurfacePage draws one surface: heading, roll diagrams, strip table.
func renderSurfacePage(pdf *fpdf.Fpdf, cfg model.MixConfiguration, sc model.SurfaceRollConfig, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	heading := fmt.Sprintf("%s - %s", title, sc.Key().Label())
	pdf.CellFormat(contentWidth, headerHeight, heading, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Roll width: %s%s | Strips: %d | Area: %.2f m2 | Cut: %.2f m2 | Tail waste: %.2f m2",
		sc.RollWidth, mixedSuffix(sc), sc.StripCount, sc.Area, sc.Consumed, sc.Waste)
	if sc.Courses > 1 {
		stats += fmt.Sprintf(" | Courses: %d", sc.Courses)
	}
	if sc.ManualOverride {
		stats += " | manual override"
	}
	pdf.CellFormat(contentWidth, 5, stats, "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 9
	scale := contentWidth / cfg.Settings.RollLength
	for _, roll := range sc.Rolls {
		if y+rollBarWidth+8 > pageHeight/2+10 {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(contentWidth, 4, "More rolls in the strip table below.", "", 0, "L", false, 0, "")
			y += 5
			break
		}
		y = drawRoll(pdf, sc.Key(), roll, scale, y)
	}

	if len(sc.Strips) > 0 {
		drawStripTable(pdf, sc, y+2)
	}
}

func mixedSuffix(sc model.SurfaceRollConfig) string {
	if sc.Mixed {
		return " (mixed)"
	}
	return ""
}

// drawRoll draws a roll as a bar of its length with every cut laid out in
// order. It returns the y below the drawing.
func drawRoll(pdf *fpdf.Fpdf, owner model.SurfaceKey, roll model.RollAllocation, scale, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, 4, fmt.Sprintf("Roll %s  (%.2f m used, %.2f m left)", roll.Label(), roll.Used, roll.Waste),
		"", 0, "L", false, 0, "")
	y += 4.5

	barH := rollBarWidth * roll.Width.Meters() / model.RollWide.Meters()
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, y, roll.Capacity*scale, barH, "FD")

	for _, cut := range roll.Cuts {
		col := colorFor(cut.Surface)
		x := marginLeft + cut.Offset*scale
		w := cut.Length * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, barH, "FD")

		label := fmt.Sprintf("#%d %.2fm", cut.Strip, cut.Length)
		if cut.Surface != owner {
			label = fmt.Sprintf("%s #%d", cut.Surface.Label(), cut.Strip)
		}
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(255, 255, 255)
		if lw := pdf.GetStringWidth(label); lw < w-2 {
			pdf.SetXY(x+(w-lw)/2, y+barH/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
	return y + barH + 3
}

// drawStripTable lists every strip of the surface.
func drawStripTable(pdf *fpdf.Fpdf, sc model.SurfaceRollConfig, y float64) {
	colWidths := []float64{14, 20, 22, 22, 24, 16, 14, 26, 50, 59}
	headers := []string{"Strip", "Width", "Length", "Span", "Overlap", "Course", "Piece", "Walls", "Roll", "Note"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 8)
	for i, st := range sc.Strips {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		walls := ""
		if st.StartLabel != "" {
			walls = string(st.StartLabel)
			if st.EndLabel != st.StartLabel {
				walls += "-" + string(st.EndLabel)
			}
		}
		roll := fmt.Sprintf("%s #%d", st.Width, st.RollNumber)
		note := ""
		if st.Reused {
			roll = fmt.Sprintf("%s %s #%d", st.SourceSurface.Label(), st.Width, st.SourceRoll)
			note = "cut from remnant"
		}
		row := []string{
			fmt.Sprintf("%d", st.Index),
			st.Width.String(),
			fmt.Sprintf("%.2f m", st.Length),
			fmt.Sprintf("%.2f m", st.Span),
			fmt.Sprintf("%.2f m", st.VerticalOverlap),
			fmt.Sprintf("%d", st.Course+1),
			fmt.Sprintf("%d", st.Piece+1),
			walls,
			roll,
			note,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
}

// renderSummaryPage draws the plan totals, surface breakdown and seams.
func renderSummaryPage(pdf *fpdf.Fpdf, cfg model.MixConfiguration, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, title+" - Foil Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	seams := model.CalculateSeams(cfg, model.SealantWastePercent)
	status := "optimized"
	if !cfg.IsOptimized {
		status = "manually adjusted"
	}
	y = drawKeyValues(pdf, "Totals", y, []keyValue{
		{"Foil", string(cfg.Request.Subtype)},
		{"Mode", string(cfg.Request.Mode)},
		{"Plan", status},
		{"Rolls 1.65m", fmt.Sprintf("%d", cfg.TotalRolls165)},
		{"Rolls 2.05m", fmt.Sprintf("%d", cfg.TotalRolls205)},
		{"Foil cut into strips", fmt.Sprintf("%.2f m2", cfg.UsefulArea)},
		{"Roll tails", fmt.Sprintf("%.2f m2 (%.1f%%)", cfg.TotalWaste, cfg.WastePercentage)},
		{"Seams to weld", fmt.Sprintf("%.1f m (%d bottles liquid PVC)", seams.TotalLength, seams.LiquidPVCBottles)},
	})
	y += 4

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Surfaces", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 30, 20, 25, 30, 30, 30, 35}
	headers := []string{"Surface", "Width", "Strips", "Rolls", "Area", "Cut", "Tail waste", "Seams"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	perSurface := model.CalculatePerSurfaceSeams(cfg)
	pdf.SetFont("Helvetica", "", 9)
	for i, sc := range cfg.Surfaces {
		row := []string{
			sc.Key().Label(),
			sc.RollWidth.String() + mixedSuffix(sc),
			fmt.Sprintf("%d", sc.StripCount),
			fmt.Sprintf("%d", len(sc.Rolls)),
			fmt.Sprintf("%.2f m2", sc.Area),
			fmt.Sprintf("%.2f m2", sc.Consumed),
			fmt.Sprintf("%.2f m2", sc.Waste),
			fmt.Sprintf("%.1f m", perSurface[i].Length),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	offcuts := model.DetectAllOffcuts(cfg, nil)
	if len(offcuts) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Offcuts to keep", "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		for _, o := range offcuts {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %.2f m (%.2f m2)", o.Label(), o.Length, o.Area()), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by foilplan - pool liner cutting plan", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

type keyValue struct {
	key, value string
}

// drawKeyValues draws a titled list of label/value pairs and returns the y
// below it.
func drawKeyValues(pdf *fpdf.Fpdf, heading string, y float64, items []keyValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.key+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}
