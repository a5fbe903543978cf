package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/foilplan/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data printed on a strip label and encoded in its QR code.
type LabelInfo struct {
	Surface    model.SurfaceKey `json:"surface"`
	Strip      int              `json:"strip"`
	Width      float64          `json:"width_m"`
	Length     float64          `json:"length_m"`
	Course     int              `json:"course,omitempty"`
	Walls      string           `json:"walls,omitempty"`
	Roll       string           `json:"roll"`      // e.g. "bottom 2.05m #1"
	RollOffset float64          `json:"offset_m"` // Where the cut starts on the roll
	Reused     bool             `json:"reused,omitempty"`
}

// Label sheet layout: A4 with 3 columns x 8 rows of 70 x 37 mm labels.
const (
	labelMarginTop  = 0.5
	labelMarginLeft = 0.0
	labelWidth      = 70.0
	labelHeight     = 37.0
	labelCols       = 3
	labelRows       = 8
	labelsPerPage   = labelCols * labelRows
	qrSize          = 28.0
	labelPadding    = 3.0
)

// CollectLabelInfos returns one label per roll cut, in surface and roll order.
func CollectLabelInfos(cfg model.MixConfiguration) []LabelInfo {
	strips := make(map[model.SurfaceKey]map[int]model.Strip, len(cfg.Surfaces))
	for _, sc := range cfg.Surfaces {
		byIndex := make(map[int]model.Strip, len(sc.Strips))
		for _, st := range sc.Strips {
			byIndex[st.Index] = st
		}
		strips[sc.Key()] = byIndex
	}

	var labels []LabelInfo
	for _, sc := range cfg.Surfaces {
		for _, roll := range sc.Rolls {
			for _, cut := range roll.Cuts {
				st := strips[cut.Surface][cut.Strip]
				info := LabelInfo{
					Surface:    cut.Surface,
					Strip:      cut.Strip,
					Width:      roll.Width.Meters(),
					Length:     cut.Length,
					Course:     st.Course,
					Roll:       fmt.Sprintf("%s %s", sc.Key(), roll.Label()),
					RollOffset: cut.Offset,
					Reused:     st.Reused,
				}
				if st.StartLabel != "" {
					info.Walls = string(st.StartLabel)
					if st.EndLabel != st.StartLabel {
						info.Walls += "-" + string(st.EndLabel)
					}
				}
				labels = append(labels, info)
			}
		}
	}
	return labels
}

// ExportLabels writes a PDF of QR-coded strip labels, one per cut, so each
// strip can be marked as it comes off the roll.
func ExportLabels(path string, cfg model.MixConfiguration) error {
	labels := CollectLabelInfos(cfg)
	if len(labels) == 0 {
		return fmt.Errorf("no strips to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %s strip %d: %w", label.Surface, label.Strip, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	col := colorFor(info.Surface)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(textX, y+labelPadding, 2, labelHeight-2*labelPadding, "F")
	textX += 3.5
	textW -= 3.5

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5, fmt.Sprintf("%s #%d", info.Surface.Label(), info.Strip), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(textX, y+labelPadding+6)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%.2f x %.2f m", info.Width, info.Length), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(90, 90, 90)
	line := y + labelPadding + 12
	if info.Walls != "" {
		pdf.SetXY(textX, line)
		pdf.CellFormat(textW, 3.5, fmt.Sprintf("Walls %s, course %d", info.Walls, info.Course+1), "", 0, "L", false, 0, "")
		line += 4
	}
	pdf.SetXY(textX, line)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Roll %s", info.Roll), "", 0, "L", false, 0, "")
	line += 4
	pdf.SetXY(textX, line)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("from %.2f m", info.RollOffset), "", 0, "L", false, 0, "")

	if info.Reused {
		pdf.SetXY(textX, line+4)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3.5, "remnant", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
