package model

// CostEstimate holds the foil purchase and welding cost of a plan.
type CostEstimate struct {
	Product           string      `json:"product"`
	Rolls165          int         `json:"rolls_165"`
	Rolls205          int         `json:"rolls_205"`
	PricePerRoll165   float64     `json:"price_per_roll_165"`
	PricePerRoll205   float64     `json:"price_per_roll_205"`
	FoilCost          float64     `json:"foil_cost"`
	Seams             SeamSummary `json:"seams"`
	WeldPricePerMeter float64     `json:"weld_price_per_meter"`
	WeldCost          float64     `json:"weld_cost"`
	TotalCost         float64     `json:"total_cost"`
	UsefulArea        float64     `json:"useful_area"`  // m2 of foil cut into strips
	CostPerM2         float64     `json:"cost_per_m2"`  // Total cost per m2 of lined surface
	OffcutValue       float64     `json:"offcut_value"` // Value of roll tails worth keeping
}

// SealantWastePercent is the extra seam length allowed for liquid PVC.
const SealantWastePercent = 10.0

// EstimateCost prices a plan with the given product. Rolls are bought whole;
// reused roll tails add no cost.
func EstimateCost(cfg MixConfiguration, product FoilProduct, weldPricePerMeter float64) CostEstimate {
	est := CostEstimate{
		Product:           product.Name,
		Rolls165:          cfg.TotalRolls165,
		Rolls205:          cfg.TotalRolls205,
		PricePerRoll165:   product.PricePerRoll(RollNarrow),
		PricePerRoll205:   product.PricePerRoll(RollWide),
		Seams:             CalculateSeams(cfg, SealantWastePercent),
		WeldPricePerMeter: weldPricePerMeter,
		UsefulArea:        cfg.UsefulArea,
	}
	est.FoilCost = float64(est.Rolls165)*est.PricePerRoll165 + float64(est.Rolls205)*est.PricePerRoll205
	est.WeldCost = est.Seams.TotalLength * weldPricePerMeter
	est.TotalCost = est.FoilCost + est.WeldCost

	var lined float64
	for _, sc := range cfg.Surfaces {
		lined += sc.Area
	}
	if lined > 0 {
		est.CostPerM2 = est.TotalCost / lined
	}
	for _, o := range DetectAllOffcuts(cfg, &product) {
		est.OffcutValue += o.Value
	}
	return est
}
