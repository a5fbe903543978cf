package export

import (
	"testing"

	"github.com/piwi3910/foilplan/internal/engine"
	"github.com/piwi3910/foilplan/internal/model"
)

func TestExportCutSheet_CreatesFile(t *testing.T) {
	path := tempPath(t, "cutsheet.pdf")
	cfg := buildTestPlan(t, model.ModeMinRolls)

	if err := ExportCutSheet(path, cfg, "Villa Rossi"); err != nil {
		t.Fatalf("ExportCutSheet returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 1000)
}

func TestExportCutSheet_EmptyPlan(t *testing.T) {
	if err := ExportCutSheet(tempPath(t, "empty.pdf"), model.MixConfiguration{}, "Empty"); err == nil {
		t.Fatal("expected error for a plan without surfaces")
	}
}

func TestExportCutSheet_AfterOverride(t *testing.T) {
	cfg := buildTestPlan(t, model.ModeMinWaste)
	cfg, err := engine.SetSurfaceRollWidth(cfg, model.SurfaceBottom, model.RollNarrow)
	if err != nil {
		t.Fatalf("override failed: %v", err)
	}

	path := tempPath(t, "override.pdf")
	if err := ExportCutSheet(path, cfg, "Override"); err != nil {
		t.Fatalf("ExportCutSheet returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 1000)
}

func TestExportCutSheet_SplitStrips(t *testing.T) {
	// Bottom strips of a 30m pool are cut in two pieces each.
	cfg, err := engine.Plan(model.PlanRequest{
		Pool:    model.NewRectangularPool(30, 6, 1.5),
		Subtype: model.SubtypePrinted,
		Mode:    model.ModeMinWaste,
	}, model.DefaultSettings())
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}

	path := tempPath(t, "long.pdf")
	if err := ExportCutSheet(path, cfg, "Lap pool"); err != nil {
		t.Fatalf("ExportCutSheet returned error: %v", err)
	}
	assertNonEmptyFile(t, path, 1000)
}
