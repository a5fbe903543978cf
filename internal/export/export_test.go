package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/foilplan/internal/engine"
	"github.com/piwi3910/foilplan/internal/model"
	"github.com/stretchr/testify/require"
)

// buildTestPlan plans a 10x5x1.5 pool with stairs and a wading pool.
func buildTestPlan(t *testing.T, mode model.OptimizationMode) model.MixConfiguration {
	t.Helper()
	pool := model.NewRectangularPool(10, 5, 1.5)
	pool.Stairs = model.StairsConfig{Enabled: true, StepCount: 3, StepDepth: 0.3, Width: 1.5}
	pool.WadingPool = model.WadingPoolConfig{
		Enabled: true, Length: 3, Width: 2, Depth: 0.5,
		DividingWall: model.DividingWallConfig{Enabled: true, Offset: 0.2},
	}
	cfg, err := engine.Plan(model.PlanRequest{
		Pool:    pool,
		Subtype: model.SubtypeStandard,
		Mode:    mode,
	}, model.DefaultSettings())
	require.NoError(t, err)
	return cfg
}

func countStrips(cfg model.MixConfiguration) int {
	n := 0
	for _, sc := range cfg.Surfaces {
		n += len(sc.Strips)
	}
	return n
}

func assertNonEmptyFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
