// foilplan - pool liner cutting and roll planner
//
// Plans how a PVC pool liner is cut from 1.65m and 2.05m foil rolls and
// writes cut sheets, roll labels and bills of materials.
//
// Build:
//   go build -o foilplan ./cmd/foilplan
//
// Examples:
//   foilplan -length 10 -width 5 -depth 1.5 -pdf plan.pdf
//   foilplan -job villa.yaml -roll-width walls=1.65 -xlsx villa.xlsx
//   foilplan -import pools.csv

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/foilplan/internal/engine"
	"github.com/piwi3910/foilplan/internal/export"
	"github.com/piwi3910/foilplan/internal/importer"
	"github.com/piwi3910/foilplan/internal/logging"
	"github.com/piwi3910/foilplan/internal/model"
	"github.com/piwi3910/foilplan/internal/project"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// overrideFlag collects repeatable surface=value pairs.
type overrideFlag []string

func (o *overrideFlag) String() string { return strings.Join(*o, ",") }

func (o *overrideFlag) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected surface=value, got %q", v)
	}
	*o = append(*o, v)
	return nil
}

type options struct {
	configPath    string
	inventoryPath string
	logLevel      string
	logFormat     string
	logFile       string

	jobPath  string
	preset   string
	dxfPath  string
	dxfUnit  string
	length   float64
	width    float64
	depth    float64
	deepEnd  float64
	oval     bool
	subtype  string
	mode     string
	noReuse  bool
	name     string
	customer string

	rollWidths  overrideFlag
	stripCounts overrideFlag

	importPath string
	compare    bool
	product    string
	weldPrice  float64
	jsonOut    bool
	pdfPath    string
	xlsxPath   string
	labelsPath string
	saveJob    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("foilplan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "Application config file (.json or .yaml)")
	fs.StringVar(&opts.inventoryPath, "inventory", project.DefaultInventoryPath(), "Foil and pool preset inventory file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")

	fs.StringVar(&opts.jobPath, "job", "", "Load the pool from a saved job")
	fs.StringVar(&opts.preset, "preset", "", "Use a pool preset from the inventory")
	fs.StringVar(&opts.dxfPath, "dxf", "", "Read a custom basin outline from a DXF drawing")
	fs.StringVar(&opts.dxfUnit, "dxf-unit", "mm", "Drawing unit of the DXF file: mm, cm, m")
	fs.Float64Var(&opts.length, "length", 0, "Pool length (m)")
	fs.Float64Var(&opts.width, "width", 0, "Pool width (m)")
	fs.Float64Var(&opts.depth, "depth", 0, "Pool depth (m)")
	fs.Float64Var(&opts.deepEnd, "deep-end", 0, "Deep end depth (m), 0 for a flat bottom")
	fs.BoolVar(&opts.oval, "oval", false, "Oval basin instead of rectangular")
	fs.StringVar(&opts.subtype, "subtype", "", "Foil subtype: standard, printed, structural")
	fs.StringVar(&opts.mode, "mode", "", "Optimization mode: minWaste, minRolls")
	fs.BoolVar(&opts.noReuse, "no-reuse", false, "Do not cut wall strips from bottom roll tails")
	fs.StringVar(&opts.name, "name", "", "Job name")
	fs.StringVar(&opts.customer, "customer", "", "Customer name")

	fs.Var(&opts.rollWidths, "roll-width", "Pin a surface to a roll width, e.g. walls=1.65 (repeatable)")
	fs.Var(&opts.stripCounts, "strips", "Pin a surface's strip count, e.g. bottom=3 (repeatable)")

	fs.StringVar(&opts.importPath, "import", "", "Import pool presets from a CSV or Excel file")
	fs.BoolVar(&opts.compare, "compare", false, "Compare what-if scenarios")
	fs.StringVar(&opts.product, "product", "", "Foil product name for the cost estimate")
	fs.Float64Var(&opts.weldPrice, "weld-price", 0, "Welding price per meter of seam")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print the plan as JSON")
	fs.StringVar(&opts.pdfPath, "pdf", "", "Write the cut sheet PDF")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "Write the bill of materials workbook")
	fs.StringVar(&opts.labelsPath, "labels", "", "Write the strip label sheet PDF")
	fs.StringVar(&opts.saveJob, "save-job", "", "Save the job and its plan (.json or .yaml)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	appConfig, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(opts, appConfig, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	inv, err := project.LoadInventory(opts.inventoryPath)
	if err != nil {
		return err
	}

	if opts.importPath != "" {
		if err := importPresets(logger, opts, &inv, stdout); err != nil {
			return err
		}
		if !opts.hasPool() {
			return nil
		}
	}

	job, err := buildJob(logger, opts, appConfig, inv)
	if err != nil {
		return err
	}

	if opts.compare {
		results := engine.CompareScenarios(engine.BuildDefaultScenarios(job.Request, job.Settings))
		printComparison(stdout, results)
	}

	var cfg model.MixConfiguration
	if job.PlanIsCurrent() {
		logger.Debug("using stored plan", "job", job.Name)
		cfg = *job.Plan
	} else {
		cfg, err = engine.Plan(job.Request, job.Settings)
		if err != nil {
			return fmt.Errorf("failed to plan %s: %w", job.Name, err)
		}
	}
	logger.Info("planned", "job", job.Name, "surfaces", len(cfg.Surfaces), "rolls", cfg.TotalRolls(), "waste_percent", cfg.WastePercentage)

	cfg, err = applyOverrides(logger, cfg, opts)
	if err != nil {
		return err
	}

	product, err := findProduct(opts, appConfig, inv, job)
	if err != nil {
		return err
	}
	if product != nil {
		job.ProductID = product.ID
	}

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
	} else {
		printPlan(stdout, job.Name, cfg)
		if product != nil {
			printCost(stdout, model.EstimateCost(cfg, *product, opts.weldPrice), appConfig.Currency)
		}
	}

	if err := writeExports(logger, opts, job.Name, cfg, product); err != nil {
		return err
	}

	if opts.saveJob != "" {
		job.SetPlan(cfg)
		if err := project.SaveJob(opts.saveJob, job); err != nil {
			return err
		}
		appConfig.AddRecentJob(opts.saveJob)
		if err := project.SaveAppConfig(opts.configPath, appConfig); err != nil {
			return err
		}
		logger.Info("saved job", "path", opts.saveJob)
	}
	return nil
}

func (o options) hasPool() bool {
	return o.jobPath != "" || o.preset != "" || o.dxfPath != "" || o.length > 0
}

func setupLogger(opts options, appConfig model.AppConfig, stderr io.Writer) (*slog.Logger, func() error, error) {
	cfg := logging.DefaultConfig()
	if appConfig.LogLevel != "" {
		cfg.Level = appConfig.LogLevel
	}
	if appConfig.LogFormat != "" {
		cfg.Format = appConfig.LogFormat
	}
	if opts.logLevel != "" {
		cfg.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Format = opts.logFormat
	}
	if opts.logFile != "" {
		cfg.Output = opts.logFile
		return logging.Setup(cfg)
	}
	return logging.New(stderr, cfg), func() error { return nil }, nil
}

func importPresets(logger *slog.Logger, opts options, inv *model.Inventory, stdout io.Writer) error {
	result := importer.ImportPools(opts.importPath)
	for _, w := range result.Warnings {
		logger.Warn("import", "file", opts.importPath, "warning", w)
	}
	for _, e := range result.Errors {
		logger.Error("import", "file", opts.importPath, "error", e)
	}
	if len(result.Pools) == 0 {
		return fmt.Errorf("no pools imported from %s", opts.importPath)
	}
	*inv = project.MergeInventory(*inv, model.Inventory{Presets: result.Pools})
	if err := project.SaveInventory(opts.inventoryPath, *inv); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Imported %d pool presets from %s (%d rows skipped)\n", len(result.Pools), filepath.Base(opts.importPath), len(result.Errors))
	return nil
}

func buildJob(logger *slog.Logger, opts options, appConfig model.AppConfig, inv model.Inventory) (model.Job, error) {
	if opts.jobPath != "" {
		job, err := project.LoadJob(opts.jobPath)
		if err != nil {
			return job, err
		}
		if opts.mode != "" {
			job.Request.Mode = model.OptimizationMode(opts.mode)
		}
		if opts.subtype != "" {
			job.Request.Subtype = model.FoilSubtype(opts.subtype)
		}
		if opts.noReuse {
			job.Settings.ReuseRemnants = false
		}
		return job, job.Request.Validate()
	}

	req := model.PlanRequest{
		Subtype: appConfig.DefaultSubtype,
		Mode:    appConfig.DefaultMode,
	}
	if opts.subtype != "" {
		req.Subtype = model.FoilSubtype(opts.subtype)
	}
	if opts.mode != "" {
		req.Mode = model.OptimizationMode(opts.mode)
	}

	name := opts.name
	switch {
	case opts.preset != "":
		preset := inv.FindPresetByName(opts.preset)
		if preset == nil {
			return model.Job{}, fmt.Errorf("pool preset %q not found", opts.preset)
		}
		req.Pool = preset.Pool
		if name == "" {
			name = preset.Name
		}
	case opts.dxfPath != "":
		unit, err := parseUnit(opts.dxfUnit)
		if err != nil {
			return model.Job{}, err
		}
		result := importer.ImportOutlineDXF(opts.dxfPath, unit)
		for _, w := range result.Warnings {
			logger.Warn("dxf", "file", opts.dxfPath, "warning", w)
		}
		if len(result.Errors) > 0 {
			return model.Job{}, fmt.Errorf("failed to read outline from %s: %s", opts.dxfPath, strings.Join(result.Errors, "; "))
		}
		req.Pool = importer.CustomPool(result.Outline, opts.depth)
		req.Pool.DeepEndDepth = opts.deepEnd
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(opts.dxfPath), filepath.Ext(opts.dxfPath))
		}
	case opts.length > 0:
		req.Pool = model.NewRectangularPool(opts.length, opts.width, opts.depth)
		if opts.oval {
			req.Pool.Shape = model.ShapeOval
		}
		req.Pool.DeepEndDepth = opts.deepEnd
		if name == "" {
			name = fmt.Sprintf("Pool %gx%gx%g", opts.length, opts.width, opts.depth)
		}
	default:
		return model.Job{}, errors.New("no pool given: use -job, -preset, -dxf or -length/-width/-depth")
	}
	if err := req.Validate(); err != nil {
		return model.Job{}, err
	}

	settings := model.DefaultSettings()
	appConfig.ApplyToSettings(&settings)
	if opts.noReuse {
		settings.ReuseRemnants = false
	}
	return model.NewJob(name, opts.customer, req, settings), nil
}

func parseUnit(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "mm":
		return importer.UnitMillimeters, nil
	case "cm":
		return importer.UnitCentimeters, nil
	case "m":
		return importer.UnitMeters, nil
	}
	return 0, fmt.Errorf("unknown drawing unit %q", s)
}

func applyOverrides(logger *slog.Logger, cfg model.MixConfiguration, opts options) (model.MixConfiguration, error) {
	for _, o := range opts.rollWidths {
		key, value, _ := strings.Cut(o, "=")
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid roll width in %q: %w", o, err)
		}
		cfg, err = engine.SetSurfaceRollWidth(cfg, model.SurfaceKey(key), model.RollWidth(w))
		if err != nil {
			return cfg, fmt.Errorf("failed to override %s: %w", key, err)
		}
		logger.Info("override", "surface", key, "roll_width", w)
	}
	for _, o := range opts.stripCounts {
		key, value, _ := strings.Cut(o, "=")
		n, err := strconv.Atoi(value)
		if err != nil {
			return cfg, fmt.Errorf("invalid strip count in %q: %w", o, err)
		}
		cfg, err = engine.SetSurfaceStripCount(cfg, model.SurfaceKey(key), n)
		if err != nil {
			return cfg, fmt.Errorf("failed to override %s: %w", key, err)
		}
		logger.Info("override", "surface", key, "strips", n)
	}
	return cfg, nil
}

func findProduct(opts options, appConfig model.AppConfig, inv model.Inventory, job model.Job) (*model.FoilProduct, error) {
	if opts.product != "" {
		p := inv.FindProductByName(opts.product)
		if p == nil {
			return nil, fmt.Errorf("foil product %q not found", opts.product)
		}
		return p, nil
	}
	if job.ProductID != "" {
		if p := inv.FindProductByID(job.ProductID); p != nil {
			return p, nil
		}
	}
	if appConfig.DefaultProductID != "" {
		return inv.FindProductByID(appConfig.DefaultProductID), nil
	}
	return nil, nil
}

func writeExports(logger *slog.Logger, opts options, title string, cfg model.MixConfiguration, product *model.FoilProduct) error {
	if opts.pdfPath != "" {
		if err := export.ExportCutSheet(opts.pdfPath, cfg, title); err != nil {
			return err
		}
		logger.Info("wrote cut sheet", "path", opts.pdfPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, cfg); err != nil {
			return err
		}
		logger.Info("wrote labels", "path", opts.labelsPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportBOM(opts.xlsxPath, cfg, product, opts.weldPrice); err != nil {
			return err
		}
		logger.Info("wrote bill of materials", "path", opts.xlsxPath)
	}
	return nil
}
