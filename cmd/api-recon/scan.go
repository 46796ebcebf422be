package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"api-recon/internal/analyzer"
	"api-recon/internal/config"
	"api-recon/internal/exporter"
	"api-recon/internal/logger"
	"api-recon/internal/model"
	"api-recon/internal/ui"
)

type ScanCmd struct {
	Root     string   `arg:"" optional:"" help:"Source root to analyze. Overrides project.root_dir." type:"path"`
	Config   string   `help:"Path to configuration file." short:"c" default:"config.yaml" type:"path"`
	Verbose  bool     `help:"Enable verbose logging (DEBUG level)." short:"v"`
	LogLevel string   `help:"Console log level (debug, info, warn, error). Overrides --verbose."`
	Output   string   `help:"Override output directory from config." short:"o"`
	Format   []string `help:"Output formats (openapi,descriptor,yaml,excel,html,word). Defaults to output.formats." short:"f" sep:","`
	Pause    bool     `help:"Wait for Enter before exiting."`
	Quiet    bool     `help:"Hide progress bars."`
}

func (c *ScanCmd) Run() error {
	printBanner()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.Root != "" {
		cfg.Project.RootDir = c.Root
	}
	if c.Output != "" {
		abs, err := filepath.Abs(c.Output)
		if err != nil {
			return err
		}
		cfg.Output.Dir = abs
		if err := cfg.EnsureOutputDir(); err != nil {
			return err
		}
	}
	if len(c.Format) > 0 {
		cfg.Output.Formats = c.Format
	}

	logPath := filepath.Join(cfg.Output.Dir, "api_recon.log")
	if err := logger.Init(os.Stdout, logPath, c.Verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()
	if c.LogLevel != "" {
		logger.SetLevel(logger.ParseLevel(c.LogLevel))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if logger.IsVerbose() {
		cfg.Print()
	}

	report, err := c.analyze(cfg)
	if err != nil {
		logger.Error("Analysis failed: %v", err)
		return err
	}

	logger.Info("✅ Analysis Complete. %d endpoints, %d diagnostics. Check [%s] directory.",
		len(report.Endpoints), len(report.Diagnostics), cfg.Output.Dir)
	logger.Debug("Log file: %s", logger.GetLogFilePath())
	return nil
}

func (c *ScanCmd) analyze(cfg *config.Config) (*model.Report, error) {
	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseScanning,
		ui.PhaseParsing,
		ui.PhaseResolving,
		ui.PhaseGenerating,
	})
	if c.Quiet {
		pipeline.Disable()
	}

	// --- Phase 1: Scanning ---
	logger.Info("Phase 1: Scanning %s...", cfg.Project.RootDir)
	scanBar := pipeline.NextPhase(1)
	acfg := cfg.AnalyzerConfig()
	files, err := analyzer.ScanDirectory(acfg.RootDir, acfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	scanBar.Increment()
	logger.Info("Found %d Java files", len(files))

	// --- Phase 2: Parsing ---
	logger.Info("Phase 2: Parsing sources...")
	parseBar := pipeline.NextPhase(len(files))
	a, err := analyzer.New(acfg)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		a.LoadFile(path)
		parseBar.Step(path)
	}

	// --- Phase 3: Resolving ---
	logger.Info("Phase 3: Resolving generic types and endpoints...")
	resolveBar := pipeline.NextPhase(1)
	report := a.Resolve()
	resolveBar.Increment()
	logger.Info("Extracted %d API endpoints from %d controllers (%d generic declarations)",
		report.Summary.TotalEndpoints, report.Summary.TotalControllers, report.Summary.TotalSchemas)

	// --- Phase 4: Reporting ---
	logger.Info("Phase 4: Generating Reports...")
	exporters := exporter.GetExporters(cfg.Output.Formats)
	genBar := pipeline.NextPhase(len(exporters))

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(report, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		genBar.Step(fmt.Sprintf("%T", exp))
	}
	pipeline.Finish()
	pipeline.PrintSummary(fmt.Sprintf("%d endpoints, %d generic declarations, %d diagnostics",
		report.Summary.TotalEndpoints, report.Summary.TotalSchemas, len(report.Diagnostics)))

	if len(exportErrors) > 0 {
		return report, fmt.Errorf("one or more exports failed: %w", errors.Join(exportErrors...))
	}
	return report, nil
}
