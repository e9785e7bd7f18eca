package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/KaramelBytes/cfpstats/internal/cfp"
	cfgpkg "github.com/KaramelBytes/cfpstats/internal/config"
	"github.com/KaramelBytes/cfpstats/internal/proposals"
	"github.com/KaramelBytes/cfpstats/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Run flags (override config if set)
	flagOutDir        string
	flagFormats       []string
	flagWorkbook      bool
	flagManifest      bool
	flagQuiet         bool
	flagBarWidth      int
	flagCompanyColumn string
	flagDelimiter     string
	flagSheetName     string
	flagSheetIndex    int

	// Loaded configuration
	cfg *cfgpkg.Global
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cfpstats <input.csv>",
	Short: "CFP analytics: counts, charts and tables from a proposal export",
	Long: `cfpstats reads a conference proposal export (CSV, TSV or XLSX) and writes
one CSV table plus SVG and PNG charts per report: running total by day, product,
level, speaker pronouns, underrepresented groups, travel assistance and employer.
Outputs are written next to the input as <input><suffix>.<format>.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		log = newLogger(debug, cmd.ErrOrStderr())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runAnalytics,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefixes err with its failure class.
func errorLine(err error) string {
	var (
		we *report.WriteError
		re *report.RenderError
	)
	switch {
	case errors.Is(err, proposals.ErrInvalidInput):
		return "✗ Input error: " + err.Error()
	case errors.As(err, &we), errors.As(err, &re):
		return "✗ Output error: " + err.Error()
	default:
		return "✗ Error: " + err.Error()
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.cfpstats/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")

	f := rootCmd.Flags()
	f.StringVar(&flagOutDir, "out-dir", "", "write outputs to this directory instead of next to the input")
	f.StringSliceVar(&flagFormats, "formats", nil, "output formats: csv, svg, png (default from config)")
	f.BoolVar(&flagWorkbook, "xlsx", false, "also write every report to <input>-report.xlsx")
	f.BoolVar(&flagManifest, "manifest", false, "also write a run manifest to <input>-manifest.yaml")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "skip console bar charts and the summary table")
	f.IntVar(&flagBarWidth, "bar-width", 0, "console bar length in characters (overrides config)")
	f.StringVar(&flagCompanyColumn, "company-column", "", "column holding the speaker's company (overrides config)")
	addLoadFlags(f)
}

// applyFlags overlays explicitly set run flags on the loaded config.
func applyFlags(cmd *cobra.Command, c *cfgpkg.Global) error {
	f := cmd.Flags()
	if f.Changed("out-dir") {
		c.OutDir = flagOutDir
	}
	if f.Changed("formats") {
		c.Formats = flagFormats
	}
	if f.Changed("xlsx") {
		c.Workbook = flagWorkbook
	}
	if f.Changed("manifest") {
		c.Manifest = flagManifest
	}
	if f.Changed("bar-width") {
		c.BarWidth = flagBarWidth
	}
	if f.Changed("company-column") {
		c.CompanyColumn = flagCompanyColumn
	}
	return c.Validate()
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	c := *cfg
	if err := applyFlags(cmd, &c); err != nil {
		return err
	}
	formats, err := report.ParseFormats(c.Formats)
	if err != nil {
		return err
	}
	emp, err := proposals.NewEmployer(c.EmployerPattern, c.EmployerName)
	if err != nil {
		return err
	}
	load, err := loadOptions()
	if err != nil {
		return err
	}
	log.Debug("run",
		zap.String("input", args[0]),
		zap.String("out_dir", c.OutDir),
		zap.Strings("formats", c.Formats))

	_, err = cfp.Run(cfp.Options{
		Input:         args[0],
		Load:          load,
		OutDir:        c.OutDir,
		Formats:       formats,
		Chart:         report.ChartOptions{Width: c.ChartWidth, Height: c.ChartHeight},
		BarWidth:      c.BarWidth,
		CompanyColumn: c.CompanyColumn,
		Employer:      emp,
		Workbook:      c.Workbook,
		Manifest:      c.Manifest,
		Quiet:         flagQuiet,
		Out:           cmd.OutOrStdout(),
		Warn:          cmd.ErrOrStderr(),
		Log:           log,
	})
	return err
}
