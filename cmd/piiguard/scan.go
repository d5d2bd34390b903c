package piiguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/redactyl/piiguard/internal/audit"
	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/engine"
	"github.com/redactyl/piiguard/internal/report"
	"github.com/redactyl/piiguard/internal/types"
	"github.com/redactyl/piiguard/pkg/core"
)

const defaultBaseline = "piiguard.baseline.json"

var (
	flagPath            string
	flagFile            string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagEnable          string
	flagDisable         string
	flagTable           bool
	flagSARIF           bool
	flagStats           bool
	flagShowValues      bool
	flagCaseSensitive   bool
	flagNoValidators    bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagFailOn          string
	flagBaseline        string
	flagUpdateBaseline  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [TEXT]",
		Short: "Detect PII in text, a file, stdin or a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
		Example: `  piiguard scan "Contact john@example.com"
  piiguard scan --file notes.txt --stats
  piiguard scan --path ./exports --include "**/*.csv" --table`,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", "", "scan a directory tree")
	cmd.Flags().StringVarP(&flagFile, "file", "f", "", "scan a single file")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only report these labels (comma-separated)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "never report these labels (comma-separated)")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0 (directory scans)")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "print per-label statistics")
	cmd.Flags().BoolVar(&flagShowValues, "show-values", false, "print matched values instead of masked previews")
	cmd.Flags().BoolVar(&flagCaseSensitive, "case-sensitive", false, "match entity rules without case folding")
	cmd.Flags().BoolVar(&flagNoValidators, "no-validators", false, "disable checksum and format validators")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental scan cache")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, images, lockfiles, etc.)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "none", "exit 1 when a finding reaches low|medium|high (none disables)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", defaultBaseline, "baseline file of accepted findings")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "write all current findings to the baseline and exit")
}

func detectorOptions(s settings, log *zap.Logger) []detectors.Option {
	return []detectors.Option{
		detectors.WithMinConfidence(pickFloat(flagMinConfidence, s.local.MinConfidence, s.global.MinConfidence)),
		detectors.WithLabels(
			splitList(pickString(flagEnable, s.local.Enable, s.global.Enable)),
			splitList(pickString(flagDisable, s.local.Disable, s.global.Disable)),
		),
		detectors.WithValidators(!pickBool(flagNoValidators, s.local.NoValidators, s.global.NoValidators)),
		detectors.WithCaseSensitive(pickBool(flagCaseSensitive, s.local.CaseSensitive, s.global.CaseSensitive)),
		detectors.WithLogger(log),
	}
}

// readInput returns the text to scan from args, --file or stdin.
func readInput(args []string, file string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case !term.IsTerminal(int(os.Stdin.Fd())):
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	return "", errors.New("no input: pass TEXT, --file, --path or pipe stdin")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if flagPath != "" {
		root = flagPath
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	s, err := loadSettings(abs)
	if err != nil {
		return err
	}
	log, err := s.logger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	det := detectors.New(detectorOptions(s, log)...)

	if flagPath != "" {
		return scanTree(cmd, abs, s, det, log)
	}
	text, err := readInput(args, flagFile)
	if err != nil {
		return err
	}
	return scanText(cmd.OutOrStdout(), text, s, det)
}

func scanText(w io.Writer, text string, s settings, det *detectors.Detector) error {
	entities := det.Detect(text)
	if flagJSON {
		if !flagStats {
			return core.MarshalEntities(w, entities)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Entities []types.Serialized `json:"entities"`
			Stats    detectors.Stats    `json:"stats"`
		}{serialize(entities), detectors.Statistics(entities)})
	}
	opts := report.PrintOptions{NoColor: s.noColor() || !report.ColorEnabled(w), ShowValues: flagShowValues}
	report.PrintEntities(w, entities, opts)
	if flagStats {
		fmt.Fprintln(w)
		report.PrintStats(w, detectors.Statistics(entities), opts)
	}
	return nil
}

func serialize(entities []types.Entity) []types.Serialized {
	out := make([]types.Serialized, len(entities))
	for i, e := range entities {
		out[i] = e.Serialize()
	}
	return out
}

func scanTree(cmd *cobra.Command, abs string, s settings, det *detectors.Detector, log *zap.Logger) error {
	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, s.local.Include, s.global.Include),
		ExcludeGlobs:    pickString(flagExclude, s.local.Exclude, s.global.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, s.local.MaxBytes, s.global.MaxBytes),
		Threads:         pickInt(flagThreads, s.local.Threads, s.global.Threads),
		DefaultExcludes: pickBoolFlag(cmd, "default-excludes", flagDefaultExcludes, s.local.DefaultExcludes, s.global.DefaultExcludes),
		NoCache:         flagNoCache,
		Log:             log,
	}

	machine := flagJSON || flagSARIF
	if !machine {
		fmt.Fprintf(os.Stderr, "Scanning %s for %d entity types...\n", abs, len(detectors.IDs()))
	}
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !machine && term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.Scan(cmd.Context(), cfg, det)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if cfg.Progress != nil {
		fmt.Fprintln(os.Stderr)
	}

	if flagUpdateBaseline {
		if err := report.SaveBaseline(flagBaseline, res.Findings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings in %s\n", len(res.Findings), flagBaseline)
		return nil
	}
	baseline, _ := report.LoadBaseline(flagBaseline)
	fresh := report.FilterNewFindings(res.Findings, baseline)
	if fresh == nil {
		fresh = []engine.Finding{}
	}

	w := cmd.OutOrStdout()
	opts := report.PrintOptions{
		NoColor:      s.noColor() || !report.ColorEnabled(w),
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		ShowValues:   flagShowValues,
	}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(w, fresh, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := core.MarshalFindings(w, fresh); err != nil {
			return err
		}
	case flagTable:
		if err := report.PrintTable(w, fresh, opts); err != nil {
			return err
		}
	default:
		report.PrintText(w, fresh, opts)
	}
	if flagStats && !machine {
		fmt.Fprintln(w)
		report.PrintStats(w, detectors.Statistics(res.Entities()), opts)
	}

	baselineFile := ""
	if len(baseline.Items) > 0 {
		baselineFile = flagBaseline
	}
	writeAudit(audit.CreateScanRecord(abs, res.Findings, fresh, res.FilesScanned, res.Duration, baselineFile))

	if !strings.EqualFold(flagFailOn, "none") && report.ShouldFail(fresh, strings.ToLower(flagFailOn)) {
		os.Exit(1)
	}
	return nil
}
