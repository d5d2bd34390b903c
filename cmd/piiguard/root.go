package piiguard

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/redactyl/piiguard/internal/audit"
	"github.com/redactyl/piiguard/internal/config"
	"github.com/redactyl/piiguard/internal/logger"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagThreads       int
	flagMinConfidence float64
	flagLogLevel      string
	flagLogFormat     string
	flagConfig        string
	flagAudit         bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the piiguard CLI.
var rootCmd = &cobra.Command{
	Use:           "piiguard",
	Short:         "Detect and anonymize PII",
	Long:          "piiguard finds personal data in text, files and directory trees, and anonymizes structured records with consistent, reproducible strategies.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the piiguard CLI. It should be called by the main package.
// Interrupts cancel the running command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only report entities with confidence >= value (0-1)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console|json")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .piiguard.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&flagAudit, "audit", false, "append a run record to the audit log")
}

// settings holds the local and global config files for a run.
type settings struct {
	local, global config.FileConfig
}

// loadSettings reads the global config and the local one from root, or the
// file named by --config.
func loadSettings(root string) (settings, error) {
	var s settings
	if c, err := config.LoadGlobal(); err == nil {
		s.global = c
	}
	if flagConfig != "" {
		c, err := config.LoadFile(flagConfig)
		if err != nil {
			return s, err
		}
		s.local = c
		return s, nil
	}
	if c, err := config.LoadLocal(root); err == nil {
		s.local = c
	}
	return s, nil
}

func (s settings) logger() (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:  pickString(flagLogLevel, s.local.LogLevel, s.global.LogLevel),
		Format: pickString(flagLogFormat, s.local.LogFormat, s.global.LogFormat),
	})
}

func (s settings) noColor() bool {
	return pickBool(flagNoColor, s.local.NoColor, s.global.NoColor)
}

func writeAudit(record audit.RunRecord) {
	if !flagAudit {
		return
	}
	root, _ := filepath.Abs(".")
	if err := audit.NewAuditLog(root).Log(record); err != nil {
		fmt.Fprintln(os.Stderr, "audit warning:", err)
	}
}
