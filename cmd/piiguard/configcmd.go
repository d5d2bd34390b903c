package piiguard

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/config"
)

var (
	cfgPreset string
	cfgOutput string
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter detector config or anonymization job",
		Example: `  piiguard config init                      # .piiguard.yml with detector settings
  piiguard config init --preset staging     # staging.job.yml for 'anonymize --config'`,
		RunE: runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgPreset, "preset", "detector", "detector | "+strings.Join(presetNames(), " | "))
	initCmd.Flags().StringVarP(&cfgOutput, "output", "o", "", "output file path (default: .piiguard.yml or <preset>.job.yml)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show which config files would be loaded",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if p, ok := config.LocalPath("."); ok {
				fmt.Fprintln(w, "local: ", p)
			} else {
				fmt.Fprintln(w, "local:  (none)")
			}
			if _, err := config.LoadGlobal(); err == nil {
				fmt.Fprintln(w, "global: found")
			} else {
				fmt.Fprintln(w, "global: (none)")
			}
			return nil
		},
	}
	cfgCmd.AddCommand(pathCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	var (
		body []byte
		out  = cfgOutput
	)
	switch preset := strings.ToLower(cfgPreset); preset {
	case "detector":
		body = []byte(config.DetectorTemplate)
		if out == "" {
			out = ".piiguard.yml"
		}
	default:
		mk, ok := anonymize.Templates()[preset]
		if !ok {
			return fmt.Errorf("unknown preset %q", cfgPreset)
		}
		var buf bytes.Buffer
		if err := config.WriteJob(&buf, mk()); err != nil {
			return err
		}
		body = buf.Bytes()
		if out == "" {
			out = preset + ".job.yml"
		}
	}
	if _, err := os.Stat(out); err == nil && !cfgForce {
		return fmt.Errorf("%s exists (use --force to overwrite)", out)
	}
	if err := os.WriteFile(out, body, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
	return nil
}
