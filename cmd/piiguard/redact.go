package piiguard

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/redact"
	"github.com/redactyl/piiguard/internal/types"
)

func init() {
	var (
		mask     string
		file     string
		write    bool
		dry      bool
		patterns []string
		replace  string
	)
	cmd := &cobra.Command{
		Use:   "redact [TEXT]",
		Short: "Replace detected PII with [LABEL:****] placeholders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, _ := filepath.Abs(".")
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
			if !cmd.Flags().Changed("mask") {
				mask = pickString("", s.local.MaskChar, s.global.MaskChar)
			}

			if write {
				if file == "" {
					return fmt.Errorf("--write requires --file")
				}
				var count int
				fn := func(in string) string {
					out, entities := det.Redact(in, mask)
					count = len(entities)
					return out
				}
				reps, err := compileReplacements(patterns, replace)
				if err != nil {
					return err
				}
				if dry {
					b, err := readInput(nil, file)
					if err != nil {
						return err
					}
					fn(b)
					extra, err := redact.WouldChange(file, reps)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would redact %d entities in %s (custom patterns match: %t)\n", count, file, extra)
					return nil
				}
				changed, err := redact.Rewrite(file, fn)
				if err != nil {
					return err
				}
				if len(reps) > 0 {
					more, err := redact.Apply(file, reps)
					if err != nil {
						return err
					}
					changed = changed || more
				}
				if changed {
					fmt.Fprintf(cmd.OutOrStdout(), "Redacted %d entities in %s\n", count, file)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "No PII found in %s\n", file)
				}
				return nil
			}

			text, err := readInput(args, file)
			if err != nil {
				return err
			}
			out, entities := det.Redact(text, mask)
			if flagJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Text     string             `json:"text"`
					Entities []types.Serialized `json:"entities"`
				}{out, serialize(entities)})
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mask, "mask", "*", "mask character used inside placeholders")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read input from a file")
	cmd.Flags().BoolVar(&write, "write", false, "rewrite --file in place")
	cmd.Flags().BoolVar(&dry, "dry-run", false, "with --write, report without modifying the file")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "extra regular expression to redact with --write (repeatable)")
	cmd.Flags().StringVar(&replace, "replace", "[REDACTED]", "replacement for --pattern matches")
	rootCmd.AddCommand(cmd)
}

func compileReplacements(patterns []string, replace string) ([]redact.Replacement, error) {
	reps := make([]redact.Replacement, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		reps = append(reps, redact.Replacement{Pattern: re, Replace: replace})
	}
	return reps, nil
}
