package piiguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/anonymize"
	"github.com/redactyl/piiguard/internal/audit"
	"github.com/redactyl/piiguard/internal/config"
	"github.com/redactyl/piiguard/internal/records"
	"github.com/redactyl/piiguard/internal/report"
)

var (
	anonPreset      string
	anonTable       string
	anonInput       string
	anonInputFormat string
	anonOutput      string
	anonFormat      string
	anonVaultOut    string
	anonSeed        int64
)

func init() {
	cmd := &cobra.Command{
		Use:   "anonymize",
		Short: "Anonymize structured records with a job configuration",
		Long: `Anonymize reads records (JSON array, JSON lines or YAML), applies the field
strategies of one table from the job, and writes JSON, JSON lines, YAML, CSV or
SQL INSERT statements. The job comes from --config, --preset, or the
anonymize block of the local .piiguard.yml.`,
		RunE: runAnonymize,
		Example: `  piiguard anonymize --config job.yml --table users --input users.json --output users.anon.json
  piiguard anonymize --preset staging --table orders --input orders.jsonl --format sql
  piiguard anonymize --preset gdpr --table users --input users.json --vault-out vault.bin`,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&anonPreset, "preset", "", "built-in job: "+strings.Join(presetNames(), "|"))
	cmd.Flags().StringVarP(&anonTable, "table", "t", "", "table to apply (default: the job's only table)")
	cmd.Flags().StringVarP(&anonInput, "input", "i", "-", "input file ('-' for stdin)")
	cmd.Flags().StringVar(&anonInputFormat, "input-format", "", "json|jsonl|yaml (default: from extension or content)")
	cmd.Flags().StringVarP(&anonOutput, "output", "o", "-", "output file ('-' for stdout)")
	cmd.Flags().StringVar(&anonFormat, "format", "", "json|jsonl|yaml|csv|sql (default: from extension, then the job)")
	cmd.Flags().StringVar(&anonVaultOut, "vault-out", "", "write the sealed token vault to this file")
	cmd.Flags().Int64Var(&anonSeed, "seed", 0, "override the job seed")
}

func presetNames() []string {
	names := lo.Keys(anonymize.Templates())
	sort.Strings(names)
	return names
}

// resolveJob picks the job: --preset, then --config, then the local config.
func resolveJob(s settings) (anonymize.Config, error) {
	if anonPreset != "" {
		mk, ok := anonymize.Templates()[anonPreset]
		if !ok {
			return anonymize.Config{}, fmt.Errorf("unknown preset %q (want %s)", anonPreset, strings.Join(presetNames(), ", "))
		}
		return mk(), nil
	}
	if flagConfig != "" {
		return config.LoadJob(flagConfig)
	}
	job, ok, err := s.local.Job()
	if err != nil {
		return anonymize.Config{}, err
	}
	if !ok {
		return anonymize.Config{}, errors.New("no job: pass --config, --preset, or add an anonymize block to .piiguard.yml")
	}
	return job, nil
}

func pickTable(job anonymize.Config, name string) (string, error) {
	if name == "" {
		if len(job.Tables) == 1 {
			return job.Tables[0].TableName, nil
		}
		return "", fmt.Errorf("--table is required; job has %s", strings.Join(job.TableNames(), ", "))
	}
	if _, ok := job.Table(name); !ok {
		return "", fmt.Errorf("job has no table %q; tables: %s", name, strings.Join(job.TableNames(), ", "))
	}
	return name, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func runAnonymize(cmd *cobra.Command, _ []string) error {
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

	job, err := resolveJob(s)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		job.Seed = &anonSeed
	}
	table, err := pickTable(job, anonTable)
	if err != nil {
		return err
	}

	in, err := openInput(anonInput)
	if err != nil {
		return err
	}
	inFormat := anonInputFormat
	if inFormat == "" {
		inFormat = records.FormatFromPath(anonInput)
	}
	recs, err := records.Read(in, inFormat)
	_ = in.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", anonInput, err)
	}

	a := anonymize.New(job, anonymize.WithLogger(log))
	out, res := a.AnonymizeRecords(recs, table)

	format := anonFormat
	if format == "" {
		format = records.FormatFromPath(anonOutput)
	}
	if format == "" {
		format = job.OutputFormat
	}
	w := cmd.OutOrStdout()
	if anonOutput != "" && anonOutput != "-" {
		f, err := os.OpenFile(anonOutput, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := records.Write(w, out, format, table); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if anonVaultOut != "" {
		if err := writeVault(a, job); err != nil {
			return err
		}
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.ErrOrStderr())
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		report.PrintAnonymizeSummary(cmd.ErrOrStderr(), res, report.PrintOptions{NoColor: s.noColor() || !report.ColorEnabled(os.Stderr)})
	}
	writeAudit(audit.CreateAnonymizeRecord(table, res))
	return nil
}

func writeVault(a *anonymize.Anonymizer, job anonymize.Config) error {
	v := a.Vault()
	if v == nil {
		return errors.New("--vault-out needs a job with use_token_vault: true")
	}
	blob, err := v.Seal()
	if err != nil {
		return fmt.Errorf("seal vault: %w", err)
	}
	if err := os.WriteFile(anonVaultOut, blob, 0600); err != nil {
		return err
	}
	if job.VaultEncryptionKey == "" {
		fmt.Fprintf(os.Stderr, "vault key (store it safely, it is not saved): %s\n", v.Key())
	}
	return nil
}
