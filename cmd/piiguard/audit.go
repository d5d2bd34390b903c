package piiguard

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/audit"
)

func init() {
	auditCmd := &cobra.Command{Use: "audit", Short: "Inspect the run audit log (written with --audit)"}
	rootCmd.AddCommand(auditCmd)

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _ := filepath.Abs(".")
			hist, err := audit.NewAuditLog(root).LoadHistory()
			if err != nil {
				return err
			}
			if limit > 0 && len(hist) > limit {
				hist = hist[:limit]
			}
			w := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(hist)
			}
			for i, r := range hist {
				switch r.Command {
				case "anonymize":
					fmt.Fprintf(w, "%3d  %s  anonymize  table=%s records=%d anonymized=%d errors=%d\n",
						i, r.Timestamp.Format("2006-01-02 15:04:05"), r.Table, r.Records, r.Anonymized, r.Errors)
				default:
					fmt.Fprintf(w, "%3d  %s  scan       files=%d findings=%d new=%d\n",
						i, r.Timestamp.Format("2006-01-02 15:04:05"), r.FilesScanned, r.TotalFindings, r.NewFindings)
				}
			}
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 = all)")
	auditCmd.AddCommand(list)

	auditCmd.AddCommand(&cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete one run by its index in 'audit list'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			root, _ := filepath.Abs(".")
			if err := audit.NewAuditLog(root).DeleteRecord(idx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted run", idx)
			return nil
		},
	})
}
