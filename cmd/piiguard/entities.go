package piiguard

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/report"
	"github.com/redactyl/piiguard/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List supported entity types grouped by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats := types.Categories()
			if flagJSON {
				out := make(map[string][]string, len(cats))
				for _, c := range cats {
					out[c.Name] = c.Labels
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			if err := report.PrintCategories(cmd.OutOrStdout(), cats); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d entity types\n", len(types.ListEntityTypes()))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
