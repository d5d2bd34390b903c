package piiguard

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/report"
	"github.com/redactyl/piiguard/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-detector LABEL",
		Short: "Run a single entity detector against text from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.ToUpper(args[0])
			if types.CategoryOf(label) == "" {
				return fmt.Errorf("unknown entity type %q; available: %s", args[0], strings.Join(detectors.IDs(), ", "))
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			det := detectors.New(
				detectors.WithLabels([]string{label}, nil),
				detectors.WithMinConfidence(flagMinConfidence),
			)
			report.PrintEntities(cmd.OutOrStdout(), det.Detect(string(data)), report.PrintOptions{NoColor: true, ShowValues: true})
			return nil
		},
	}
	cmd.Long = "Available entity types: " + strings.Join(detectors.IDs(), ", ")
	rootCmd.AddCommand(cmd)
}
