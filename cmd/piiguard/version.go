package piiguard

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the piiguard version",
		Run: func(cmd *cobra.Command, _ []string) {
			rev := ""
			if info, ok := debug.ReadBuildInfo(); ok {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" && len(s.Value) >= 7 {
						rev = " (" + s.Value[:7] + ")"
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "piiguard %s%s\n", version, rev)
		},
	})
}
