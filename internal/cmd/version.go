package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/dendrascience/nginx-cache-find/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand.
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()
			if jsonOutput {
				return json.NewEncoder(out).Encode(info)
			}
			fmt.Fprintf(out, "%s version %s\n", info.Package, version.GetFullVersion())
			fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			fmt.Fprintf(out, "Build Date: %s\n", info.Date)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print version information as JSON")

	return cmd
}
