package cmd

import (
	"fmt"

	"github.com/dendrascience/nginx-cache-find/util"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand.
// It reports how many cache files a directory holds and how many of them
// carry a readable key.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [DIR]",
		Short: "Count cache files in a cache directory",
		Long: `Count the directories and cache files below an nginx cache directory.

Files whose header carries a KEY line are counted separately; the difference
is the number of files find would report as warnings. Symbolic links are not
followed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if err := cmd.Flags().Set("dir", args[0]); err != nil {
					return err
				}
			}
			return runCount(cmd)
		},
	}

	cmd.Flags().StringP("dir", "d", "", "Cache directory to count (overrides cache_dir)")

	return cmd
}

func runCount(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.CacheDir == "" {
		return fmt.Errorf("no cache directory: pass DIR, use --dir or set cache_dir")
	}
	log := newLogger(cmd, cfg)

	log.Debugf("counting %s", cfg.CacheDir)
	counts, err := util.CountEntries(osfs.Default, cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("error counting %s: %w", cfg.CacheDir, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Directories: %d\n", counts.Dirs)
	fmt.Fprintf(out, "Cache files: %d\n", counts.Files)
	fmt.Fprintf(out, "With key:    %d\n", counts.Keyed)
	return nil
}
