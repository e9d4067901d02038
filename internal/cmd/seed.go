package cmd

import (
	"fmt"
	"time"

	"github.com/dendrascience/nginx-cache-find/util"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand.
// It generates a synthetic nginx cache tree laid out the way nginx lays out
// proxy_cache_path directories.
func NewSeedCmd() *cobra.Command {
	var (
		fileCount int
		malformed int
		hosts     []string
		scheme    string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic nginx cache tree",
		Long: `Generate cache files for testing nginx-cache-find.

Each file carries a version 5 nginx cache header with a KEY line of the form
<scheme>://<host>/assets/<uuid>.jpg and is stored under the MD5 of its key,
in subdirectories taken from the end of the hash as selected by --levels.
--malformed adds files without a KEY line, like the leftovers of an
interrupted write.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.CacheDir == "" {
				return fmt.Errorf("no output directory: use --output or set cache_dir")
			}
			levels, err := util.ParseLevels(cfg.Levels)
			if err != nil {
				return err
			}
			log := newLogger(cmd, cfg)
			if verbose {
				log.Infof("Generating %d cache files (%d malformed) in %s, levels %q",
					fileCount+malformed, malformed, cfg.CacheDir, cfg.Levels)
			}

			start := time.Now()
			files, err := util.Seed(osfs.Default, util.SeedOptions{
				Root:      cfg.CacheDir,
				Count:     fileCount,
				Malformed: malformed,
				Levels:    levels,
				Hosts:     hosts,
				Scheme:    scheme,
			})
			if err != nil {
				return err
			}

			if verbose {
				for _, f := range files {
					log.Debugf("%s %s", f.Path, f.Key)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d cache files in %s (%s)\n",
				len(files), cfg.CacheDir, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Path to output directory (overrides cache_dir)")
	cmd.Flags().String("levels", "", "nginx levels, e.g. 1:2 (overrides levels)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 1000, "Number of keyed cache files to generate")
	cmd.Flags().IntVar(&malformed, "malformed", 0, "Number of files without a KEY line")
	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"example.com"}, "Hosts to spread keys over")
	cmd.Flags().StringVar(&scheme, "scheme", "https", "URL scheme of generated keys")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}
