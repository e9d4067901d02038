package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"

	"github.com/dendrascience/nginx-cache-find/internal/logger"
	"github.com/dendrascience/nginx-cache-find/nginxcache"
	"github.com/dendrascience/nginx-cache-find/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// hostColors is the palette keys are coloured with, one colour per host.
var hostColors = []color.Attribute{
	color.FgRed,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
}

type findOptions struct {
	glob        bool
	jsonOutput  bool
	summaryPath string
	quiet       bool
}

// matchRecord is one line of --json output.
type matchRecord struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

// NewFindCmd creates and returns the find subcommand.
// It scans a cache directory and prints every file whose key matches.
func NewFindCmd() *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find [PATTERN]",
		Short: "List cache files whose key matches a pattern",
		Long: `Scan an nginx cache directory and list the files whose cache key matches
PATTERN.

PATTERN is a regular expression unless --glob is given, in which case it is a
glob where * stops at / and ** crosses it. Without a PATTERN every keyed file
is listed.

Each match is printed as "<path>\t<key>", or as a JSON object per line with
--json. Files without a readable key are reported as warnings on stderr. The
command exits with status 1 if the cache directory itself cannot be read.`,
		Example: `  nginx-cache-find find -d /var/cache/nginx '^https://example.com/images/'
  nginx-cache-find find -d /var/cache/nginx --glob 'https://*/**/*.css'
  nginx-cache-find find -d /var/cache/nginx --json --summary run.json /120/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}
			return runFind(cmd, pattern, opts)
		},
	}

	cmd.Flags().StringP("dir", "d", "", "Cache directory to scan (overrides cache_dir)")
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum open directories and files (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.glob, "glob", false, "Treat PATTERN as a glob instead of a regular expression")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print matches as JSON lines")
	cmd.Flags().StringVar(&opts.summaryPath, "summary", "", "Write a JSON run summary to this file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only report fatal errors on stderr")

	return cmd
}

func compilePattern(pattern string, glob bool) (nginxcache.Matcher, error) {
	if !glob {
		return nginxcache.Regexp(pattern)
	}
	if pattern == "" {
		pattern = "**"
	}
	g, err := nginxcache.Glob(pattern)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func runFind(cmd *cobra.Command, pattern string, opts findOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.quiet {
		cfg.LogLevel = "error"
	}
	log := newLogger(cmd, cfg)

	matcher, err := compilePattern(pattern, opts.glob)
	if err != nil {
		return err
	}

	cache, err := nginxcache.New(cfg.CacheDir, nginxcache.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return fmt.Errorf("%w: use --dir or set cache_dir in %s", err, mustString(cmd, "config"))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	p := &matchPrinter{
		out:   out,
		json:  opts.jsonOutput,
		color: cfg.Color && logger.IsTerminal(out),
	}
	summary := util.NewSummary(cache.Dir(), pattern)

	log.Debugf("scanning %s for %q (concurrency %d)", cache.Dir(), pattern, cfg.Concurrency)
	scanErr := cache.Walk(ctx, matcher, nginxcache.Handler{
		OnMatch: func(e nginxcache.Entry) {
			summary.Matches++
			if err := p.print(e); err != nil {
				log.Errorf("failed to write match: %v", err)
			}
		},
		OnWarn: func(err error) {
			summary.Warnings++
			log.Warnf("%v", err)
		},
		OnError: func(err error) {
			summary.Errors = append(summary.Errors, err.Error())
			log.Errorf("%v", err)
		},
	})
	summary.Done()

	if opts.summaryPath != "" {
		if err := summary.Save(opts.summaryPath); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	log.Infof("%d matches, %d warnings in %s", summary.Matches, summary.Warnings, summary.Elapsed)

	if scanErr != nil {
		return fmt.Errorf("scan of %s failed: %w", cache.Dir(), scanErr)
	}
	return nil
}

type matchPrinter struct {
	out   io.Writer
	json  bool
	color bool
}

func (p *matchPrinter) print(e nginxcache.Entry) error {
	if p.json {
		return json.NewEncoder(p.out).Encode(matchRecord{Path: e.Path, Key: e.Key})
	}
	key := e.Key
	if p.color {
		key = color.New(hostColor(e.Key)).Sprint(e.Key)
	}
	_, err := fmt.Fprintf(p.out, "%s\t%s\n", e.Path, key)
	return err
}

// hostColor picks a stable colour for the host part of key. Keys that are
// not URLs are coloured by the whole key.
func hostColor(key string) color.Attribute {
	name := key
	if u, err := url.Parse(key); err == nil && u.Host != "" {
		name = u.Host
	}
	return hostColors[util.Bucket(name, len(hostColors))]
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
