package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/nginx-cache-find/nginxcache"
	"github.com/dendrascience/nginx-cache-find/util"
	"github.com/dendrascience/nginx-cache-find/version"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and an isolated config path.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	args = append(args, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func seedCache(t *testing.T) (string, []util.SeededFile) {
	t.Helper()
	dir := t.TempDir()
	files, err := util.Seed(osfs.Default, util.SeedOptions{
		Root:      dir,
		Count:     30,
		Malformed: 3,
		Levels:    []int{1, 2},
		Hosts:     []string{"a.example", "b.example"},
	})
	require.NoError(t, err)
	return dir, files
}

func keysWithPrefix(files []util.SeededFile, prefix string) map[string]string {
	want := map[string]string{}
	for _, f := range files {
		if f.Key != "" && strings.HasPrefix(f.Key, prefix) {
			want[f.Path] = f.Key
		}
	}
	return want
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRootCmd(t *testing.T) {
	root := NewRootCmd()
	names := map[string]string{}
	for _, c := range root.Commands() {
		names[c.Name()] = c.GroupID
	}
	assert.Equal(t, "search", names["find"])
	assert.Equal(t, "utilities", names["count"])
	assert.Equal(t, "utilities", names["seed"])
	assert.Equal(t, "utilities", names["version"])
	assert.NotEmpty(t, root.Version)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "nginx-cache-find version "))

	stdout, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Package, info.Package)
}

func TestFindCmd(t *testing.T) {
	dir, files := seedCache(t)

	t.Run("regexp", func(t *testing.T) {
		stdout, stderr, err := execute(t, "find", "-d", dir, "^https://a\\.example/")
		require.NoError(t, err)

		want := keysWithPrefix(files, "https://a.example/")
		got := map[string]string{}
		for _, l := range lines(stdout) {
			path, key, ok := strings.Cut(l, "\t")
			require.True(t, ok, l)
			got[path] = key
		}
		assert.Equal(t, want, got)
		assert.Equal(t, 3, strings.Count(stderr, "[WARN]"))
		assert.Contains(t, stderr, "[INFO] ")
	})

	t.Run("no pattern lists every keyed file", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "--dir", dir)
		require.NoError(t, err)
		assert.Len(t, lines(stdout), 30)
	})

	t.Run("glob", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "-d", dir, "--glob", "https://b.example/**/*.jpg")
		require.NoError(t, err)
		assert.Len(t, lines(stdout), len(keysWithPrefix(files, "https://b.example/")))
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := execute(t, "find", "-d", dir, "--json", "a\\.example")
		require.NoError(t, err)

		want := keysWithPrefix(files, "https://a.example/")
		sc := bufio.NewScanner(strings.NewReader(stdout))
		n := 0
		for sc.Scan() {
			var rec matchRecord
			require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
			assert.Equal(t, want[rec.Path], rec.Key)
			n++
		}
		assert.Equal(t, len(want), n)
	})

	t.Run("quiet", func(t *testing.T) {
		_, stderr, err := execute(t, "find", "-q", "-d", dir, "nothing-matches-this")
		require.NoError(t, err)
		assert.Empty(t, stderr)
	})

	t.Run("summary", func(t *testing.T) {
		summaryPath := filepath.Join(t.TempDir(), "summary.json")
		_, _, err := execute(t, "find", "-d", dir, "-j", "2", "--summary", summaryPath, "\\.jpg$")
		require.NoError(t, err)

		data, err := os.ReadFile(summaryPath)
		require.NoError(t, err)
		var s util.Summary
		require.NoError(t, json.Unmarshal(data, &s))
		assert.Equal(t, dir, s.CacheDir)
		assert.Equal(t, "\\.jpg$", s.Pattern)
		assert.Equal(t, 30, s.Matches)
		assert.Equal(t, 3, s.Warnings)
		assert.Empty(t, s.Errors)
	})

	t.Run("invalid regexp", func(t *testing.T) {
		_, _, err := execute(t, "find", "-d", dir, "(")
		assert.Error(t, err)
	})

	t.Run("invalid glob", func(t *testing.T) {
		_, _, err := execute(t, "find", "-d", dir, "--glob", "[")
		assert.ErrorIs(t, err, nginxcache.ErrInvalidPattern)
	})

	t.Run("missing directory setting", func(t *testing.T) {
		_, _, err := execute(t, "find", "x")
		assert.ErrorIs(t, err, nginxcache.ErrDirectoryRequired)
	})

	t.Run("nonexistent directory is a warning", func(t *testing.T) {
		stdout, stderr, err := execute(t, "find", "-d", filepath.Join(dir, "missing"))
		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "[WARN]")
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := execute(t, "find", "-d", dir, "--log-level", "loud")
		assert.Error(t, err)
	})
}

func TestFindCmd_ConfigFile(t *testing.T) {
	dir, _ := seedCache(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cache_dir: "+dir+"\nlog_level: error\n"), 0o644))

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"find", "--config", cfgPath})
	require.NoError(t, root.Execute())

	assert.Len(t, lines(stdout.String()), 30)
	assert.Empty(t, stderr.String(), "log_level error hides warnings")
}

func TestCountCmd(t *testing.T) {
	dir, _ := seedCache(t)

	stdout, _, err := execute(t, "count", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache files: 33\n")
	assert.Contains(t, stdout, "With key:    30\n")

	_, _, err = execute(t, "count")
	assert.Error(t, err)

	_, _, err = execute(t, "count", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSeedCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	stdout, _, err := execute(t, "seed", "-o", dir, "-c", "12", "--malformed", "2",
		"--levels", "2", "--hosts", "one.test,two.test", "--scheme", "http")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created 14 cache files")

	counts, err := util.CountEntries(osfs.Default, dir)
	require.NoError(t, err)
	assert.Equal(t, 14, counts.Files)
	assert.Equal(t, 12, counts.Keyed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.IsDir())
		assert.Len(t, e.Name(), 2, "levels 2 uses two character directories")
	}

	found, _, err := execute(t, "find", "-d", dir, "^http://(one|two)\\.test/assets/")
	require.NoError(t, err)
	assert.Len(t, lines(found), 12)

	_, _, err = execute(t, "seed")
	assert.Error(t, err)

	_, _, err = execute(t, "seed", "-o", dir, "--levels", "9")
	assert.Error(t, err)
}
