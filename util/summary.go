package util

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dendrascience/nginx-cache-find/version"
)

// Summary records the outcome of one find run.
type Summary struct {
	Version  string        `json:"version"`
	CacheDir string        `json:"cache_dir"`
	Pattern  string        `json:"pattern"`
	Matches  int           `json:"matches"`
	Warnings int           `json:"warnings"`
	Errors   []string      `json:"errors,omitempty"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// NewSummary starts a Summary for a run against dir with pattern.
func NewSummary(dir, pattern string) *Summary {
	return &Summary{
		Version:  version.GetVersion(),
		CacheDir: dir,
		Pattern:  pattern,
		Started:  time.Now(),
	}
}

// Done stamps the elapsed time.
func (s *Summary) Done() {
	s.Elapsed = time.Since(s.Started)
}

// Save writes the summary as JSON to path.
func (s Summary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	je := json.NewEncoder(f)
	je.SetIndent("", "  ")
	return je.Encode(s)
}
