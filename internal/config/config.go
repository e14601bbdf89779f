// Package config loads the .mailfts.kdl configuration file: token limits,
// batch size, position gap, language confidence, and the maildir watcher's
// roots and exclude patterns. The mailfts command applies the token limit,
// the language confidence floor and the exclude patterns; batch size,
// position gap and watch roots are parsed and validated but not applied
// (the indexer uses its fixed BatchFlushThreshold and PositionGap, and the
// watch command takes its root from the command line).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Config is the fully-resolved runtime configuration for the indexer and
// watcher.
type Config struct {
	MaxTokenLength   int
	MinLanguageScore float64
	BatchSize        int
	PositionGap      int
	WatchRoots       []string
	Exclude          []string
}

// Default returns a Config populated with the same constants internal/fts
// falls back to when none is given explicitly.
func Default() *Config {
	return &Config{
		MaxTokenLength:   40,
		MinLanguageScore: 0.5,
		BatchSize:        1000,
		PositionGap:      10,
		WatchRoots:       nil,
		Exclude:          []string{"**/tmp/**"},
	}
}

// Load reads path (a .mailfts.kdl file). A missing file is not an error:
// Load returns Default() so a fresh deployment runs without requiring a
// config file up front.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	cfg.WatchRoots = cfg.absoluteRoots(filepath.Dir(path))
	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "max_token_length":
			if v, ok := firstIntArg(n); ok {
				cfg.MaxTokenLength = v
			}
		case "min_language_score":
			if v, ok := firstFloatArg(n); ok {
				cfg.MinLanguageScore = v
			}
		case "batch_size":
			if v, ok := firstIntArg(n); ok {
				cfg.BatchSize = v
			}
		case "position_gap":
			if v, ok := firstIntArg(n); ok {
				cfg.PositionGap = v
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "root":
					if s, ok := firstStringArg(cn); ok {
						cfg.WatchRoots = append(cfg.WatchRoots, s)
					}
				case "exclude":
					cfg.Exclude = collectStringArgs(cn)
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// absoluteRoots resolves WatchRoots against baseDir, for callers that load
// a config file from a directory other than the process's cwd.
func (c *Config) absoluteRoots(baseDir string) []string {
	out := make([]string, len(c.WatchRoots))
	for i, root := range c.WatchRoots {
		if filepath.IsAbs(root) {
			out[i] = root
		} else {
			out[i] = filepath.Join(baseDir, root)
		}
	}
	return out
}
