// Package config loads the driver's run-time options (spec §6): input and
// output archive paths, the primitive and stereotype side-file paths, the
// large-class method-count threshold, and the language allow-list. Values
// come from a KDL side file the way the teacher's internal/config resolves
// .lci.kdl, with CLI flags taking precedence field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/stereotype/internal/stereotypeerrors"
	"github.com/standardbeagle/stereotype/internal/types"
)

// DefaultMethodsPerClassThreshold is the large-class threshold used when
// neither the config file nor a CLI flag sets one (spec §6).
const DefaultMethodsPerClassThreshold = 21

// Config is the driver's fully-resolved run configuration.
type Config struct {
	InputArchive             string
	OutputArchive            string
	PrimitivesPath           string
	StereotypesPath          string
	MethodsPerClassThreshold int
	Languages                []types.Language
}

// Default returns a Config with the built-in defaults; nothing else set.
func Default() Config {
	return Config{MethodsPerClassThreshold: DefaultMethodsPerClassThreshold}
}

// fileName is the side-file consulted for project defaults, mirroring the
// teacher's .lci.kdl convention.
const fileName = ".stereotype.kdl"

// Load resolves a Config starting from Default(), then a project-directory
// KDL side file if present, then overrides (from CLI flags) whose fields
// named in overrideSet take final precedence.
func Load(projectDir string, overrides Config, overrideSet map[string]bool) (Config, error) {
	cfg := Default()

	if kdlCfg, err := loadKDL(projectDir); err != nil {
		return Config{}, stereotypeerrors.NewConfigError("kdl", err)
	} else if kdlCfg != nil {
		cfg = *kdlCfg
	}

	applyOverrides(&cfg, overrides, overrideSet)

	if cfg.InputArchive == "" {
		return Config{}, stereotypeerrors.NewConfigError("input", fmt.Errorf("input archive path is required"))
	}
	if cfg.OutputArchive == "" {
		return Config{}, stereotypeerrors.NewConfigError("output", fmt.Errorf("output archive path is required"))
	}
	return cfg, nil
}

func applyOverrides(cfg *Config, overrides Config, set map[string]bool) {
	if set["input"] {
		cfg.InputArchive = overrides.InputArchive
	}
	if set["output"] {
		cfg.OutputArchive = overrides.OutputArchive
	}
	if set["primitives"] {
		cfg.PrimitivesPath = overrides.PrimitivesPath
	}
	if set["stereotypes"] {
		cfg.StereotypesPath = overrides.StereotypesPath
	}
	if set["threshold"] {
		cfg.MethodsPerClassThreshold = overrides.MethodsPerClassThreshold
	}
	if set["languages"] {
		cfg.Languages = overrides.Languages
	}
}

func loadKDL(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, fileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stereotype: reading %s: %w", fileName, err)
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("stereotype: parsing %s: %w", fileName, err)
	}

	cfg := Default()
	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "input":
			if s, ok := firstStringArg(n); ok {
				cfg.InputArchive = s
			}
		case "output":
			if s, ok := firstStringArg(n); ok {
				cfg.OutputArchive = s
			}
		case "primitives":
			if s, ok := firstStringArg(n); ok {
				cfg.PrimitivesPath = s
			}
		case "stereotypes":
			if s, ok := firstStringArg(n); ok {
				cfg.StereotypesPath = s
			}
		case "methods_per_class_threshold":
			if v, ok := firstIntArg(n); ok {
				cfg.MethodsPerClassThreshold = v
			}
		case "languages":
			cfg.Languages = parseLanguages(collectStringArgs(n))
		}
	}
	return &cfg, nil
}

func parseLanguages(tags []string) []types.Language {
	out := make([]types.Language, 0, len(tags))
	for _, t := range tags {
		out = append(out, types.ParseLanguage(t))
	}
	return out
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
	return out
}
