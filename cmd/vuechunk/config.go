package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mx-llm/vuechunk/pkg/extractor"
	"github.com/mx-llm/vuechunk/pkg/scanner"
)

const defaultConfigFile = ".vuechunk.yaml"

// ProjectConfig holds the contents of .vuechunk.yaml.
type ProjectConfig struct {
	Root    string   `yaml:"root"`
	Out     string   `yaml:"out"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// Markers maps decorator names to marker kinds ("component", "emits-event").
	Markers map[string]string `yaml:"markers"`

	ParserPoolSize int `yaml:"parser_pool_size"`
}

// loadProjectConfig reads the project config at path, or .vuechunk.yaml
// from the current directory when path is empty.
// Returns nil (no error) if the default file does not exist; an explicit
// path must exist.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// runSettings is the resolved configuration of one command invocation.
type runSettings struct {
	Root    string
	Out     string
	Options scanner.Options
}

// resolveSettings applies the fallback chain for every setting:
//  1. Explicit flag value (non-empty override)
//  2. Value from .vuechunk.yaml
//  3. Built-in default
func resolveSettings(cfg *ProjectConfig, rootFlag, outFlag string) (runSettings, error) {
	if cfg == nil {
		cfg = &ProjectConfig{}
	}

	settings := runSettings{
		Root:    firstNonEmpty(rootFlag, cfg.Root, "."),
		Out:     firstNonEmpty(outFlag, cfg.Out, scanner.DefaultOutputFile),
		Options: scanner.DefaultOptions(),
	}

	if len(cfg.Include) > 0 {
		settings.Options.Scan.Include = cfg.Include
	}
	if cfg.Exclude != nil {
		settings.Options.Scan.Exclude = cfg.Exclude
	}
	if err := scanner.ValidatePatterns(settings.Options.Scan); err != nil {
		return runSettings{}, fmt.Errorf("invalid config: %w", err)
	}

	if len(cfg.Markers) > 0 {
		markers, err := extractor.NewMarkerSet(cfg.Markers)
		if err != nil {
			return runSettings{}, fmt.Errorf("invalid config: %w", err)
		}
		settings.Options.Markers = markers
	}

	if cfg.ParserPoolSize < 0 {
		return runSettings{}, fmt.Errorf("invalid config: parser_pool_size must not be negative")
	}
	settings.Options.ParserPoolSize = cfg.ParserPoolSize

	return settings, nil
}

// resolveSnapshotPath returns the snapshot to read:
//  1. Explicit --in flag value
//  2. out from .vuechunk.yaml
//  3. Default: vue_chunks_ast.json
func resolveSnapshotPath(flagValue string, cfg *ProjectConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.Out != "" {
		return cfg.Out
	}
	return scanner.DefaultOutputFile
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
