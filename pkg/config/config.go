// Package config loads the versioned preset document (.gather-files.yaml) and
// hands its presets to the gather package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/drengskapur/gatherfiles/pkg/gather"

	"github.com/muhammadmuzzammil1998/jsonc"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the repo root.
const DefaultFileName = ".gather-files.yaml"

// SupportedVersion is the only document version this build understands.
const SupportedVersion = 1

// Format is the serialization of a configuration document.
type Format int

const (
	FormatYAML  Format = iota // .yaml, .yml and anything unrecognized
	FormatJSONC               // .json and .jsonc; comments and trailing commas allowed
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// Preset is one named entry of the presets map.
type Preset struct {
	Base    string   `json:"base,omitempty"`    // Directory patterns are relative to; defaults to the repo root.
	Include []string `json:"include,omitempty"` // Glob patterns selecting files.
	Exclude []string `json:"exclude,omitempty"` // Glob patterns removing files.
}

// File is a parsed configuration document.
type File struct {
	Version int               `json:"version"`
	Presets map[string]Preset `json:"presets,omitempty"`
}

// Load reads and validates the configuration at path. A missing file yields an
// error matching fs.ErrNotExist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	f, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte, format Format) (*File, error) {
	doc, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if f.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", f.Version, SupportedVersion)
	}
	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &f, nil
}

// toJSON normalizes a YAML or JSONC document to plain JSON.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format == FormatJSONC {
		return jsonc.ToJSON(data), nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc == nil {
		return nil, errors.New("document is empty")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}

// Names returns the preset names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions converts the presets to gather definitions with bases resolved
// against repoRoot.
func (f *File) Definitions(repoRoot string) map[string]gather.PresetDefinition {
	defs := make(map[string]gather.PresetDefinition, len(f.Presets))
	for name, p := range f.Presets {
		defs[name] = gather.PresetDefinition{
			Base:    ResolvePath(repoRoot, p.Base),
			Include: append([]string(nil), p.Include...),
			Exclude: append([]string(nil), p.Exclude...),
		}
	}
	return defs
}

// ResolvePath returns p if absolute, otherwise p joined to root. An empty p is root.
func ResolvePath(root, p string) string {
	if p == "" {
		return root
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Loader implements gather.PresetLoader on configuration files.
type Loader struct {
	RepoRoot string      // Directory relative preset bases are resolved against.
	Logger   *zap.Logger // Optional.
}

// LoadPresets loads the presets in configPath. A missing file holds no presets.
func (l Loader) LoadPresets(configPath string) (map[string]gather.PresetDefinition, error) {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No config file found", zap.String("config", configPath))
		return map[string]gather.PresetDefinition{}, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded config", zap.String("config", configPath), zap.Strings("presets", f.Names()))
	return f.Definitions(l.RepoRoot), nil
}
