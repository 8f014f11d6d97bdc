// File: pkg/gather/collector.go
package gather

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Collector turns requests into ordered file lists. It keeps no state between calls,
// so one instance may serve any number of sequential requests.
type Collector struct {
	fs       FileSystem   // Filesystem accessor; defaults to the host filesystem.
	logger   *zap.Logger  // Logger for debug information; defaults to a no-op logger.
	repoRoot string       // Default base for presets.
	loader   PresetLoader // Source of preset definitions.
}

// Option configures a Collector.
type Option func(*Collector)

// WithFileSystem sets the filesystem the collector reads from.
func WithFileSystem(fsys FileSystem) Option {
	return func(c *Collector) {
		c.fs = fsys
	}
}

// WithLogger sets the collector's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRepoRoot sets the directory preset bases are resolved against.
func WithRepoRoot(root string) Option {
	return func(c *Collector) {
		c.repoRoot = root
	}
}

// WithPresetLoader sets where preset requests look up their definitions.
func WithPresetLoader(loader PresetLoader) Option {
	return func(c *Collector) {
		c.loader = loader
	}
}

// NewCollector returns a Collector reading the host filesystem unless configured otherwise.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		fs:     OSFileSystem{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs a request. It returns either a non-empty result or an error, never both.
func (c *Collector) Collect(req Request) (Result, error) {
	switch req.Kind {
	case KindPath:
		return c.CollectPath(req.Root)
	case KindPreset:
		def, err := c.lookupPreset(req.Preset, req.ConfigPath)
		if err != nil {
			return Result{}, err
		}
		return c.CollectPreset(req.Preset, def)
	default:
		return Result{}, fmt.Errorf("unsupported request kind %s", req.Kind)
	}
}

func (c *Collector) lookupPreset(name, configPath string) (PresetDefinition, error) {
	if c.loader == nil {
		return PresetDefinition{}, &Error{Kind: ErrPresetNotFound, Preset: name, Path: configPath}
	}

	presets, err := c.loader.LoadPresets(configPath)
	if err != nil {
		return PresetDefinition{}, fmt.Errorf("failed to load presets from %s: %w", configPath, err)
	}

	def, ok := presets[name]
	if !ok {
		c.logger.Debug("Preset missing from configuration",
			zap.String("preset", name),
			zap.String("config", configPath),
			zap.Int("available", len(presets)))
		return PresetDefinition{}, &Error{Kind: ErrPresetNotFound, Preset: name, Path: configPath}
	}
	return def, nil
}

// ResolveTarget maps a command-line target to a request. An empty target collects the
// repo root; a target naming an existing path (absolute, or relative to the repo root)
// collects that path; anything else is taken as a preset name.
func ResolveTarget(fsys FileSystem, target, repoRoot, configPath string) Request {
	if target == "" {
		return PathRequest(repoRoot)
	}

	candidate := target
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(repoRoot, candidate)
	}
	if _, err := fsys.Stat(candidate); err == nil {
		return PathRequest(candidate)
	}
	return PresetRequest(target, configPath)
}
