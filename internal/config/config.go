// Package config handles exporter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

// Config holds all exporter settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Input   InputConfig   `yaml:"input" toml:"input"`
	Atlas   AtlasConfig   `yaml:"atlas" toml:"atlas"`
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// AssetsConfig lists asset sources. Later entries shadow earlier ones.
type AssetsConfig struct {
	Paths []string `yaml:"paths" toml:"paths"` // directories or .zip archives
	// BlockList is an optional asset path of the protobuf block id list.
	BlockList string `yaml:"block_list" toml:"block_list"`
	// BlockTypes is the asset folder searched for <Block>.json definitions.
	BlockTypes string `yaml:"block_types" toml:"block_types"`
	// Common is the asset folder model and texture paths are relative to.
	Common string `yaml:"common" toml:"common"`
}

// InputConfig names what to export.
type InputConfig struct {
	Prefab string `yaml:"prefab" toml:"prefab"`
}

// AtlasConfig holds texture atlas settings.
type AtlasConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// MeshConfig holds mesh generation settings.
type MeshConfig struct {
	Workers     int  `yaml:"workers" toml:"workers"` // 0 = GOMAXPROCS
	MaxNodes    int  `yaml:"max_nodes" toml:"max_nodes"`
	DoubleSided bool `yaml:"double_sided" toml:"double_sided"` // emit back faces for double-sided quads
}

// OutputConfig holds serialization settings.
type OutputConfig struct {
	Dir     string `yaml:"dir" toml:"dir"`
	Name    string `yaml:"name" toml:"name"`
	FlipV   bool   `yaml:"flip_v" toml:"flip_v"`
	Normals bool   `yaml:"normals" toml:"normals"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	Format  string `yaml:"format" toml:"format"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Paths:      []string{"Assets.zip"},
			BlockTypes: "Server/Item/Items",
			Common:     "Common",
		},
		Atlas: AtlasConfig{
			Width:  2048,
			Height: 2048,
		},
		Mesh: MeshConfig{
			Workers:     0,
			MaxNodes:    256,
			DoubleSided: true,
		},
		Output: OutputConfig{
			Dir:     "out",
			Name:    "export",
			FlipV:   true,
			Normals: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

const maxAtlasSide = 16384

// Validate checks settings that would otherwise fail deep inside the pipeline.
func (c *Config) Validate() error {
	if c.Atlas.Width <= 0 || c.Atlas.Height <= 0 ||
		c.Atlas.Width > maxAtlasSide || c.Atlas.Height > maxAtlasSide {
		return fmt.Errorf("%w: atlas size %dx%d", ErrInvalid, c.Atlas.Width, c.Atlas.Height)
	}
	if c.Mesh.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Mesh.Workers)
	}
	if c.Mesh.MaxNodes <= 0 {
		return fmt.Errorf("%w: max_nodes %d", ErrInvalid, c.Mesh.MaxNodes)
	}
	if c.Output.Name == "" {
		return fmt.Errorf("%w: empty output name", ErrInvalid)
	}
	return nil
}

// WorkerCount resolves the configured worker count.
func (c *Config) WorkerCount() int {
	if c.Mesh.Workers > 0 {
		return c.Mesh.Workers
	}
	return runtime.GOMAXPROCS(0)
}
