package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2048, cfg.Atlas.Width)
	assert.Equal(t, 2048, cfg.Atlas.Height)
	assert.Equal(t, 256, cfg.Mesh.MaxNodes)
	assert.Equal(t, "Server/Item/Items", cfg.Assets.BlockTypes)
	assert.Equal(t, "Common", cfg.Assets.Common)
	assert.True(t, cfg.Output.FlipV)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
assets:
  paths: ["base.zip", "mods/"]
  block_list: "BlockTypeList.pb"
atlas:
  width: 1024
  height: 512
mesh:
  workers: 4
output:
  dir: "build"
  flip_v: false
logging:
  level: "debug"
  log_file: "export.log"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))

	assert.Equal(t, []string{"base.zip", "mods/"}, cfg.Assets.Paths)
	assert.Equal(t, "BlockTypeList.pb", cfg.Assets.BlockList)
	assert.Equal(t, 1024, cfg.Atlas.Width)
	assert.Equal(t, 512, cfg.Atlas.Height)
	assert.Equal(t, 4, cfg.Mesh.Workers)
	assert.Equal(t, 256, cfg.Mesh.MaxNodes, "unset keys keep defaults")
	assert.Equal(t, "build", cfg.Output.Dir)
	assert.False(t, cfg.Output.FlipV)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "export.log", cfg.Logging.LogFile)
}

func TestLoadFromFileTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "blockforge.toml")
	tomlContent := `
[atlas]
width = 4096
height = 4096

[output]
name = "village"
`
	require.NoError(t, os.WriteFile(configPath, []byte(tomlContent), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, configPath))
	assert.Equal(t, 4096, cfg.Atlas.Width)
	assert.Equal(t, "village", cfg.Output.Name)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
atlas:
  width: not a number
  invalid syntax here
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0644))
	assert.Error(t, loadFromFile(Default(), configPath))
}

func TestLoadFromFileMissing(t *testing.T) {
	assert.Error(t, loadFromFile(Default(), "/nonexistent/path/config.yaml"))
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Atlas.Width = 512
			cfg.Assets.Paths = []string{"a.zip"}
			require.NoError(t, cfg.SaveTo(path))

			loaded := Default()
			require.NoError(t, loadFromFile(loaded, path))
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero atlas", func(c *Config) { c.Atlas.Width = 0 }},
		{"huge atlas", func(c *Config) { c.Atlas.Height = maxAtlasSide + 1 }},
		{"negative workers", func(c *Config) { c.Mesh.Workers = -1 }},
		{"no nodes", func(c *Config) { c.Mesh.MaxNodes = 0 }},
		{"empty name", func(c *Config) { c.Output.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should return absolute path, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "blockforge.toml"), []byte("[atlas]\nwidth = 64\n"), 0644))
	assert.Equal(t, "./blockforge.toml", findConfigFile())
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:     "debug flag",
			setup:    func() { *flagDebug = true },
			verify:   func(cfg *Config) { assert.Equal(t, "debug", cfg.Logging.Level) },
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "base.zip, ,mods" },
			verify: func(cfg *Config) {
				assert.Equal(t, []string{"base.zip", "mods"}, cfg.Assets.Paths)
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:     "prefab flag",
			setup:    func() { *flagPrefab = "house.prefab.json" },
			verify:   func(cfg *Config) { assert.Equal(t, "house.prefab.json", cfg.Input.Prefab) },
			teardown: func() { *flagPrefab = "" },
		},
		{
			name:  "atlas flag",
			setup: func() { *flagAtlas = 1024 },
			verify: func(cfg *Config) {
				assert.Equal(t, 1024, cfg.Atlas.Width)
				assert.Equal(t, 1024, cfg.Atlas.Height)
			},
			teardown: func() { *flagAtlas = 0 },
		},
		{
			name:  "output flags",
			setup: func() { *flagOutput = "dist"; *flagName = "castle"; *flagWorkers = 3 },
			verify: func(cfg *Config) {
				assert.Equal(t, "dist", cfg.Output.Dir)
				assert.Equal(t, "castle", cfg.Output.Name)
				assert.Equal(t, 3, cfg.WorkerCount())
			},
			teardown: func() { *flagOutput = ""; *flagName = ""; *flagWorkers = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}
