package config

import (
	"flag"
	"strings"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagAssets  = flag.String("assets", "", "Comma-separated asset directories or zip archives")
	flagPrefab  = flag.String("prefab", "", "Prefab JSON file to export")
	flagOutput  = flag.String("output", "", "Output directory")
	flagName    = flag.String("name", "", "Base name of the exported files")
	flagAtlas   = flag.Int("atlas", 0, "Atlas width and height in pixels")
	flagWorkers = flag.Int("workers", 0, "Mesh worker count")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAssets != "" {
		cfg.Assets.Paths = splitList(*flagAssets)
	}
	if *flagPrefab != "" {
		cfg.Input.Prefab = *flagPrefab
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagName != "" {
		cfg.Output.Name = *flagName
	}
	if *flagAtlas > 0 {
		cfg.Atlas.Width = *flagAtlas
		cfg.Atlas.Height = *flagAtlas
	}
	if *flagWorkers > 0 {
		cfg.Mesh.Workers = *flagWorkers
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
