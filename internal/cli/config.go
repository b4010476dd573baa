package cli

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/imagemix/pkg/compose"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. Its absence is not an error.
const defaultConfigFile = "imagemix.toml"

// Config holds file-based defaults for the render command. Flags given on
// the command line always win over config values.
type Config struct {
	Render RenderConfig `toml:"render"`
}

// RenderConfig mirrors the render command's flags.
type RenderConfig struct {
	Assets     string `toml:"assets"`
	Output     string `toml:"output"`
	Font       string `toml:"font"`
	Filter     string `toml:"filter"`
	Background string `toml:"background"`
	Workers    int    `toml:"workers"`
}

// loadConfig reads a TOML config file. An empty path falls back to
// imagemix.toml in the working directory; a missing fallback file yields an
// empty config, while an explicitly named file must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// merge fills opts fields from the config where the corresponding flag was
// not set on the command line. changed reports whether a flag was given.
func (cfg *Config) merge(opts *renderOpts, changed func(name string) bool) {
	r := cfg.Render
	if r.Assets != "" && !changed("assets") {
		opts.assets = r.Assets
	}
	if r.Output != "" && !changed("output") {
		opts.output = r.Output
	}
	if r.Font != "" && !changed("font") {
		opts.font = r.Font
	}
	if r.Filter != "" && !changed("filter") {
		opts.filter = r.Filter
	}
	if r.Background != "" && !changed("background") {
		opts.background = r.Background
	}
	if r.Workers > 0 && !changed("workers") {
		opts.workers = r.Workers
	}
}

// parseBackground parses a canvas fill color given as hex: "#RRGGBB" or
// "#RRGGBBAA" (leading '#' optional). An empty value keeps the engine
// default of fully transparent white.
func parseBackground(s string) (color.NRGBA, error) {
	if s == "" {
		return compose.DefaultBackground, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid background %q (expected #RRGGBB or #RRGGBBAA)", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
