// Package config loads the TOML settings used by the ungrund-atlas tool.
//
// A config file has three tables:
//
//	[font]
//	path = "fonts/Inter.ttf"   # empty selects the built-in Go Regular face
//	pixel_height = 32.0
//
//	[atlas]
//	width = 512
//	height = 512
//	margin = 2
//
//	[output]
//	image = "atlas.png"
//	glyphs = "atlas.toml"
//
// Keys missing from the file keep their Default values. Unknown keys are an
// error so typos do not silently fall back to defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Validation errors.
var (
	ErrInvalidPixelHeight = errors.New("config: font.pixel_height must be a positive finite number")
	ErrInvalidAtlasSize   = errors.New("config: atlas.width and atlas.height must be positive")
	ErrInvalidMargin      = errors.New("config: atlas.margin must not be negative")
	ErrNoOutput           = errors.New("config: output.image must be set")
)

// Config is the full tool configuration.
type Config struct {
	Font   FontConfig   `toml:"font"`
	Atlas  AtlasConfig  `toml:"atlas"`
	Output OutputConfig `toml:"output"`
}

// FontConfig selects the face to rasterize.
type FontConfig struct {
	Path        string  `toml:"path"`
	PixelHeight float64 `toml:"pixel_height"`
}

// AtlasConfig sets the bitmap dimensions and glyph padding.
type AtlasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Margin int `toml:"margin"`
}

// OutputConfig names the files written by the build command.
type OutputConfig struct {
	Image  string `toml:"image"`
	Glyphs string `toml:"glyphs"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Font: FontConfig{
			PixelHeight: 32,
		},
		Atlas: AtlasConfig{
			Width:  512,
			Height: 512,
			Margin: 2,
		},
		Output: OutputConfig{
			Image:  "atlas.png",
			Glyphs: "atlas.toml",
		},
	}
}

// Load reads path on top of Default and validates the result. Relative
// font and output paths are resolved against the directory of path.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(filepath.Clean(path), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	cfg.Font.Path = resolve(dir, cfg.Font.Path)
	cfg.Output.Image = resolve(dir, cfg.Output.Image)
	cfg.Output.Glyphs = resolve(dir, cfg.Output.Glyphs)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the atlas builder would otherwise reject.
func (c Config) Validate() error {
	h := c.Font.PixelHeight
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return ErrInvalidPixelHeight
	}
	if c.Atlas.Width <= 0 || c.Atlas.Height <= 0 {
		return ErrInvalidAtlasSize
	}
	if c.Atlas.Margin < 0 {
		return ErrInvalidMargin
	}
	if c.Output.Image == "" {
		return ErrNoOutput
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile writes c to path, creating parent directories as needed.
func (c Config) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
