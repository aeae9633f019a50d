package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ungrund"
	"github.com/gogpu/ungrund/internal/atlasio"
	"github.com/gogpu/ungrund/internal/config"
	"github.com/gogpu/ungrund/text"
)

// buildAtlas implements the build command.
func buildAtlas(ctx *cli.Context) error {
	setupLogging(ctx)
	log := ungrund.Logger()

	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}

	f, err := openFont(cfg.Font.Path)
	if err != nil {
		return err
	}

	img, err := text.Rasterize(f, cfg.Font.PixelHeight, cfg.Atlas.Width, cfg.Atlas.Height,
		text.WithMargin(cfg.Atlas.Margin))
	if err != nil {
		return err
	}

	for _, dir := range []string{filepath.Dir(cfg.Output.Image), filepath.Dir(cfg.Output.Glyphs)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := atlasio.SavePNG(cfg.Output.Image, img.Bitmap); err != nil {
		return err
	}

	m := atlasio.NewManifest(img, f.Name())
	m.Image = relativeTo(cfg.Output.Glyphs, cfg.Output.Image)
	if err := atlasio.SaveManifest(cfg.Output.Glyphs, m); err != nil {
		return err
	}

	log.Info("atlas written", "image", cfg.Output.Image, "manifest", cfg.Output.Glyphs,
		"glyphs", img.Packed())
	fmt.Fprint(ctx.App.Writer, buildSummary(cfg, img, f.Name()))
	return nil
}

// buildConfig layers explicitly set flags over the config file or the
// defaults.
func buildConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if ctx.IsSet("font") {
		cfg.Font.Path = ctx.String("font")
	}
	if ctx.IsSet("size") {
		cfg.Font.PixelHeight = ctx.Float64("size")
	}
	if ctx.IsSet("width") {
		cfg.Atlas.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Atlas.Height = ctx.Int("height")
	}
	if ctx.IsSet("margin") {
		cfg.Atlas.Margin = ctx.Int("margin")
	}
	if ctx.IsSet("out") {
		cfg.Output.Image = ctx.String("out")
		cfg.Output.Glyphs = manifestPath(cfg.Output.Image)
	}
	if ctx.IsSet("manifest") {
		cfg.Output.Glyphs = ctx.String("manifest")
	}
	if cfg.Output.Glyphs == "" {
		cfg.Output.Glyphs = manifestPath(cfg.Output.Image)
	}

	return cfg, cfg.Validate()
}

func openFont(path string) (*text.Font, error) {
	if path == "" {
		return text.LoadFont(goregular.TTF)
	}
	return text.LoadFontFile(path)
}

func manifestPath(image string) string {
	return strings.TrimSuffix(image, filepath.Ext(image)) + ".toml"
}

// relativeTo returns target relative to the directory of base when possible.
func relativeTo(base, target string) string {
	rel, err := filepath.Rel(filepath.Dir(base), target)
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

func buildSummary(cfg config.Config, img *text.AtlasImage, fontName string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Font", "Pixel height", "Atlas", "Packed", "Missing", "Overflow"})
	table.Append([]string{
		fontName,
		fmt.Sprintf("%g", img.PixelHeight),
		fmt.Sprintf("%dx%d", img.Width(), img.Height()),
		fmt.Sprintf("%d/%d", img.Packed(), text.GlyphCount),
		fmt.Sprintf("%d", img.Missing),
		fmt.Sprintf("%t", img.Overflow),
	})
	table.SetFooter([]string{"", "", "", "", "IMAGE", cfg.Output.Image})
	table.Render()
	return buf.String()
}
