package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/gogpu/ungrund/internal/atlasio"
)

var errInspectArgs = errors.New("inspect: expected exactly one manifest file")

// inspectAtlas implements the inspect command.
func inspectAtlas(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errInspectArgs
	}
	path := ctx.Args().First()
	m, err := atlasio.LoadManifest(path)
	if err != nil {
		return err
	}

	var bitmap *image.Alpha
	if ctx.Bool("check-image") && m.Image != "" {
		imgPath := m.Image
		if !filepath.IsAbs(imgPath) {
			imgPath = filepath.Join(filepath.Dir(path), filepath.FromSlash(imgPath))
		}
		if bitmap, err = atlasio.LoadPNG(imgPath); err != nil {
			return err
		}
		if bitmap.Rect.Dx() != m.Width || bitmap.Rect.Dy() != m.Height {
			return fmt.Errorf("inspect: image is %dx%d, manifest says %dx%d",
				bitmap.Rect.Dx(), bitmap.Rect.Dy(), m.Width, m.Height)
		}
	}

	fmt.Fprint(ctx.App.Writer, glyphReport(m, bitmap))
	return nil
}

// glyphReport renders the manifest as a table. When bitmap is non-nil a
// coverage column shows how many pixels of each rectangle are inked.
func glyphReport(m atlasio.Manifest, bitmap *image.Alpha) string {
	header := []string{"Char", "Code", "Rect", "Size", "Bearing", "Advance"}
	if bitmap != nil {
		header = append(header, "Inked")
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)

	var area int
	for _, g := range m.Glyphs {
		w, h := g.X1-g.X0, g.Y1-g.Y0
		area += w * h
		row := []string{
			fmt.Sprintf("%q", g.Char),
			fmt.Sprintf("%d", g.Code),
			fmt.Sprintf("(%d,%d)-(%d,%d)", g.X0, g.Y0, g.X1, g.Y1),
			fmt.Sprintf("%dx%d", w, h),
			fmt.Sprintf("%.1f, %.1f", g.BearingX, g.BearingY),
			fmt.Sprintf("%.2f", g.Advance),
		}
		if bitmap != nil {
			row = append(row, fmt.Sprintf("%d", inked(bitmap, g)))
		}
		table.Append(row)
	}

	used := 0.0
	if total := m.Width * m.Height; total > 0 {
		used = 100 * float64(area) / float64(total)
	}
	footer := []string{"", "", "", "", "GLYPHS", fmt.Sprintf("%d", len(m.Glyphs))}
	if bitmap != nil {
		footer = append(footer, "")
	}
	table.SetFooter(footer)
	table.Render()

	fmt.Fprintf(&buf, "%s %gpx, atlas %dx%d, %.1f%% used, overflow %t\n",
		m.Font, m.PixelHeight, m.Width, m.Height, used, m.Overflow)
	return buf.String()
}

func inked(bitmap *image.Alpha, g atlasio.Glyph) int {
	n := 0
	for y := g.Y0; y < g.Y1; y++ {
		for x := g.X0; x < g.X1; x++ {
			if bitmap.AlphaAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}
