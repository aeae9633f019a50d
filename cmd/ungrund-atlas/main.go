// Command ungrund-atlas bakes printable ASCII font atlases to disk and
// inspects the result.
//
//	ungrund-atlas build --font Inter.ttf --size 24 --out inter.png
//	ungrund-atlas inspect inter.toml
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ungrund-atlas:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag also claims -v, which is the verbosity flag here.
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ungrund-atlas"
	app.Usage = "bake and inspect ASCII font atlases"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "rasterize a font into an atlas PNG and glyph manifest",
			Description: `
Rasterize the printable ASCII range (32-126) of a TrueType or OpenType font
into a single-channel coverage bitmap, written as a grayscale PNG, and write
the atlas rectangle, bearing and advance of every packed glyph to a TOML
manifest next to it.

Settings come from --config when given; the remaining flags override it.
Without --font the built-in Go Regular face is used.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "TOML config file",
				},
				cli.StringFlag{
					Name:  "font, f",
					Usage: "font file (index 0 of collections)",
				},
				cli.Float64Flag{
					Name:  "size, s",
					Value: 32,
					Usage: "pixel height of the em square",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "atlas width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "atlas height",
				},
				cli.IntFlag{
					Name:  "margin",
					Value: 2,
					Usage: "padding between glyphs in pixels",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "atlas.png",
					Usage: "atlas image filename",
				},
				cli.StringFlag{
					Name:  "manifest, m",
					Usage: "glyph manifest filename (default: image name with .toml)",
				},
			},
			Action: buildAtlas,
		},
		{
			Name:      "inspect",
			Usage:     "print the glyph table of a manifest",
			ArgsUsage: "atlas.toml",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "check-image",
					Usage: "verify each glyph rectangle against the atlas PNG",
				},
			},
			Action: inspectAtlas,
		},
		{
			Name:      "config",
			Usage:     "print the default config file",
			ArgsUsage: " ",
			Action:    printConfig,
		},
	}
	return app
}
