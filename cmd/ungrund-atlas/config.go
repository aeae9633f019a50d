package main

import (
	"github.com/urfave/cli"

	"github.com/gogpu/ungrund/internal/config"
)

// printConfig implements the config command.
func printConfig(ctx *cli.Context) error {
	return config.Default().Encode(ctx.App.Writer)
}
