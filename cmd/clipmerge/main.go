// Package main provides the CLI entry point for clipmerge.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "clipmerge",
		Usage:   l10n.T("Merge two video clips under one audio track"),
		Version: version,
		Description: l10n.T("clipmerge plays two clips back to back, lays one audio track across both, " +
			"exports a movie file and saves it to a media library."),
		Commands: []*cli.Command{
			mergeCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("clipmerge version %s", version))
					return nil
				},
			},
		},
	}
}
