// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// catalogFlags are shared by every command that reconciles a pair of catalogs.
func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "reference",
			Aliases:  []string{"r"},
			Usage:    "Reference catalog export (CSV or XML)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "local",
			Aliases:  []string{"l"},
			Usage:    "Local catalog (CSV, XML or music folder)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "reference-label",
			Usage: "Display name of the reference catalog (default: catalog.reference_label)",
		},
		&cli.StringFlag{
			Name:  "local-label",
			Usage: "Display name of the local catalog (default: catalog.local_label)",
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Report format: csv, xml, markdown or txt (default: export.format)",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	flags := []cli.Flag{}
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// compareCommand classifies both catalogs into common, reference-only and local-only sets
func compareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare a reference catalog against a local one",
		Flags: withFlags(catalogFlags(), jsonFlags(), []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the common and local-only songs as one comparison report",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "Print the tracks of every set",
			},
		}),
		Action: r.Compare,
	}
}

// missingCommand scores reference tracks that have no close local match
func missingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "missing",
		Usage: "Best-effort report of reference tracks missing locally, with match scores",
		Flags: withFlags(catalogFlags(), jsonFlags(), []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the missing report to a file",
			},
		}),
		Action: r.Missing,
	}
}

// exportCommand writes one report per requested result set
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Compare both catalogs and write result set reports",
		Flags: withFlags(catalogFlags(), jsonFlags(), []cli.Flag{
			formatFlag(),
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "Result set to export: comparison, common, reference-only, local-only (repeatable, default: comparison)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: export.directory)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent report writers (max 4)",
				Value: 2,
			},
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Write a JSON manifest of the exported reports",
			},
		}),
		Action: r.Export,
	}
}

// scanCommand lists the tracks a music folder scan produces
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "List the tracks found in a music folder",
		Flags: withFlags(jsonFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "Music folder to scan (not recursive)",
				Required: true,
			},
		}),
		Action: r.Scan,
	}
}

// normalizeCommand is a debugging helper for the matcher
func normalizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "normalize",
		Usage: "Show normalized forms and similarity scores for a title and artist",
		Flags: withFlags(jsonFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:  "title",
				Usage: "Track title",
			},
			&cli.StringFlag{
				Name:  "artist",
				Usage: "Track artist",
			},
			&cli.StringFlag{
				Name:  "against-title",
				Usage: "Title to score against",
			},
			&cli.StringFlag{
				Name:  "against-artist",
				Usage: "Artist to score against",
			},
		}),
		Action: r.Normalize,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example configuration file",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration",
				Action: r.ConfigShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing a comparison interactively.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI to browse a comparison",
		Flags: withFlags(catalogFlags(), []cli.Flag{
			formatFlag(),
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log file used while the TUI is running",
				Value: "./tmp/mlc-tui.log",
			},
		}),
		Action: r.TUI,
	}
}
