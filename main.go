package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/lead-enricher/internal/cache"
	"github.com/dtnitsch/lead-enricher/internal/enrich"
	"github.com/dtnitsch/lead-enricher/models"
	"github.com/dtnitsch/lead-enricher/pkg/help"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "lead-enricher",
		Usage: "Enrich sales leads with published work and company summaries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "cache-dir", Value: models.DefaultCacheDir, EnvVars: []string{"LEAD_ENRICHER_CACHE_DIR"}, Usage: "cache directory"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Usage: "log debug detail"},
			&cli.StringFlag{Name: "log-file", Usage: "also write JSON logs to this file"},
		},
		Commands: []*cli.Command{
			{
				Name:   "enrich",
				Usage:  "Enrich a lead CSV",
				Flags:  enrich.Flags,
				Action: enrich.EnrichAction,
			},
			{
				Name:  "cache",
				Usage: "Inspect or clear the lookup cache",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "Show entry count and size",
						Action: cache.StatsAction,
					},
					{
						Name:   "clear",
						Usage:  "Remove every entry (refused while an enrich run is active)",
						Action: cache.ClearAction,
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return nil
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
