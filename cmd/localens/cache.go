package main

import (
	"github.com/fatih/color"
	"github.com/localens/localens/internal/cache"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the analysis cache",
		Subcommands: []*cli.Command{
			{
				Name:   "clear",
				Usage:  "Remove all cached analysis results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func runCacheClearCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	color.Green("Cache cleared")
	return nil
}
