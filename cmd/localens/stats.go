package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/localens/localens/internal/cache"
	"github.com/localens/localens/internal/cancel"
	"github.com/localens/localens/internal/output"
	"github.com/localens/localens/internal/progress"
	"github.com/localens/localens/pkg/analyzer/content"
	"github.com/urfave/cli/v2"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Aliases:   []string{"st"},
		Usage:     "Classify lines and file naming conventions",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-lines",
				Usage: "Skip line classification",
			},
			&cli.BoolFlag{
				Name:  "no-naming",
				Usage: "Skip file naming classification",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Batch width for file processing (0 scales with corpus size)",
			},
		},
		Action: runStatsCmd,
	}
}

func runStatsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	opts := []content.Option{}
	if c.Bool("no-lines") || !cfg.Analysis.Lines {
		opts = append(opts, content.WithoutLines())
	}
	if c.Bool("no-naming") || !cfg.Analysis.Naming {
		opts = append(opts, content.WithoutNaming())
	}
	if width := c.Int("concurrency"); width > 0 {
		opts = append(opts, content.WithConcurrency(width))
	} else if cfg.Analysis.Concurrency > 0 {
		opts = append(opts, content.WithConcurrency(cfg.Analysis.Concurrency))
	}
	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		if store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true); err == nil {
			opts = append(opts, content.WithCache(store))
		}
	}

	tok := interruptToken()
	tracker := progress.NewTracker("Analyzing files...", len(files))
	tok.OnCancel(tracker.FinishCancelled)

	a := content.New(opts...)
	analysis, err := a.Analyze(c.Context, tok, files, tracker.Tick)
	if err != nil {
		if errors.Is(err, cancel.ErrCancelled) {
			return exitCancelled()
		}
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Physical", fmt.Sprintf("%d", analysis.Counters.Physical)},
		{"Source", fmt.Sprintf("%d", analysis.Source)},
		{"Comments", fmt.Sprintf("%d", analysis.Counters.Comment)},
		{"  Single-line", fmt.Sprintf("%d", analysis.Counters.SingleLineComment)},
		{"  Block", fmt.Sprintf("%d", analysis.Counters.BlockComment)},
		{"  Empty block", fmt.Sprintf("%d", analysis.Counters.EmptyBlockComment)},
		{"  Mixed", fmt.Sprintf("%d", analysis.Counters.Mixed)},
		{"Empty", fmt.Sprintf("%d", analysis.Counters.Empty)},
		{"TODO", fmt.Sprintf("%d", analysis.Counters.Todo)},
	}

	table := output.NewTable(
		"Content Analysis",
		[]string{"Category", "Lines"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", analysis.FileCount),
			fmt.Sprintf("Skipped: %d", analysis.SkippedFiles),
			fmt.Sprintf("%.2fs", analysis.DurationSecs),
		},
		analysis,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(analysis.Cases) > 0 && formatter.Format() != output.FormatJSON {
		caseTable := output.NewTable(
			"File Naming",
			[]string{"Convention", "Files"},
			caseRows(analysis.Cases),
			nil,
			nil,
		)
		if err := formatter.Output(caseTable); err != nil {
			return err
		}
	}

	if analysis.SkippedFiles > 0 && c.Bool("verbose") {
		color.Yellow("Skipped %d unreadable file(s)", analysis.SkippedFiles)
	}
	return nil
}

// caseRows sorts the naming distribution by count, then label, for a stable
// report.
func caseRows(cases map[string]int) [][]string {
	labels := make([]string, 0, len(cases))
	for label := range cases {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if cases[labels[i]] != cases[labels[j]] {
			return cases[labels[i]] > cases[labels[j]]
		}
		return labels[i] < labels[j]
	})

	rows := make([][]string, len(labels))
	for i, label := range labels {
		rows[i] = []string{label, fmt.Sprintf("%d", cases[label])}
	}
	return rows
}
