package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/localens/localens/internal/cancel"
	"github.com/localens/localens/internal/output"
	"github.com/localens/localens/internal/progress"
	"github.com/localens/localens/pkg/analyzer/keys"
	"github.com/urfave/cli/v2"
)

func keysCmd() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Aliases:   []string{"i18n"},
		Usage:     "Find localization keys the code never references",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "locale",
				Aliases: []string{"l"},
				Usage:   "Localization JSON file to analyze (default from config)",
			},
			&cli.StringSliceFlag{
				Name:  "functions",
				Usage: "Translation call aliases to recognize (default from config)",
			},
			&cli.BoolFlag{
				Name:  "show-files",
				Usage: "List the files referencing each used key",
			},
			&cli.BoolFlag{
				Name:  "prune",
				Usage: "Remove unused keys from the locale file",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the prune confirmation prompt",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Batch width for file processing (0 scales with corpus size)",
			},
		},
		Action: runKeysCmd,
	}
}

func runKeysCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	localePath := c.String("locale")
	if localePath == "" {
		localePath = cfg.Keys.LocaleFile
	}

	data, err := os.ReadFile(localePath)
	if err != nil {
		return fmt.Errorf("cannot read locale file %s: %w", localePath, err)
	}
	tree, flat, err := keys.Load(data)
	if err != nil {
		return fmt.Errorf("%s: %w", localePath, err)
	}
	if len(flat) == 0 {
		color.Yellow("Locale file %s has no keys", localePath)
		return nil
	}

	files, err := collectFiles(cfg, getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	functions := c.StringSlice("functions")
	if len(functions) == 0 {
		functions = cfg.Keys.Functions
	}
	opts := []keys.Option{keys.WithFunctions(functions)}
	if width := c.Int("concurrency"); width > 0 {
		opts = append(opts, keys.WithConcurrency(width))
	} else if cfg.Analysis.Concurrency > 0 {
		opts = append(opts, keys.WithConcurrency(cfg.Analysis.Concurrency))
	}

	tok := interruptToken()
	tracker := progress.NewTracker("Resolving key usage...", len(files))
	tok.OnCancel(tracker.FinishCancelled)

	r := keys.New(opts...)
	analysis, err := r.Analyze(c.Context, tok, files, flat, tracker.Tick)
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

	rows := make([][]string, len(analysis.UnusedKeys))
	for i, k := range analysis.UnusedKeys {
		rows[i] = []string{k.Path, valuePreview(k.Value)}
	}

	table := output.NewTable(
		"Unused Localization Keys",
		[]string{"Key", "Value"},
		rows,
		[]string{
			fmt.Sprintf("Keys: %d", analysis.TotalKeys),
			fmt.Sprintf("Unused: %d", len(analysis.UnusedKeys)),
			fmt.Sprintf("Dynamic: %d", analysis.DynamicKeyCount),
			fmt.Sprintf("Files: %d", analysis.FilesScanned),
		},
		analysis,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if c.Bool("show-files") && formatter.Format() == output.FormatText {
		matched := make([]string, 0, len(analysis.MatchedFiles))
		for key := range analysis.MatchedFiles {
			matched = append(matched, key)
		}
		sort.Strings(matched)
		for _, key := range matched {
			fmt.Printf("%s\n", key)
			for _, p := range analysis.MatchedFiles[key] {
				fmt.Printf("  %s\n", p)
			}
		}
	}

	if analysis.DynamicKeyCount > 0 && formatter.Format() == output.FormatText {
		color.Yellow("%d key(s) are covered by dynamically built paths and were kept", analysis.DynamicKeyCount)
	}

	if c.Bool("prune") {
		return pruneLocale(c, localePath, tree, analysis.UnusedKeys)
	}
	return nil
}

// pruneLocale removes unused keys from the locale tree and writes it back,
// asking for confirmation first unless --yes was given. The rewritten file is
// alphabetized: MarshalIndent sorts map keys, so the original document order
// survives analysis but not a prune rewrite.
func pruneLocale(c *cli.Context, localePath string, tree map[string]any, unused []keys.FlattenedKey) error {
	if len(unused) == 0 {
		color.Green("Nothing to prune")
		return nil
	}

	if !c.Bool("yes") {
		fmt.Printf("Remove %d unused key(s) from %s? [y/N] ", len(unused), localePath)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		if answer = strings.ToLower(strings.TrimSpace(answer)); answer != "y" && answer != "yes" {
			color.Yellow("Prune aborted")
			return nil
		}
	}

	keys.Prune(tree, unused)

	encoded, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding locale file: %w", err)
	}
	encoded = append(encoded, '\n')

	if err := os.WriteFile(localePath, encoded, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", localePath, err)
	}
	color.Green("Removed %d key(s) from %s", len(unused), localePath)
	return nil
}

// valuePreview renders a leaf value for the report, truncated on a rune
// boundary so long translations do not blow up the table.
func valuePreview(v any) string {
	s := fmt.Sprintf("%v", v)
	if r := []rune(s); len(r) > 48 {
		return string(r[:45]) + "..."
	}
	return s
}
