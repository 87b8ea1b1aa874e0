// Package main is the entry point for the goobits completion CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goobits/completion/internal/completion"
	"github.com/goobits/completion/internal/config"
	"github.com/goobits/completion/internal/history"
	"github.com/goobits/completion/internal/logger"
	"github.com/goobits/completion/internal/status"
	"github.com/goobits/completion/pkg/version"
	"github.com/urfave/cli/v3"
)

// defaultHistoryPath resolves the history file location under XDG data home
func defaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "goobits", "history")
}

// newApp builds the CLI command tree
func newApp(historyPath string) *cli.Command {
	return &cli.Command{
		Name:                  "goobits-completion",
		Usage:                 "Context-aware completion engine for goobits CLIs",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("GOOBITS_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "complete",
				Usage: "Print completion candidates for a partial word",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "word",
						Usage: "Partial word being completed",
					},
					&cli.StringFlag{
						Name:  "line",
						Usage: "Full command line typed so far",
					},
					&cli.StringFlag{
						Name:  "language",
						Value: "",
						Usage: "Project language hint (python, nodejs, typescript, rust)",
					},
					&cli.BoolFlag{
						Name:  "smart",
						Usage: "Enable fuzzy matching and history ranking",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					log := logger.New(cmd.String("log-level"), os.Stderr)

					store, err := history.New(historyPath)
					if err != nil {
						return fmt.Errorf("failed to open history: %w", err)
					}

					reg := completion.NewRegistry(
						completion.WithLogger(log),
						completion.WithHistorySource(store.Lines),
						completion.WithDefaultProviders(),
					)

					word := cmd.String("word")
					line := cmd.String("line")
					lang := completion.ParseLanguage(cmd.String("language"))

					var results []string
					if cmd.Bool("smart") {
						results = completion.NewSmart(reg).Complete(ctx, word, line, lang)
					} else {
						results = reg.Complete(ctx, word, line, lang)
					}

					for _, candidate := range results {
						fmt.Println(candidate)
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Show engine, config and provider status",
				Action: func(_ context.Context, cmd *cli.Command) error {
					log := logger.New(cmd.String("log-level"), os.Stderr)

					store, err := history.New(historyPath)
					if err != nil {
						return fmt.Errorf("failed to open history: %w", err)
					}

					reg := completion.NewRegistry(
						completion.WithLogger(log),
						completion.WithHistorySource(store.Lines),
						completion.WithDefaultProviders(),
					)

					data, err := status.Collect(reg, store)
					if err != nil {
						return fmt.Errorf("failed to collect status: %w", err)
					}

					fmt.Println(status.Render(data))
					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a goobits config file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := ""
					if cmd.Args().Len() > 0 {
						path = cmd.Args().Get(0)
					} else {
						cwd, err := os.Getwd()
						if err != nil {
							return fmt.Errorf("failed to get current directory: %w", err)
						}
						cfg := config.Discover(cwd)
						if cfg == nil {
							return fmt.Errorf("no config file found (searched: %v)", config.CandidatePaths(cwd))
						}
						path = cfg.Path
					}

					result, err := config.Validate(path)
					if err != nil {
						return fmt.Errorf("failed to validate %s: %w", path, err)
					}

					if result.Valid {
						fmt.Printf("✓ %s is valid\n", path)
						return nil
					}

					fmt.Printf("✗ %s has %d error(s):\n", path, len(result.Errors))
					for _, e := range result.Errors {
						if e.Field != "" {
							fmt.Printf("  - %s: %s\n", e.Field, e.Message)
						} else {
							fmt.Printf("  - %s\n", e.Message)
						}
					}
					return fmt.Errorf("validation failed")
				},
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema for goobits config files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write schema to file instead of stdout",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					schema := config.GetSchemaJSON()

					if out := cmd.String("output"); out != "" {
						if err := os.WriteFile(out, []byte(schema), 0o644); err != nil {
							return fmt.Errorf("failed to write schema: %w", err)
						}
						fmt.Printf("Schema written to %s\n", out)
						return nil
					}

					fmt.Println(schema)
					return nil
				},
			},
			{
				Name:   "history",
				Usage:  "Manage the completion history store",
				Hidden: true,
				Commands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Record an executed command line",
						ArgsUsage: "<line>",
						Action: func(_ context.Context, cmd *cli.Command) error {
							if cmd.Args().Len() == 0 {
								return fmt.Errorf("missing command line argument")
							}
							store, err := history.New(historyPath)
							if err != nil {
								return fmt.Errorf("failed to open history: %w", err)
							}
							return store.Append(cmd.Args().Get(0))
						},
					},
					{
						Name:  "list",
						Usage: "Print recorded history, oldest first",
						Action: func(_ context.Context, _ *cli.Command) error {
							store, err := history.New(historyPath)
							if err != nil {
								return fmt.Errorf("failed to open history: %w", err)
							}
							for _, line := range store.Lines() {
								fmt.Println(line)
							}
							return nil
						},
					},
					{
						Name:  "clear",
						Usage: "Delete all recorded history",
						Action: func(_ context.Context, _ *cli.Command) error {
							store, err := history.New(historyPath)
							if err != nil {
								return fmt.Errorf("failed to open history: %w", err)
							}
							return store.Clear()
						},
					},
				},
			},
		},
	}
}

func main() {
	app := newApp(defaultHistoryPath())

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
