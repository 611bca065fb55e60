// Package main is the entry point for the fastcomplete CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	fccli "github.com/NikitaCOEUR/fastcomplete/internal/cli"
	"github.com/NikitaCOEUR/fastcomplete/internal/config"
	"github.com/NikitaCOEUR/fastcomplete/internal/logger"
	"github.com/NikitaCOEUR/fastcomplete/internal/trace"
	"github.com/NikitaCOEUR/fastcomplete/pkg/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "fastcomplete",
		Usage:   "Static shell completion for large command line tools",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("FASTCOMPLETE_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "complete",
				Usage: "Answer a shell completion request (COMP_LINE, COMP_POINT) on descriptor 8",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					defer trace.Init(os.Getenv(trace.EnvVar))()

					params, ok := fccli.ParamsFromEnv(nil)
					if !ok {
						return fmt.Errorf("COMP_LINE is not set: complete is run by the shell, see 'fastcomplete hook'")
					}

					// A broken config must not break completion: fall back to defaults
					cfg, err := fccli.LoadConfig(cmd.String("log-level"))
					if err != nil {
						cfg = &config.Config{LogLevel: cmd.String("log-level")}
					}

					log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogFile)
					if err == nil {
						defer func() { _ = closeLog() }()
					}

					params.Config = cfg
					params.Log = log
					return fccli.Complete(ctx, params)
				},
			},
			{
				Name:      "query",
				Usage:     "Print the completions of a command line, one per line",
				ArgsUsage: "<command line>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tree",
						Usage: "Tree file to use instead of the configured one",
					},
					&cli.BoolFlag{
						Name:  "fallback",
						Usage: "Ask the configured full CLI when the tree cannot answer",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("missing command line")
					}
					cfg, err := fccli.LoadConfig(cmd.String("log-level"))
					if err != nil {
						return err
					}
					return fccli.Query(ctx, fccli.QueryParams{
						Config:   cfg,
						Log:      logger.New(cfg.LogLevel, os.Stderr),
						Line:     strings.Join(cmd.Args().Slice(), " "),
						TreePath: cmd.String("tree"),
						Fallback: cmd.Bool("fallback"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a static tree file",
				ArgsUsage: "[tree-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, err := fccli.LoadConfig(cmd.String("log-level"))
					if err != nil {
						return err
					}
					return fccli.Validate(fccli.ValidateParams{
						Config: cfg,
						Path:   cmd.Args().First(),
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for static tree files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: fccli.FormatJSON,
						Usage: "Schema format (json, yaml)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return fccli.Schema(outputPath, cmd.String("format"), nil)
				},
			},
			{
				Name:      "inspect",
				Usage:     "Show statistics about the static tree or a subtree",
				ArgsUsage: "[command path...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tree",
						Usage: "Tree file to use instead of the configured one",
					},
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "Render with a Go template (sprig functions available)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, err := fccli.LoadConfig(cmd.String("log-level"))
					if err != nil {
						return err
					}
					return fccli.Inspect(fccli.InspectParams{
						Config:   cfg,
						TreePath: cmd.String("tree"),
						Path:     cmd.Args().Slice(),
						Template: cmd.String("template"),
					})
				},
			},
			{
				Name:      "hook",
				Usage:     "Print shell code registering fastcomplete for the given programs",
				ArgsUsage: "<program...>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "shell",
						Usage: "Target shell (bash, zsh); detected from $SHELL by default",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return fccli.Hook(fccli.HookParams{
						Shell:    cmd.String("shell"),
						Programs: cmd.Args().Slice(),
					})
				},
			},
		},
	}
}
