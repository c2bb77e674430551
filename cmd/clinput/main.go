// Package main is the entry point for the clinput CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	clicmd "github.com/NikitaCOEUR/clinput/internal/cli"
	"github.com/NikitaCOEUR/clinput/internal/config"
	"github.com/NikitaCOEUR/clinput/internal/derrors"
	"github.com/NikitaCOEUR/clinput/internal/logger"
	"github.com/NikitaCOEUR/clinput/internal/trace"
	"github.com/NikitaCOEUR/clinput/pkg/version"
	"github.com/urfave/cli/v3"
)

const authFileEnvVar = "CLINPUT_AUTH_FILE"

// Exit codes
const (
	exitOK         = 0
	exitFailure    = 1
	exitCompletion = 2
)

func main() {
	stop := trace.Init()

	err := newApp(os.Args, os.Stdout).Run(context.Background(), os.Args)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process status. Completion failures use a
// distinct status so registration scripts can tell them from an empty
// candidate list.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var completionErr *derrors.CompletionError
	if errors.As(err, &completionErr) {
		return exitCompletion
	}
	return exitFailure
}

func manifestFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		Usage:   "Manifest file (searched from the current directory if not specified)",
		Sources: cli.EnvVars(config.ManifestEnvVar),
	}
}

func formatFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   clicmd.FormatText,
		Usage:   usage,
	}
}

//nolint:gocyclo // Command table complexity is acceptable
func newApp(args []string, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  "clinput",
		Usage:                 "Parse and complete command lines described by a manifest",
		Version:               version.String(),
		EnableShellCompletion: true,
		Writer:                stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logger.LevelEnvVar),
			},
			&cli.StringFlag{
				Name:    "auth-file",
				Usage:   "File recording the manifests allowed to run completion commands",
				Sources: cli.EnvVars(authFileEnvVar),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Bind a command line to the manifest and print the result",
				ArgsUsage: "[--] [tokens...]",
				Flags: []cli.Flag{
					manifestFlag(),
					formatFlag("Output format: text, json or yaml"),
					&cli.StringFlag{
						Name:    "line",
						Aliases: []string{"l"},
						Usage:   "Command line to split with shell quoting rules instead of tokens",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return clicmd.Parse(ctx, clicmd.ParseParams{
						ManifestPath: cmd.String("manifest"),
						LogLevel:     cmd.String("log-level"),
						Format:       cmd.String("format"),
						Line:         cmd.String("line"),
						Args:         clicmd.ArgsAfterTerminator(args, cmd.Args().Slice()),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "complete",
				Usage:     "Print completion candidates (called by registration scripts)",
				ArgsUsage: "-- <program> [words...]",
				Hidden:    true,
				HideHelp:  true,
				Flags: []cli.Flag{
					manifestFlag(),
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish or auto",
						Sources: cli.EnvVars(clicmd.ShellEnvVar),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					words := clicmd.ArgsAfterTerminator(args, cmd.Args().Slice())
					return clicmd.Complete(ctx, clicmd.CompleteParams{
						ManifestPath: cmd.String("manifest"),
						AuthPath:     cmd.String("auth-file"),
						LogLevel:     cmd.String("log-level"),
						Shell:        cmd.String("shell"),
						Words:        words,
						CWord:        clicmd.CWordFromEnv(words),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "script",
				Usage:     "Print the shell script registering completion for the manifest's program",
				ArgsUsage: "[program...]",
				Flags: []cli.Flag{
					manifestFlag(),
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish or auto",
						Sources: cli.EnvVars(clicmd.ShellEnvVar),
					},
					&cli.StringFlag{
						Name:  "binary",
						Value: "clinput",
						Usage: "Command the script uses to call clinput",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Script(clicmd.ScriptParams{
						ManifestPath: cmd.String("manifest"),
						LogLevel:     cmd.String("log-level"),
						Shell:        cmd.String("shell"),
						Programs:     cmd.Args().Slice(),
						Binary:       cmd.String("binary"),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "install",
				Usage:     "Install or uninstall the registration script where the shell loads it",
				ArgsUsage: "[program...]",
				Flags: []cli.Flag{
					manifestFlag(),
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish or auto",
						Sources: cli.EnvVars(clicmd.ShellEnvVar),
					},
					&cli.StringFlag{
						Name:  "binary",
						Value: "clinput",
						Usage: "Command the script uses to call clinput",
					},
					&cli.BoolFlag{
						Name:    "uninstall",
						Aliases: []string{"u"},
						Usage:   "Remove the registration script instead of installing it",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Install(clicmd.InstallParams{
						ManifestPath: cmd.String("manifest"),
						LogLevel:     cmd.String("log-level"),
						Shell:        cmd.String("shell"),
						Programs:     cmd.Args().Slice(),
						Binary:       cmd.String("binary"),
						Uninstall:    cmd.Bool("uninstall"),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "allow",
				Usage:     "Allow a manifest to run its completion commands",
				ArgsUsage: "[manifest-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Allow(clicmd.AllowParams{
						ManifestPath: cmd.Args().Get(0),
						AuthPath:     cmd.String("auth-file"),
						LogLevel:     cmd.String("log-level"),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "revoke",
				Usage:     "Revoke the grant of a manifest",
				ArgsUsage: "[manifest-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Revoke(clicmd.AllowParams{
						ManifestPath: cmd.Args().Get(0),
						AuthPath:     cmd.String("auth-file"),
						LogLevel:     cmd.String("log-level"),
						Output:       stdout,
					})
				},
			},
			{
				Name:  "list",
				Usage: "List the manifests allowed to run completion commands",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.List(cmd.String("auth-file"), stdout)
				},
			},
			{
				Name:      "describe",
				Usage:     "Show the options, arguments and commands of the manifest",
				ArgsUsage: "[command]",
				Flags: []cli.Flag{
					manifestFlag(),
					formatFlag("Output format: text, help, json or yaml"),
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Describe(clicmd.DescribeParams{
						ManifestPath: cmd.String("manifest"),
						LogLevel:     cmd.String("log-level"),
						Command:      cmd.Args().Get(0),
						Format:       cmd.String("format"),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a manifest file",
				ArgsUsage: "[manifest-file]",
				Flags: []cli.Flag{
					formatFlag("Output format: text, json or yaml"),
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return clicmd.Validate(clicmd.ValidateParams{
						ManifestPath: cmd.Args().Get(0),
						Format:       cmd.String("format"),
						Output:       stdout,
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for manifest files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return clicmd.Schema(outputPath, stdout)
				},
			},
		},
	}
}
