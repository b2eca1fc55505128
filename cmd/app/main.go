package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/tilde/internal"
	pkgconfig "github.com/starford/tilde/pkg/config"
)

const defaultConfigPath = "config/config.yaml"

// loadConfig reads the config file named by --config. The default path may be
// absent, in which case built-in defaults apply; an explicit path must exist.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	root := cmd.Root()
	configPath := root.String("config")

	cfg := internal.NewDefaultConfig()
	load := pkgconfig.Load[internal.Config]
	if !root.IsSet("config") {
		load = pkgconfig.LoadOptional[internal.Config]
	}
	if err := load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// The flag wins over the file.
	if dir := root.String("dir"); dir != "" {
		cfg.Notes.Path = dir
	}
	return cfg, nil
}

// commandOptions configures one-shot commands to log warnings to stderr.
func commandOptions(cmd *cli.Command) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfg.App.LogLevel = slog.LevelWarn
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithLogOutput(os.Stderr),
	}, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func listAction(_ context.Context, cmd *cli.Command) error {
	opts, err := commandOptions(cmd)
	if err != nil {
		return err
	}
	return internal.List(os.Stdout, opts...)
}

func showAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: %s show NAME", cmd.Root().Name)
	}
	opts, err := commandOptions(cmd)
	if err != nil {
		return err
	}
	return internal.Show(os.Stdout, cmd.Args().First(), cmd.Bool("raw"), opts...)
}

func setAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 3 {
		return fmt.Errorf("usage: %s set NAME LINE TEXT", cmd.Root().Name)
	}
	number, err := strconv.Atoi(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid line number %q: %w", cmd.Args().Get(1), err)
	}
	opts, err := commandOptions(cmd)
	if err != nil {
		return err
	}
	return internal.Set(cmd.Args().Get(0), number, cmd.Args().Get(2), opts...)
}

func main() {
	cmd := &cli.Command{
		Name:   "tilde",
		Usage:  "Browse and edit plain-text notes line by line (~ marks done, * marks important)",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Notes directory (overrides notes.path)",
				Sources: cli.EnvVars("TILDE_NOTES_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the notes in the directory",
				Action: listAction,
			},
			{
				Name:      "show",
				Usage:     "Print the lines of a note",
				ArgsUsage: "NAME",
				Action:    showAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Print the file verbatim",
					},
				},
			},
			{
				Name:      "set",
				Usage:     "Replace one line of a note",
				ArgsUsage: "NAME LINE TEXT",
				Action:    setAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
