package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kenjikellens/ivids-core/internal/cli/command/blocked"
	configcmd "github.com/kenjikellens/ivids-core/internal/cli/command/config"
	"github.com/kenjikellens/ivids-core/internal/cli/command/update"
	"github.com/kenjikellens/ivids-core/internal/cli/registry"
	cfg "github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/infrastructure/di"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/ui"
	"github.com/kenjikellens/ivids-core/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp(os.Args[1:])
	if err != nil {
		log.Fatalf("Error starting ivids-core: %v", err)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.HandleAppError(err, app.translations)
		stop()
		os.Exit(1)
	}
}

type application struct {
	*cli.Command
	translations *i18n.Translations
}

// initializeApp loads the configuration before the command tree is built, so
// the global flags are read from args up front.
func initializeApp(args []string) (*application, error) {
	logger.Initialize(hasFlag(args, "debug"), hasFlag(args, "verbose"))

	path, err := configPath(args)
	if err != nil {
		return nil, err
	}

	cfgApp, err := cfg.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Debug(context.Background(), "configuration loaded", "path", cfgApp.PathFile)

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	container := di.NewContainer(cfgApp, translations)
	out := os.Stdout

	registerCommand := registry.NewRegistry(cfgApp, translations)

	factories := []struct {
		name    string
		factory registry.CommandFactory
	}{
		{"check", update.NewCheckCommandFactory(container, out)},
		{"update", update.NewUpdateCommandFactory(container, out)},
		{"download-repo", update.NewDownloadRepoCommandFactory(container, out)},
		{"blocked", blocked.NewBlockedCommandFactory(container, out)},
		{"config", configcmd.NewConfigCommandFactory(out)},
	}
	for _, f := range factories {
		if err := registerCommand.Register(f.name, f.factory); err != nil {
			return nil, fmt.Errorf("error registering command '%s': %w", f.name, err)
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("cli.help_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd.Root())
		},
	})

	root := &cli.Command{
		Name:    "ivids-core",
		Usage:   translations.GetMessage("app_usage", 0, nil),
		Version: version.FullVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("cli.debug_flag", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("cli.verbose_flag", 0, nil),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: translations.GetMessage("cli.config_flag", 0, nil),
				Value: cfgApp.PathFile,
			},
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}

	return &application{Command: root, translations: translations}, nil
}

// configPath returns the --config value from args, or the home directory so
// LoadConfig resolves the default location.
func configPath(args []string) (string, error) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--config" && i+1 < len(args) {
			return filepath.Clean(args[i+1]), nil
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok && value != "" {
			return filepath.Clean(value), nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve the user home directory: %w", err)
	}
	return homeDir, nil
}

func hasFlag(args []string, name string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--"+name || arg == "-"+name || arg == "--"+name+"=true" {
			return true
		}
	}
	return false
}
