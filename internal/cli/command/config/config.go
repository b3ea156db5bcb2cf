package config

import (
	"io"

	"github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct {
	out io.Writer
}

func NewConfigCommandFactory(out io.Writer) *ConfigCommandFactory {
	return &ConfigCommandFactory{out: out}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   t.GetMessage("cli.config_usage", 0, nil),
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
		},
	}
}
