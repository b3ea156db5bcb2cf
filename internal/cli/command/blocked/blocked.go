package blocked

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kenjikellens/ivids-core/internal/adblock"
	"github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/ui"
	"github.com/urfave/cli/v3"
)

type HostSetProvider interface {
	GetHostSet() (*adblock.HostSet, error)
}

type BlockedCommandFactory struct {
	provider HostSetProvider
	out      io.Writer
}

func NewBlockedCommandFactory(provider HostSetProvider, out io.Writer) *BlockedCommandFactory {
	return &BlockedCommandFactory{provider: provider, out: out}
}

func (f *BlockedCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "blocked",
		Usage:     t.GetMessage("cli.blocked_usage", 0, nil),
		ArgsUsage: "<host|url>...",
		Action: func(ctx context.Context, command *cli.Command) error {
			targets := command.Args().Slice()
			if len(targets) == 0 {
				return errors.New(t.GetMessage("cli.blocked_missing_args", 0, nil))
			}

			set, err := f.provider.GetHostSet()
			if err != nil {
				return err
			}

			for _, target := range targets {
				if isBlocked(set, target) {
					_, _ = fmt.Fprintf(f.out, "%s %s\n", ui.Error.Sprint(t.GetMessage("adblock.blocked", 0, nil)), target)
				} else {
					_, _ = fmt.Fprintf(f.out, "%s %s\n", ui.Success.Sprint(t.GetMessage("adblock.allowed", 0, nil)), target)
				}
			}
			return nil
		},
	}
}

func isBlocked(set *adblock.HostSet, target string) bool {
	if strings.Contains(target, "://") {
		return set.IsBlockedURL(target)
	}
	return set.IsBlocked(target)
}
