package update

import (
	"context"
	"io"

	"github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/ports"
	"github.com/kenjikellens/ivids-core/internal/services"
	"github.com/kenjikellens/ivids-core/internal/ui"
	"github.com/urfave/cli/v3"
)

// UpdaterProvider builds an Updater reporting to observer through dispatch.
type UpdaterProvider interface {
	GetUpdater(ctx context.Context, observer ports.UpdateObserver, dispatch services.Dispatcher) (*services.Updater, error)
}

type operation func(u *services.Updater) func(context.Context) (<-chan struct{}, error)

var (
	checkOp    operation = func(u *services.Updater) func(context.Context) (<-chan struct{}, error) { return u.CheckForUpdates }
	downloadOp operation = func(u *services.Updater) func(context.Context) (<-chan struct{}, error) { return u.DownloadAndInstall }
	repoOp     operation = func(u *services.Updater) func(context.Context) (<-chan struct{}, error) { return u.DownloadFromRepo }
)

// UpdateCommandFactory creates one of the updater commands. Each step runs
// only if the previous one left the session with something to install.
type UpdateCommandFactory struct {
	name     string
	usageID  string
	steps    []operation
	provider UpdaterProvider
	out      io.Writer
}

func NewCheckCommandFactory(provider UpdaterProvider, out io.Writer) *UpdateCommandFactory {
	return &UpdateCommandFactory{name: "check", usageID: "cli.check_usage", steps: []operation{checkOp}, provider: provider, out: out}
}

func NewUpdateCommandFactory(provider UpdaterProvider, out io.Writer) *UpdateCommandFactory {
	return &UpdateCommandFactory{name: "update", usageID: "cli.update_usage", steps: []operation{checkOp, downloadOp}, provider: provider, out: out}
}

func NewDownloadRepoCommandFactory(provider UpdaterProvider, out io.Writer) *UpdateCommandFactory {
	return &UpdateCommandFactory{name: "download-repo", usageID: "cli.download_repo_usage", steps: []operation{repoOp}, provider: provider, out: out}
}

func (f *UpdateCommandFactory) CreateCommand(trans *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  f.name,
		Usage: trans.GetMessage(f.usageID, 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			return f.run(ctx, trans)
		},
	}
}

func (f *UpdateCommandFactory) run(ctx context.Context, trans *i18n.Translations) error {
	if config.UpdateChecksDisabled() {
		ui.PrintWarning(f.out, trans.GetMessage("update.disabled", 0, nil))
		return nil
	}

	observer := ui.NewUpdateObserver(f.out, trans)
	dispatcher := services.NewSerialDispatcher(64)

	updater, err := f.provider.GetUpdater(ctx, observer, dispatcher.Dispatch)
	if err != nil {
		dispatcher.Close()
		return err
	}

	session, err := f.runSteps(ctx, updater)

	updater.Close()
	dispatcher.Close()
	observer.Finish()

	if err != nil {
		return err
	}

	switch {
	case session.Status == models.StatusDone:
		ui.PrintSuccess(f.out, trans.GetMessage("update.installed", 0, nil))
	case session.Status == models.StatusError, !session.Status.IsTerminal():
		return cli.Exit("", 1)
	}
	return nil
}

func (f *UpdateCommandFactory) runSteps(ctx context.Context, updater *services.Updater) (models.UpdateSession, error) {
	for i, step := range f.steps {
		if i > 0 && !updater.Session().HasUpdate() {
			break
		}

		done, err := step(updater)(ctx)
		if err != nil {
			return models.UpdateSession{}, err
		}

		select {
		case <-done:
		case <-ctx.Done():
			return models.UpdateSession{}, ctx.Err()
		}

		if updater.Session().Status == models.StatusError {
			break
		}
	}
	return updater.Session(), nil
}
