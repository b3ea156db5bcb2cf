package host

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kenjikellens/ivids-core/internal/config"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/ports"
)

// ExecInstaller hands the artifact to an external command such as
// "adb install -r {artifact}". Every argument equal to or containing the
// placeholder gets the artifact path substituted.
type ExecInstaller struct {
	command []string
}

var _ ports.Installer = (*ExecInstaller)(nil)

func NewExecInstaller(command []string) (*ExecInstaller, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("installer command is empty")).
			WithSuggestion("Set update.installer_command, e.g. [\"adb\", \"install\", \"-r\", \"{artifact}\"]")
	}
	return &ExecInstaller{command: append([]string(nil), command...)}, nil
}

// Args returns the command line that would run for artifactPath.
func (i *ExecInstaller) Args(artifactPath string) []string {
	args := make([]string, len(i.command))
	for n, a := range i.command {
		args[n] = strings.ReplaceAll(a, config.ArtifactPlaceholder, artifactPath)
	}
	return args
}

func (i *ExecInstaller) Install(ctx context.Context, artifactPath string) error {
	if _, err := os.Stat(artifactPath); err != nil {
		return domainErrors.ErrInstallFailed.WithError(err).WithContext("path", artifactPath)
	}

	args := i.Args(artifactPath)
	if _, err := exec.LookPath(args[0]); err != nil {
		return domainErrors.ErrInstallFailed.
			WithError(err).
			WithSuggestion(fmt.Sprintf("Install %s or change update.installer_command", args[0]))
	}

	logger.Info(ctx, "starting installer", "command", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return domainErrors.ErrInstallFailed.
			WithError(fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))).
			WithContext("path", artifactPath)
	}

	logger.Debug(ctx, "installer finished", "output", strings.TrimSpace(string(output)))
	return nil
}
