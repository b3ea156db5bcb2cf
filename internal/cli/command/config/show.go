package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("cli.config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(c.out, t.GetMessage("config.title", 0, nil))

			artifactPath, err := cfg.ArtifactPath()
			if err != nil {
				return err
			}

			token := t.GetMessage("config.token_unset", 0, nil)
			if cfg.Update.Token != "" {
				token = t.GetMessage("config.token_set", 0, nil)
			}

			u := cfg.Update
			rows := [][2]string{
				{"file", cfg.PathFile},
				{"language", cfg.Language},
				{"current_version", cfg.EffectiveVersion()},
				{"update.repository", u.Owner + "/" + u.Repo},
				{"update.api_base_url", valueOr(u.APIBaseURL, "https://api.github.com/")},
				{"update.token", token},
				{"update.resolve_mode", string(u.ResolveMode)},
				{"update.artifact_extension", u.ArtifactExtension},
				{"update.artifact_path", artifactPath},
				{"update.fallback_url", u.FallbackURL},
				{"update.user_agent", u.UserAgent},
				{"update.timeouts", fmt.Sprintf("check %ds, connect %ds, read %ds", u.CheckTimeout, u.ConnectTimeout, u.ReadTimeout)},
				{"update.busy_policy", string(u.BusyPolicy)},
				{"update.probe_address", valueOr(u.EffectiveProbeAddress(), "-")},
				{"update.installer_command", strings.Join(u.InstallerCommand, " ")},
				{"adblock.blocklist_file", valueOr(cfg.AdBlock.BlocklistFile, "-")},
			}
			for _, row := range rows {
				ui.PrintKeyValue(c.out, row[0], row[1])
			}

			if config.UpdateChecksDisabled() {
				_, _ = fmt.Fprintln(c.out)
				ui.PrintWarning(c.out, t.GetMessage("update.disabled", 0, nil))
			}
			return nil
		},
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
