package di

import (
	"context"
	"sync"

	"github.com/kenjikellens/ivids-core/internal/adblock"
	"github.com/kenjikellens/ivids-core/internal/config"
	"github.com/kenjikellens/ivids-core/internal/host"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/ports"
	"github.com/kenjikellens/ivids-core/internal/services"
	"github.com/kenjikellens/ivids-core/internal/vcs"
	"github.com/kenjikellens/ivids-core/internal/vcs/github"
)

// Container builds the update stack from the loaded configuration.
// Everything is created lazily on first use.
type Container struct {
	config       *config.Config
	translations *i18n.Translations

	mu    sync.Mutex
	hosts *adblock.HostSet
	feed  vcs.ReleaseFeed
}

func NewContainer(cfg *config.Config, trans *i18n.Translations) *Container {
	return &Container{
		config:       cfg,
		translations: trans,
	}
}

func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) Translations() *i18n.Translations {
	return c.translations
}

// SetReleaseFeed replaces the GitHub feed, mostly for tests.
func (c *Container) SetReleaseFeed(feed vcs.ReleaseFeed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed = feed
}

// GetHostSet returns the built-in blocklist merged with adblock.blocklist_file.
func (c *Container) GetHostSet() (*adblock.HostSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hosts == nil {
		set, err := adblock.Load(c.config.AdBlock.BlocklistFile)
		if err != nil {
			return nil, err
		}
		c.hosts = set
	}
	return c.hosts, nil
}

// GetReleaseFeed returns the GitHub release feed. Its requests go through the
// same host filter as the rest of the shell.
func (c *Container) GetReleaseFeed() (vcs.ReleaseFeed, error) {
	hosts, err := c.GetHostSet()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.feed == nil {
		u := c.config.Update
		feed, err := github.NewFeedClient(u.Owner, u.Repo, u.Token,
			github.WithBaseURL(u.APIBaseURL),
			github.WithUserAgent(u.UserAgent),
			github.WithTimeout(u.CheckTimeoutDuration()),
			github.WithTransport(adblock.NewTransport(hosts, nil)),
		)
		if err != nil {
			return nil, err
		}
		c.feed = feed
	}
	return c.feed, nil
}

// GetUpdater wires a new Updater that reports to observer through dispatch.
// The caller owns the returned Updater and must Close it.
func (c *Container) GetUpdater(ctx context.Context, observer ports.UpdateObserver, dispatch services.Dispatcher) (*services.Updater, error) {
	feed, err := c.GetReleaseFeed()
	if err != nil {
		return nil, err
	}

	u := c.config.Update

	artifactPath, err := c.config.ArtifactPath()
	if err != nil {
		return nil, err
	}

	installer, err := host.NewExecInstaller(u.InstallerCommand)
	if err != nil {
		return nil, err
	}

	return services.NewUpdater(ctx, c.config.EffectiveVersion(), artifactPath,
		services.WithFeed(feed),
		services.WithResolver(services.NewReleaseResolver(feed, u.ResolveMode, u.ArtifactExtension)),
		services.WithDownloader(services.NewDownloader(u.UserAgent, u.ConnectTimeoutDuration(), u.ReadTimeoutDuration())),
		services.WithInstaller(installer),
		services.WithProbe(host.NewDialProbe(u.EffectiveProbeAddress(), u.ConnectTimeoutDuration())),
		services.WithObserver(observer),
		services.WithDispatcher(dispatch),
		services.WithBusyPolicy(u.BusyPolicy),
		services.WithFallbackURL(u.FallbackURL),
	)
}
