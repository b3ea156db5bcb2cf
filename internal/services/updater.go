package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/ports"
	"github.com/kenjikellens/ivids-core/internal/vcs"
)

// artifactDownloader defines the methods needed by Updater to fetch an artifact.
type artifactDownloader interface {
	Download(ctx context.Context, rawURL, dest string, onProgress ProgressFunc) (string, error)
}

// Updater drives the check, download and install sequence. Every operation
// runs on its own Worker; results reach the host only through the observer.
type Updater struct {
	feed       vcs.ReleaseFeed
	resolver   *ReleaseResolver
	checker    *VersionChecker
	downloader artifactDownloader
	installer  ports.Installer
	probe      ports.NetworkProbe
	observer   ports.UpdateObserver
	dispatch   Dispatcher
	notify     *notifier
	worker     *Worker
	policy     models.BusyPolicy

	currentVersion string
	artifactPath   string
	fallbackURL    string

	mu      sync.Mutex
	session models.UpdateSession
}

type UpdaterOption func(*Updater)

func WithFeed(feed vcs.ReleaseFeed) UpdaterOption {
	return func(u *Updater) {
		u.feed = feed
	}
}

func WithResolver(r *ReleaseResolver) UpdaterOption {
	return func(u *Updater) {
		u.resolver = r
	}
}

func WithDownloader(d artifactDownloader) UpdaterOption {
	return func(u *Updater) {
		u.downloader = d
	}
}

func WithInstaller(i ports.Installer) UpdaterOption {
	return func(u *Updater) {
		u.installer = i
	}
}

// WithProbe sets the reachability check run before every operation. Without
// one the network is assumed available.
func WithProbe(p ports.NetworkProbe) UpdaterOption {
	return func(u *Updater) {
		u.probe = p
	}
}

func WithObserver(o ports.UpdateObserver) UpdaterOption {
	return func(u *Updater) {
		u.observer = o
	}
}

func WithDispatcher(d Dispatcher) UpdaterOption {
	return func(u *Updater) {
		u.dispatch = d
	}
}

func WithBusyPolicy(p models.BusyPolicy) UpdaterOption {
	return func(u *Updater) {
		u.policy = p
	}
}

// WithFallbackURL sets the fixed artifact location used by DownloadFromRepo.
func WithFallbackURL(rawURL string) UpdaterOption {
	return func(u *Updater) {
		u.fallbackURL = rawURL
	}
}

func NewUpdater(ctx context.Context, currentVersion, artifactPath string, opts ...UpdaterOption) (*Updater, error) {
	u := &Updater{
		currentVersion: currentVersion,
		artifactPath:   artifactPath,
		policy:         models.BusyPolicyQueue,
	}
	for _, opt := range opts {
		opt(u)
	}

	switch {
	case u.feed == nil:
		return nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("release feed is required"))
	case u.downloader == nil:
		return nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("downloader is required"))
	case u.installer == nil:
		return nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("installer is required"))
	case artifactPath == "":
		return nil, domainErrors.ErrConfigInvalid.WithError(fmt.Errorf("artifact path is required"))
	}

	if u.resolver == nil {
		u.resolver = NewReleaseResolver(u.feed, models.ResolveModeAssets, ".apk")
	}
	u.notify = newNotifier(u.observer, u.dispatch)
	u.checker = NewVersionChecker(func(s models.Status) {
		u.setStatus(ctx, s)
	})
	u.worker = NewWorker(ctx, u.policy)
	u.session = models.UpdateSession{
		CurrentVersion: currentVersion,
		ArtifactPath:   artifactPath,
		Status:         models.StatusIdle,
	}

	return u, nil
}

// Session returns a copy of the current session.
func (u *Updater) Session() models.UpdateSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session
}

// CheckForUpdates starts a new session and looks for a newer release. The
// returned channel is closed when the check has finished.
func (u *Updater) CheckForUpdates(ctx context.Context) (<-chan struct{}, error) {
	return u.submit(ctx, "check", func(jobCtx context.Context) {
		jobCtx = u.newSession(jobCtx, "")
		u.check(jobCtx)
	})
}

// DownloadAndInstall fetches the artifact resolved by the last check and hands
// it to the installer.
func (u *Updater) DownloadAndInstall(ctx context.Context) (<-chan struct{}, error) {
	return u.submit(ctx, "download", func(jobCtx context.Context) {
		s := u.Session()
		if s.ID != "" {
			jobCtx = logger.With(jobCtx, "session", s.ID)
		}
		if !s.HasUpdate() {
			u.fail(jobCtx, domainErrors.ErrNoDownloadURL)
			return
		}
		u.downloadAndInstall(jobCtx, s.DownloadURL)
	})
}

// DownloadFromRepo skips the feed and installs the artifact at the fallback URL.
func (u *Updater) DownloadFromRepo(ctx context.Context) (<-chan struct{}, error) {
	return u.submit(ctx, "download_from_repo", func(jobCtx context.Context) {
		jobCtx = u.newSession(jobCtx, u.fallbackURL)
		if u.fallbackURL == "" {
			u.fail(jobCtx, domainErrors.ErrNoDownloadURL)
			return
		}
		u.downloadAndInstall(jobCtx, u.fallbackURL)
	})
}

// Busy reports whether an operation is queued or running. Hosts use it to
// disable update actions under BusyPolicyReject.
func (u *Updater) Busy() bool {
	return u.worker.Busy()
}

// Close stops the worker. Jobs still queued are discarded and the running job
// sees its context cancelled.
func (u *Updater) Close() {
	u.worker.Close()
}

func (u *Updater) submit(ctx context.Context, name string, fn func(ctx context.Context)) (<-chan struct{}, error) {
	log := logger.FromContext(ctx)
	done, err := u.worker.Submit(name, func(workerCtx context.Context) {
		jobCtx := logger.WithLogger(workerCtx, log)
		// A panicking collaborator still ends the session in StatusError.
		defer func() {
			if r := recover(); r != nil {
				u.fail(jobCtx, domainErrors.ErrUnexpectedFailure.
					WithError(fmt.Errorf("panic: %v", r)).
					WithContext("operation", name))
			}
		}()
		fn(jobCtx)
	})
	if err != nil {
		log.Warn("update operation refused", "operation", name, "error", err)
		return nil, err
	}
	return done, nil
}

func (u *Updater) newSession(ctx context.Context, downloadURL string) context.Context {
	id := uuid.NewString()

	u.mu.Lock()
	u.session = models.UpdateSession{
		ID:             id,
		CurrentVersion: u.currentVersion,
		DownloadURL:    downloadURL,
		ArtifactPath:   u.artifactPath,
		Status:         models.StatusIdle,
	}
	u.mu.Unlock()

	return logger.With(ctx, "session", id)
}

func (u *Updater) check(ctx context.Context) {
	log := logger.FromContext(ctx)

	if !u.available(ctx) {
		u.fail(ctx, domainErrors.ErrNetworkUnavailable)
		return
	}

	u.setStatus(ctx, models.StatusCheckingFeed)
	log.Debug("fetching release feed", "mode", string(u.resolver.Mode()))
	releases, err := u.feed.ListReleases(ctx)
	if err != nil {
		u.fail(ctx, err)
		return
	}

	u.setStatus(ctx, models.StatusFetchingReleases)
	latest, err := u.resolver.Latest(ctx, releases)
	if err != nil {
		u.noUpdate(ctx, err)
		return
	}

	u.mu.Lock()
	u.session.LatestVersion = latest.TagName
	u.mu.Unlock()

	log.Debug("comparing versions",
		"current", u.currentVersion,
		"latest", latest.TagName)

	if !u.checker.IsNewer(u.currentVersion, latest.TagName) {
		u.noUpdate(ctx, nil)
		return
	}

	u.setStatus(ctx, models.StatusResolvingArtifact)
	downloadURL, err := u.resolver.ResolveArtifact(ctx, latest)
	if err != nil {
		if domainErrors.IsNoUpdate(err) {
			u.setStatus(ctx, models.StatusNotFound)
		}
		u.noUpdate(ctx, err)
		return
	}

	u.mu.Lock()
	u.session.DownloadURL = downloadURL
	u.mu.Unlock()

	u.setStatus(ctx, models.StatusFound)
	log.Info("update available",
		"version", latest.TagName,
		"url", downloadURL)
	u.notify.found(latest.TagName)
}

func (u *Updater) downloadAndInstall(ctx context.Context, downloadURL string) {
	if !u.available(ctx) {
		u.fail(ctx, domainErrors.ErrNetworkUnavailable)
		return
	}

	u.setStatus(ctx, models.StatusDownloading)
	path, err := u.downloader.Download(ctx, downloadURL, u.artifactPath, func(p models.DownloadProgress) {
		u.notify.progress(p.Percent)
	})
	if err != nil {
		u.fail(ctx, err)
		return
	}
	u.setStatus(ctx, models.StatusDownloaded)

	u.setStatus(ctx, models.StatusInstalling)
	if err := u.installer.Install(ctx, path); err != nil {
		u.fail(ctx, domainErrors.ErrInstallFailed.WithError(err).WithContext("path", path))
		return
	}
	u.setStatus(ctx, models.StatusDone)
}

// noUpdate ends the session as up to date. Only "nothing to install" errors
// may reach here; anything else is a failure.
func (u *Updater) noUpdate(ctx context.Context, err error) {
	if err != nil && !domainErrors.IsNoUpdate(err) {
		u.fail(ctx, err)
		return
	}
	if err != nil {
		logger.Info(ctx, "no installable update", "reason", err.Error())
	}
	u.setStatus(ctx, models.StatusUpToDate)
	u.notify.noUpdate()
}

func (u *Updater) fail(ctx context.Context, err error) {
	logger.Error(ctx, "update failed", err)
	u.setStatus(ctx, models.StatusError)
	u.notify.failed()
}

func (u *Updater) setStatus(ctx context.Context, s models.Status) {
	u.mu.Lock()
	u.session.Status = s
	u.mu.Unlock()

	logger.Info(ctx, "update status", "status", s.String())
	u.notify.status(s)
}

func (u *Updater) available(ctx context.Context) bool {
	if u.probe == nil {
		return true
	}
	return u.probe.Available(ctx)
}
