package services

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/vcs"
	"golang.org/x/mod/semver"
)

// ReleaseResolver picks the latest release from a feed and locates its
// installable artifact using one ResolveMode.
type ReleaseResolver struct {
	feed      vcs.ReleaseFeed
	mode      models.ResolveMode
	extension string
}

func NewReleaseResolver(feed vcs.ReleaseFeed, mode models.ResolveMode, extension string) *ReleaseResolver {
	return &ReleaseResolver{
		feed:      feed,
		mode:      mode,
		extension: strings.ToLower(extension),
	}
}

func (r *ReleaseResolver) Mode() models.ResolveMode {
	return r.mode
}

// LatestRelease returns the first entry of the feed. The feed's own order is
// trusted; entries are never re-sorted.
func LatestRelease(feed []models.ReleaseInfo) (models.ReleaseInfo, error) {
	if len(feed) == 0 {
		return models.ReleaseInfo{}, domainErrors.ErrNoReleasesFound
	}
	return feed[0], nil
}

// Latest is LatestRelease with a diagnostic for tags that are not semantic versions.
func (r *ReleaseResolver) Latest(ctx context.Context, feed []models.ReleaseInfo) (models.ReleaseInfo, error) {
	latest, err := LatestRelease(feed)
	if err != nil {
		return latest, err
	}

	tag := latest.TagName
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	if !semver.IsValid(tag) {
		logger.Debug(ctx, "latest tag is not a semantic version, comparing digit by digit", "tag", latest.TagName)
	}
	return latest, nil
}

// ResolveArtifact returns the download URL of the release's installable
// artifact. ErrArtifactNotFound means nothing qualified.
func (r *ReleaseResolver) ResolveArtifact(ctx context.Context, release models.ReleaseInfo) (string, error) {
	var candidates []models.Asset

	switch r.mode {
	case models.ResolveModeAssets:
		candidates = release.Assets
	case models.ResolveModeContents:
		entries, err := r.feed.ListContents(ctx)
		if err != nil {
			return "", err
		}
		candidates = entries
	default:
		return "", domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("unknown resolve mode %q", r.mode))
	}

	if asset, ok := r.firstArtifact(candidates); ok {
		logger.Info(ctx, "artifact resolved", "mode", string(r.mode), "name", asset.Name, "url", asset.DownloadURL)
		return asset.DownloadURL, nil
	}

	return "", domainErrors.ErrArtifactNotFound.
		WithContext("mode", string(r.mode)).
		WithContext("tag", release.TagName)
}

func (r *ReleaseResolver) firstArtifact(assets []models.Asset) (models.Asset, bool) {
	for _, a := range assets {
		if a.DownloadURL == "" {
			continue
		}
		if strings.HasSuffix(strings.ToLower(a.Name), r.extension) {
			return a, true
		}
	}
	return models.Asset{}, false
}
