package vcs

import (
	"context"

	"github.com/kenjikellens/ivids-core/internal/models"
)

// ReleaseFeed is the source of published versions and repository files.
type ReleaseFeed interface {
	// ListReleases returns the feed in the host's own order, newest first.
	ListReleases(ctx context.Context) ([]models.ReleaseInfo, error)
	// ListContents returns the files at the root of the default branch.
	ListContents(ctx context.Context) ([]models.Asset, error)
}
