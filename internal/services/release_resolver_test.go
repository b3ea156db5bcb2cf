package services

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLatestRelease(t *testing.T) {
	t.Run("empty feed is no releases, not a failure", func(t *testing.T) {
		_, err := LatestRelease([]models.ReleaseInfo{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrNoReleasesFound))
		assert.True(t, domainErrors.IsNoUpdate(err))
	})

	t.Run("first entry wins without sorting", func(t *testing.T) {
		feed := []models.ReleaseInfo{
			{TagName: "v1.0.0"},
			{TagName: "v3.0.0"},
		}
		latest, err := LatestRelease(feed)
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", latest.TagName)
	})
}

func TestReleaseResolver_Latest_AcceptsNonSemverTags(t *testing.T) {
	r := NewReleaseResolver(&MockReleaseFeed{}, models.ResolveModeAssets, ".apk")

	latest, err := r.Latest(context.Background(), []models.ReleaseInfo{{TagName: "build-42"}})
	require.NoError(t, err)
	assert.Equal(t, "build-42", latest.TagName)
}

func TestReleaseResolver_ResolveArtifact_Assets(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		assets    []models.Asset
		wantURL   string
		wantFound bool
	}{
		{
			name: "first matching asset wins",
			assets: []models.Asset{
				{Name: "notes.txt", DownloadURL: "https://example.com/notes.txt"},
				{Name: "IVIDS.apk", DownloadURL: "https://example.com/a.apk"},
				{Name: "IVIDS-tv.apk", DownloadURL: "https://example.com/b.apk"},
			},
			wantURL:   "https://example.com/a.apk",
			wantFound: true,
		},
		{
			name: "extension match ignores case",
			assets: []models.Asset{
				{Name: "IVIDS.APK", DownloadURL: "https://example.com/upper.apk"},
			},
			wantURL:   "https://example.com/upper.apk",
			wantFound: true,
		},
		{
			name: "asset without url is skipped",
			assets: []models.Asset{
				{Name: "IVIDS.apk"},
				{Name: "IVIDS-2.apk", DownloadURL: "https://example.com/2.apk"},
			},
			wantURL:   "https://example.com/2.apk",
			wantFound: true,
		},
		{
			name:   "no assets",
			assets: nil,
		},
		{
			name: "nothing installable",
			assets: []models.Asset{
				{Name: "source.zip", DownloadURL: "https://example.com/source.zip"},
				{Name: "apk-notes.md", DownloadURL: "https://example.com/apk-notes.md"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := &MockReleaseFeed{}
			r := NewReleaseResolver(feed, models.ResolveModeAssets, ".APK")

			got, err := r.ResolveArtifact(ctx, models.ReleaseInfo{TagName: "v2.0.0", Assets: tt.assets})
			if !tt.wantFound {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainErrors.ErrArtifactNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got)
			feed.AssertNotCalled(t, "ListContents", mock.Anything)
		})
	}
}

func TestReleaseResolver_ResolveArtifact_Contents(t *testing.T) {
	ctx := context.Background()

	t.Run("uses repository listing instead of release assets", func(t *testing.T) {
		feed := &MockReleaseFeed{}
		feed.On("ListContents", mock.Anything).Return([]models.Asset{
			{Name: "README.md", DownloadURL: "https://raw.example.com/README.md"},
			{Name: "app", DownloadURL: ""},
			{Name: "IVIDS.apk", DownloadURL: "https://raw.example.com/IVIDS.apk"},
		}, nil)

		r := NewReleaseResolver(feed, models.ResolveModeContents, ".apk")
		release := models.ReleaseInfo{
			TagName: "v2.0.0",
			Assets:  []models.Asset{{Name: "ignored.apk", DownloadURL: "https://example.com/ignored.apk"}},
		}

		got, err := r.ResolveArtifact(ctx, release)
		require.NoError(t, err)
		assert.Equal(t, "https://raw.example.com/IVIDS.apk", got)
		feed.AssertExpectations(t)
	})

	t.Run("listing failure is propagated", func(t *testing.T) {
		feed := &MockReleaseFeed{}
		feed.On("ListContents", mock.Anything).Return(nil, domainErrors.ErrFeedFetchFailed)

		r := NewReleaseResolver(feed, models.ResolveModeContents, ".apk")
		_, err := r.ResolveArtifact(ctx, models.ReleaseInfo{TagName: "v2.0.0"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrFeedFetchFailed))
		assert.False(t, domainErrors.IsNoUpdate(err))
	})

	t.Run("empty listing is not found", func(t *testing.T) {
		feed := &MockReleaseFeed{}
		feed.On("ListContents", mock.Anything).Return([]models.Asset{}, nil)

		r := NewReleaseResolver(feed, models.ResolveModeContents, ".apk")
		_, err := r.ResolveArtifact(ctx, models.ReleaseInfo{TagName: "v2.0.0"})
		assert.True(t, errors.Is(err, domainErrors.ErrArtifactNotFound))
	})
}

func TestReleaseResolver_UnknownMode(t *testing.T) {
	r := NewReleaseResolver(&MockReleaseFeed{}, models.ResolveMode("both"), ".apk")
	_, err := r.ResolveArtifact(context.Background(), models.ReleaseInfo{})
	assert.True(t, errors.Is(err, domainErrors.ErrConfigInvalid))
}

func TestReleaseResolver_Mode(t *testing.T) {
	assert.Equal(t, models.ResolveModeContents, NewReleaseResolver(&MockReleaseFeed{}, models.ResolveModeContents, ".apk").Mode())
	assert.Equal(t, models.ResolveModeAssets, NewReleaseResolver(&MockReleaseFeed{}, models.ResolveModeAssets, ".apk").Mode())
}
