package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(releases *MockReleaseService, repos *MockRepoService) *FeedClient {
	return NewFeedClientWithServices(releases, repos, "test-owner", "test-repo")
}

func TestFeedClient_ListReleases(t *testing.T) {
	t.Run("should map releases and assets in feed order", func(t *testing.T) {
		mockReleases := &MockReleaseService{}
		client := newTestClient(mockReleases, &MockRepoService{})

		mockReleases.On("ListReleases", mock.Anything, "test-owner", "test-repo", &github.ListOptions{PerPage: releasesPerPage}).
			Return([]*github.RepositoryRelease{
				{
					TagName: github.Ptr("v0.4.0"),
					Assets: []*github.ReleaseAsset{
						{Name: github.Ptr("notes.txt"), BrowserDownloadURL: github.Ptr("https://example.com/notes.txt")},
						{Name: github.Ptr("IVIDS.apk"), BrowserDownloadURL: github.Ptr("https://example.com/IVIDS.apk")},
					},
				},
				{TagName: github.Ptr("v0.5.0-beta")},
			}, &github.Response{}, nil).Once()

		releases, err := client.ListReleases(context.Background())

		require.NoError(t, err)
		require.Len(t, releases, 2)
		assert.Equal(t, "v0.4.0", releases[0].TagName)
		assert.Equal(t, []models.Asset{
			{Name: "notes.txt", DownloadURL: "https://example.com/notes.txt"},
			{Name: "IVIDS.apk", DownloadURL: "https://example.com/IVIDS.apk"},
		}, releases[0].Assets)
		assert.Equal(t, "v0.5.0-beta", releases[1].TagName)
		assert.Empty(t, releases[1].Assets)
		mockReleases.AssertExpectations(t)
	})

	t.Run("should return empty feed without error", func(t *testing.T) {
		mockReleases := &MockReleaseService{}
		client := newTestClient(mockReleases, &MockRepoService{})

		mockReleases.On("ListReleases", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return([]*github.RepositoryRelease{}, &github.Response{}, nil).Once()

		releases, err := client.ListReleases(context.Background())

		require.NoError(t, err)
		assert.Empty(t, releases)
	})

	t.Run("should classify http failures as fetch errors", func(t *testing.T) {
		mockReleases := &MockReleaseService{}
		client := newTestClient(mockReleases, &MockRepoService{})

		resp := &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}
		mockReleases.On("ListReleases", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, resp, errors.New("404 Not Found")).Once()

		_, err := client.ListReleases(context.Background())

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrFeedFetchFailed))
		var appErr *domainErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusNotFound, appErr.Context["status_code"])
		assert.NotEmpty(t, appErr.Suggestion)
	})
}

func TestFeedClient_ListContents(t *testing.T) {
	t.Run("should list root entries", func(t *testing.T) {
		mockRepos := &MockRepoService{}
		client := newTestClient(&MockReleaseService{}, mockRepos)

		mockRepos.On("GetContents", mock.Anything, "test-owner", "test-repo", "", (*github.RepositoryContentGetOptions)(nil)).
			Return(nil, []*github.RepositoryContent{
				{Name: github.Ptr("README.md"), DownloadURL: github.Ptr("https://raw.example.com/README.md")},
				{Name: github.Ptr("IVIDS.APK"), DownloadURL: github.Ptr("https://raw.example.com/IVIDS.APK")},
			}, &github.Response{}, nil).Once()

		entries, err := client.ListContents(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []models.Asset{
			{Name: "README.md", DownloadURL: "https://raw.example.com/README.md"},
			{Name: "IVIDS.APK", DownloadURL: "https://raw.example.com/IVIDS.APK"},
		}, entries)
		mockRepos.AssertExpectations(t)
	})

	t.Run("should reject a single file answer", func(t *testing.T) {
		mockRepos := &MockRepoService{}
		client := newTestClient(&MockReleaseService{}, mockRepos)

		mockRepos.On("GetContents", mock.Anything, "test-owner", "test-repo", "", mock.Anything).
			Return(&github.RepositoryContent{Name: github.Ptr("IVIDS.apk")}, nil, &github.Response{}, nil).Once()

		_, err := client.ListContents(context.Background())

		assert.True(t, errors.Is(err, domainErrors.ErrFeedParseFailed))
	})
}

func TestFeedClient_AgainstHTTPServer(t *testing.T) {
	var gotUA string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/kenjikellens/IVIDS/releases", func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"tag_name":"v0.4.0","assets":[{"name":"IVIDS.apk","browser_download_url":"https://dl.example.com/IVIDS.apk"}]}]`))
	})
	mux.HandleFunc("/repos/kenjikellens/broken/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"not a list"}`))
	})
	mux.HandleFunc("/repos/kenjikellens/IVIDS/contents/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"type":"file","name":"IVIDS.apk","download_url":"https://raw.example.com/IVIDS.apk"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	t.Run("decodes the release feed", func(t *testing.T) {
		client, err := NewFeedClient("kenjikellens", "IVIDS", "", WithBaseURL(server.URL), WithUserAgent("IVIDS-Android-App"))
		require.NoError(t, err)

		releases, err := client.ListReleases(context.Background())

		require.NoError(t, err)
		require.Len(t, releases, 1)
		assert.Equal(t, "v0.4.0", releases[0].TagName)
		assert.Equal(t, "https://dl.example.com/IVIDS.apk", releases[0].Assets[0].DownloadURL)
		assert.Equal(t, "IVIDS-Android-App", gotUA)
	})

	t.Run("decodes the repository listing", func(t *testing.T) {
		client, err := NewFeedClient("kenjikellens", "IVIDS", "", WithBaseURL(server.URL))
		require.NoError(t, err)

		entries, err := client.ListContents(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []models.Asset{{Name: "IVIDS.apk", DownloadURL: "https://raw.example.com/IVIDS.apk"}}, entries)
	})

	t.Run("classifies malformed json as parse failure", func(t *testing.T) {
		client, err := NewFeedClient("kenjikellens", "broken", "", WithBaseURL(server.URL))
		require.NoError(t, err)

		_, err = client.ListReleases(context.Background())

		assert.True(t, errors.Is(err, domainErrors.ErrFeedParseFailed))
	})

	t.Run("classifies 404 as fetch failure", func(t *testing.T) {
		client, err := NewFeedClient("kenjikellens", "missing", "", WithBaseURL(server.URL))
		require.NoError(t, err)

		_, err = client.ListReleases(context.Background())

		assert.True(t, errors.Is(err, domainErrors.ErrFeedFetchFailed))
	})

	t.Run("sends bearer token when configured", func(t *testing.T) {
		var auth string
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer tokenServer.Close()

		client, err := NewFeedClient("o", "r", "secret", WithBaseURL(tokenServer.URL))
		require.NoError(t, err)

		_, err = client.ListReleases(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", auth)
	})
}
