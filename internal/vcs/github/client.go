package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.ReleaseFeed = (*FeedClient)(nil)

const releasesPerPage = 30

type ReleasesService interface {
	ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error)
}

type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// FeedClient reads the release feed and the repository listing of one GitHub repository.
type FeedClient struct {
	releaseService ReleasesService
	repoService    RepositoriesService
	owner          string
	repo           string
}

type clientOptions struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	transport http.RoundTripper
}

// Option customises the HTTP side of NewFeedClient.
type Option func(*clientOptions)

// WithBaseURL points the client at a GitHub-compatible API root.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// WithTimeout bounds every feed request, connection to last body byte.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func NewFeedClient(owner, repo, token string, opts ...Option) (*FeedClient, error) {
	o := clientOptions{timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{Transport: o.transport}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base := o.transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient.Transport = &oauth2.Transport{Source: ts, Base: base}
	}
	httpClient.Timeout = o.timeout

	client := github.NewClient(httpClient)
	if o.userAgent != "" {
		client.UserAgent = o.userAgent
	}
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api base url %q: %w", o.baseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	return &FeedClient{
		releaseService: client.Repositories,
		repoService:    client.Repositories,
		owner:          owner,
		repo:           repo,
	}, nil
}

func NewFeedClientWithServices(releaseService ReleasesService, repoService RepositoriesService, owner, repo string) *FeedClient {
	return &FeedClient{
		releaseService: releaseService,
		repoService:    repoService,
		owner:          owner,
		repo:           repo,
	}
}

func (c *FeedClient) ListReleases(ctx context.Context) ([]models.ReleaseInfo, error) {
	releases, resp, err := c.releaseService.ListReleases(ctx, c.owner, c.repo, &github.ListOptions{PerPage: releasesPerPage})
	if err != nil {
		return nil, c.wrapError("list releases", resp, err)
	}

	out := make([]models.ReleaseInfo, 0, len(releases))
	for _, r := range releases {
		if r == nil {
			continue
		}
		info := models.ReleaseInfo{TagName: r.GetTagName()}
		for _, a := range r.Assets {
			info.Assets = append(info.Assets, models.Asset{
				Name:        a.GetName(),
				DownloadURL: a.GetBrowserDownloadURL(),
			})
		}
		out = append(out, info)
	}

	logger.Debug(ctx, "release feed fetched", "repo", c.owner+"/"+c.repo, "count", len(out))
	return out, nil
}

func (c *FeedClient) ListContents(ctx context.Context) ([]models.Asset, error) {
	file, dir, resp, err := c.repoService.GetContents(ctx, c.owner, c.repo, "", nil)
	if err != nil {
		return nil, c.wrapError("list contents", resp, err)
	}
	if file != nil {
		return nil, domainErrors.ErrFeedParseFailed.
			WithError(errors.New("expected a directory listing, got a single file")).
			WithContext("operation", "list contents")
	}

	out := make([]models.Asset, 0, len(dir))
	for _, entry := range dir {
		if entry == nil {
			continue
		}
		out = append(out, models.Asset{
			Name:        entry.GetName(),
			DownloadURL: entry.GetDownloadURL(),
		})
	}

	logger.Debug(ctx, "repository listing fetched", "repo", c.owner+"/"+c.repo, "count", len(out))
	return out, nil
}

func (c *FeedClient) wrapError(operation string, resp *github.Response, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domainErrors.ErrFeedParseFailed.
			WithError(err).
			WithContext("operation", operation)
	}

	appErr := domainErrors.ErrFeedFetchFailed.
		WithError(err).
		WithContext("operation", operation).
		WithContext("repo", fmt.Sprintf("%s/%s", c.owner, c.repo))

	if resp != nil {
		appErr = appErr.WithContext("status_code", resp.StatusCode)
		switch {
		case resp.StatusCode == http.StatusNotFound:
			appErr = appErr.WithSuggestion("Check update.owner and update.repo in your configuration")
		case resp.StatusCode == http.StatusTooManyRequests,
			resp.StatusCode == http.StatusForbidden && resp.Rate.Remaining == 0:
			appErr = appErr.WithSuggestion("GitHub rate limit reached; set update.token or wait before retrying")
		}
	}
	return appErr
}
