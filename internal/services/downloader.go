package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/models"
)

const (
	// DefaultMaxRedirects is the number of redirect hops followed before giving up.
	DefaultMaxRedirects = 5

	downloadChunkSize     = 8192
	defaultConnectTimeout = 15 * time.Second
	defaultReadTimeout    = 30 * time.Second
)

// ProgressFunc receives a DownloadProgress after every chunk when the total
// length is known.
type ProgressFunc func(models.DownloadProgress)

// Downloader fetches an artifact to a local path, following redirects by hand.
type Downloader struct {
	client       *http.Client
	userAgent    string
	readTimeout  time.Duration
	maxRedirects int
}

type DownloaderOption func(*Downloader)

// WithMaxRedirects overrides DefaultMaxRedirects.
func WithMaxRedirects(n int) DownloaderOption {
	return func(d *Downloader) { d.maxRedirects = n }
}

// WithHTTPTransport replaces the transport built from the connect timeout.
func WithHTTPTransport(rt http.RoundTripper) DownloaderOption {
	return func(d *Downloader) { d.client.Transport = rt }
}

func NewDownloader(userAgent string, connectTimeout, readTimeout time.Duration, opts ...DownloaderOption) *Downloader {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = readTimeout

	d := &Downloader{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:    userAgent,
		readTimeout:  readTimeout,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches rawURL into dest and returns dest. An existing file at dest
// is replaced. On failure the partial file is removed.
func (d *Downloader) Download(ctx context.Context, rawURL, dest string, onProgress ProgressFunc) (string, error) {
	current := rawURL
	hops := 0

	for {
		reqCtx, cancel := context.WithCancel(ctx)
		resp, err := d.get(reqCtx, current)
		if err != nil {
			cancel()
			return "", domainErrors.ErrDownloadFailed.WithError(err).WithContext("url", current)
		}

		logger.Debug(ctx, "download response", "url", current, "status_code", resp.StatusCode)

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			location := resp.Header.Get("Location")
			_ = resp.Body.Close()
			cancel()

			if location == "" {
				return "", domainErrors.ErrRedirectMissingLocation.
					WithContext("url", current).
					WithContext("status_code", resp.StatusCode)
			}

			hops++
			if hops > d.maxRedirects {
				return "", domainErrors.ErrTooManyRedirects.
					WithError(fmt.Errorf("more than %d redirects", d.maxRedirects)).
					WithContext("url", rawURL)
			}

			next, err := resp.Request.URL.Parse(location)
			if err != nil {
				return "", domainErrors.ErrDownloadFailed.WithError(err).WithContext("location", location)
			}
			logger.Debug(ctx, "following redirect", "location", next.String(), "hops", hops)
			current = next.String()

		case http.StatusOK:
			path, err := d.save(ctx, resp, cancel, dest, onProgress)
			if err != nil {
				return "", domainErrors.ErrDownloadFailed.WithError(err).WithContext("url", current)
			}
			return path, nil

		default:
			_ = resp.Body.Close()
			cancel()
			return "", domainErrors.ErrDownloadFailed.
				WithContext("url", current).
				WithContext("status_code", resp.StatusCode)
		}
	}
}

func (d *Downloader) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)
	// keep Content-Length meaningful for progress
	req.Header.Set("Accept-Encoding", "identity")
	return d.client.Do(req)
}

func (d *Downloader) save(ctx context.Context, resp *http.Response, cancel context.CancelFunc, dest string, onProgress ProgressFunc) (_ string, err error) {
	body := newIdleTimeoutReader(resp.Body, d.readTimeout, cancel)
	defer func() {
		_ = body.Close()
		cancel()
	}()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}
	if _, statErr := os.Stat(dest); statErr == nil {
		if err := os.Remove(dest); err != nil {
			return "", fmt.Errorf("remove stale artifact: %w", err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(dest)
		}
	}()

	total := resp.ContentLength
	var done int64
	buf := make([]byte, downloadChunkSize)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				return "", fmt.Errorf("write %s: %w", dest, err)
			}
			done += int64(n)
			if total > 0 && onProgress != nil {
				onProgress(models.DownloadProgress{
					BytesDone:  done,
					BytesTotal: total,
					Percent:    percentOf(done, total),
				})
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("read body: %w", readErr)
		}
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dest, err)
	}

	logger.Info(ctx, "download complete", "path", dest, "bytes", done)
	return dest, nil
}

func percentOf(done, total int64) int {
	p := done * 100 / total
	if p > 100 {
		p = 100
	}
	return int(p)
}

// idleTimeoutReader cancels the request when a single Read blocks longer than timeout.
type idleTimeoutReader struct {
	rc      io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
}

func newIdleTimeoutReader(rc io.ReadCloser, timeout time.Duration, cancel context.CancelFunc) *idleTimeoutReader {
	t := time.AfterFunc(timeout, cancel)
	t.Stop()
	return &idleTimeoutReader{rc: rc, timeout: timeout, timer: t}
}

func (r *idleTimeoutReader) Read(p []byte) (int, error) {
	r.timer.Reset(r.timeout)
	n, err := r.rc.Read(p)
	r.timer.Stop()
	return n, err
}

func (r *idleTimeoutReader) Close() error {
	r.timer.Stop()
	return r.rc.Close()
}
