package adblock

import (
	"io"
	"net/http"
	"strings"

	"github.com/kenjikellens/ivids-core/internal/logger"
)

// Transport is an http.RoundTripper that answers requests to blocked hosts
// with an empty text/plain body instead of sending them.
type Transport struct {
	Hosts *HostSet
	// Base is used for allowed requests. nil means http.DefaultTransport.
	Base http.RoundTripper
}

// NewTransport wraps base so that requests to hosts in set never leave the process.
func NewTransport(set *HostSet, base http.RoundTripper) *Transport {
	return &Transport{Hosts: set, Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Hosts.IsBlocked(req.URL.Hostname()) {
		logger.Debug(req.Context(), "blocking ad request", "url", req.URL.String())
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return emptyResponse(req), nil
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func emptyResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:          io.NopCloser(strings.NewReader("")),
		ContentLength: 0,
		Request:       req,
	}
}
