package adblock

import (
	"net/url"
	"os"
	"strings"
	"sync"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"gopkg.in/yaml.v3"
)

// HostSet is an immutable blocklist. It is safe for concurrent use.
type HostSet struct {
	entries []string
}

// blocklistFile is the YAML layout accepted by Load.
type blocklistFile struct {
	Hosts []string `yaml:"hosts"`
}

var (
	defaultOnce sync.Once
	defaultSet  *HostSet
)

// NewHostSet builds a set from entries. Blank entries are dropped since an
// empty token is a substring of every host; duplicates are dropped too.
func NewHostSet(entries ...string) *HostSet {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return &HostSet{entries: out}
}

// Default returns the process-wide set built from DefaultHosts.
func Default() *HostSet {
	defaultOnce.Do(func() {
		defaultSet = NewHostSet(DefaultHosts...)
	})
	return defaultSet
}

// Load returns DefaultHosts merged with the hosts listed in the YAML file at
// path. An empty path yields the defaults alone.
func Load(path string) (*HostSet, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domainErrors.ErrBlocklistLoad.WithError(err).WithContext("path", path)
	}

	var file blocklistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domainErrors.ErrBlocklistLoad.WithError(err).WithContext("path", path)
	}

	entries := make([]string, 0, len(DefaultHosts)+len(file.Hosts))
	entries = append(entries, DefaultHosts...)
	entries = append(entries, file.Hosts...)
	return NewHostSet(entries...), nil
}

// IsBlocked reports whether any entry is a substring of host. An empty host
// is never blocked.
func (s *HostSet) IsBlocked(host string) bool {
	if s == nil || host == "" {
		return false
	}
	for _, e := range s.entries {
		if strings.Contains(host, e) {
			return true
		}
	}
	return false
}

// IsBlockedURL applies IsBlocked to the host part of rawURL. Unparseable
// URLs are not blocked.
func (s *HostSet) IsBlockedURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return s.IsBlocked(u.Hostname())
}

// Len returns the number of distinct entries.
func (s *HostSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
