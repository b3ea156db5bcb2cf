package di

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kenjikellens/ivids-core/internal/config"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/i18n"
	"github.com/kenjikellens/ivids-core/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	cfg := config.Default()
	cfg.Update.CacheDir = t.TempDir()
	cfg.Update.ProbeAddress = ""

	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return NewContainer(cfg, trans)
}

func TestContainer_GetHostSet(t *testing.T) {
	t.Run("built-in list", func(t *testing.T) {
		c := newTestContainer(t)

		set, err := c.GetHostSet()
		require.NoError(t, err)
		assert.True(t, set.IsBlocked("ad.doubleclick.net"))

		again, err := c.GetHostSet()
		require.NoError(t, err)
		assert.Same(t, set, again)
	})

	t.Run("merges blocklist file", func(t *testing.T) {
		c := newTestContainer(t)
		file := filepath.Join(t.TempDir(), "blocklist.yaml")
		require.NoError(t, os.WriteFile(file, []byte("hosts:\n  - tracker.example\n"), 0644))
		c.Config().AdBlock.BlocklistFile = file

		set, err := c.GetHostSet()
		require.NoError(t, err)
		assert.True(t, set.IsBlocked("cdn.tracker.example"))
	})

	t.Run("missing blocklist file", func(t *testing.T) {
		c := newTestContainer(t)
		c.Config().AdBlock.BlocklistFile = filepath.Join(t.TempDir(), "nope.yaml")

		_, err := c.GetHostSet()
		assert.True(t, errors.Is(err, domainErrors.ErrBlocklistLoad))
	})
}

func TestContainer_GetReleaseFeed(t *testing.T) {
	c := newTestContainer(t)

	feed, err := c.GetReleaseFeed()
	require.NoError(t, err)
	assert.NotNil(t, feed)

	mockFeed := &services.MockReleaseFeed{}
	c.SetReleaseFeed(mockFeed)
	got, err := c.GetReleaseFeed()
	require.NoError(t, err)
	assert.Same(t, mockFeed, got)
}

func TestContainer_GetUpdater(t *testing.T) {
	t.Run("wires the configured stack", func(t *testing.T) {
		c := newTestContainer(t)
		c.SetReleaseFeed(&services.MockReleaseFeed{})

		u, err := c.GetUpdater(context.Background(), services.NewChannelObserver(8), services.InlineDispatcher)
		require.NoError(t, err)
		defer u.Close()

		s := u.Session()
		assert.Equal(t, c.Config().EffectiveVersion(), s.CurrentVersion)
		assert.Equal(t, filepath.Join(c.Config().Update.CacheDir, "updates", "IVIDS-update.apk"), s.ArtifactPath)
	})

	t.Run("empty installer command", func(t *testing.T) {
		c := newTestContainer(t)
		c.SetReleaseFeed(&services.MockReleaseFeed{})
		c.Config().Update.InstallerCommand = nil

		_, err := c.GetUpdater(context.Background(), nil, nil)
		assert.True(t, errors.Is(err, domainErrors.ErrConfigInvalid))
	})
}
