package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/kenjikellens/ivids-core/internal/version"
)

type (
	Config struct {
		Language       string        `toml:"language"`
		CurrentVersion string        `toml:"current_version,omitempty"`
		Update         UpdateConfig  `toml:"update"`
		AdBlock        AdBlockConfig `toml:"adblock"`

		PathFile string `toml:"-"`
	}

	UpdateConfig struct {
		Owner             string             `toml:"owner"`
		Repo              string             `toml:"repo"`
		APIBaseURL        string             `toml:"api_base_url,omitempty"`
		Token             string             `toml:"token,omitempty"`
		ResolveMode       models.ResolveMode `toml:"resolve_mode"`
		ArtifactExtension string             `toml:"artifact_extension"`
		FallbackURL       string             `toml:"fallback_url"`
		CacheDir          string             `toml:"cache_dir,omitempty"`
		ArtifactName      string             `toml:"artifact_name"`
		UserAgent         string             `toml:"user_agent"`
		CheckTimeout      int                `toml:"check_timeout_seconds"`
		ConnectTimeout    int                `toml:"connect_timeout_seconds"`
		ReadTimeout       int                `toml:"read_timeout_seconds"`
		BusyPolicy        models.BusyPolicy  `toml:"busy_policy"`
		ProbeAddress      string             `toml:"probe_address"`
		InstallerCommand  []string           `toml:"installer_command"`
	}

	AdBlockConfig struct {
		BlocklistFile string `toml:"blocklist_file,omitempty"`
	}
)

const (
	configDirName  = ".ivids"
	configFileName = "config.toml"

	defaultLang              = LangEN
	defaultOwner             = "kenjikellens"
	defaultRepo              = "IVIDS"
	defaultArtifactExtension = ".apk"
	defaultFallbackURL       = "https://github.com/kenjikellens/IVIDS/raw/main/IVIDS.apk"
	defaultArtifactName      = "IVIDS-update.apk"
	defaultCheckTimeout      = 30
	defaultConnectTimeout    = 15
	defaultReadTimeout       = 30
	defaultProbeAddress      = "api.github.com:443"

	// ArtifactPlaceholder is replaced by the downloaded file path in InstallerCommand.
	ArtifactPlaceholder = "{artifact}"

	// DisableUpdateCheckEnv turns every update check into a no-op when set.
	DisableUpdateCheckEnv = "IVIDS_DISABLE_UPDATE_CHECK"
)

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Language: defaultLang,
		Update: UpdateConfig{
			Owner:             defaultOwner,
			Repo:              defaultRepo,
			ResolveMode:       models.ResolveModeAssets,
			ArtifactExtension: defaultArtifactExtension,
			FallbackURL:       defaultFallbackURL,
			ArtifactName:      defaultArtifactName,
			UserAgent:         version.UserAgent,
			CheckTimeout:      defaultCheckTimeout,
			ConnectTimeout:    defaultConnectTimeout,
			ReadTimeout:       defaultReadTimeout,
			BusyPolicy:        models.BusyPolicyQueue,
			ProbeAddress:      defaultProbeAddress,
			InstallerCommand:  []string{"adb", "install", "-r", ArtifactPlaceholder},
		},
	}
}

// LoadConfig reads the configuration from path. A directory is resolved to
// <dir>/.ivids/config.toml; a missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	configPath := path
	if filepath.Ext(path) != ".toml" {
		configPath = filepath.Join(path, configDirName, configFileName)
	}

	if _, err := os.Stat(configPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error checking config file: %w", err)
		}
		return createDefaultConfig(configPath)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	cfg.PathFile = configPath

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func createDefaultConfig(path string) (*Config, error) {
	cfg := Default()
	cfg.PathFile = path

	if err := SaveConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig validates cfg and writes it to cfg.PathFile.
func SaveConfig(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.Create(cfg.PathFile)
	if err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	invalid := func(field, reason string) error {
		return domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("%s %s", field, reason)).
			WithContext("field", field)
	}

	if cfg.Language == "" {
		return invalid("language", "cannot be empty")
	}

	u := cfg.Update
	if u.Owner == "" || u.Repo == "" {
		return invalid("update.owner/update.repo", "must both be set")
	}
	if !u.ResolveMode.IsValid() {
		return invalid("update.resolve_mode", fmt.Sprintf("must be %q or %q", models.ResolveModeAssets, models.ResolveModeContents))
	}
	if !u.BusyPolicy.IsValid() {
		return invalid("update.busy_policy", fmt.Sprintf("must be %q or %q", models.BusyPolicyQueue, models.BusyPolicyReject))
	}
	if !strings.HasPrefix(u.ArtifactExtension, ".") {
		return invalid("update.artifact_extension", "must start with a dot")
	}
	if u.ArtifactName == "" || filepath.Base(u.ArtifactName) != u.ArtifactName {
		return invalid("update.artifact_name", "must be a plain file name")
	}
	if u.CheckTimeout <= 0 || u.ConnectTimeout <= 0 || u.ReadTimeout <= 0 {
		return invalid("update timeouts", "must be greater than 0")
	}
	if u.UserAgent == "" {
		return invalid("update.user_agent", "cannot be empty")
	}
	return nil
}

// ArtifactPath returns where downloads are stored: <cache_dir>/updates/<artifact_name>.
// Without cache_dir the user cache directory is used.
func (c *Config) ArtifactPath() (string, error) {
	dir := c.Update.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("error resolving cache directory: %w", err)
		}
		dir = filepath.Join(base, "ivids")
	}
	return filepath.Join(dir, "updates", c.Update.ArtifactName), nil
}

// EffectiveVersion returns the configured current version, or the build version.
func (c *Config) EffectiveVersion() string {
	if c.CurrentVersion != "" {
		return c.CurrentVersion
	}
	return version.Version
}

// UpdateChecksDisabled reports whether DisableUpdateCheckEnv is set.
func UpdateChecksDisabled() bool {
	return os.Getenv(DisableUpdateCheckEnv) != ""
}

func (u UpdateConfig) CheckTimeoutDuration() time.Duration {
	return time.Duration(u.CheckTimeout) * time.Second
}

func (u UpdateConfig) ConnectTimeoutDuration() time.Duration {
	return time.Duration(u.ConnectTimeout) * time.Second
}

func (u UpdateConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(u.ReadTimeout) * time.Second
}

// EffectiveProbeAddress returns the host:port the reachability probe dials.
// The stock GitHub address follows api_base_url when a self-hosted feed is
// configured; any other value, including empty, is used as is.
func (u UpdateConfig) EffectiveProbeAddress() string {
	if u.ProbeAddress != defaultProbeAddress || u.APIBaseURL == "" {
		return u.ProbeAddress
	}
	parsed, err := url.Parse(u.APIBaseURL)
	if err != nil || parsed.Hostname() == "" {
		return u.ProbeAddress
	}
	port := parsed.Port()
	if port == "" {
		port = "443"
		if parsed.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(parsed.Hostname(), port)
}
