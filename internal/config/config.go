package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"swdeploy/internal/components/telemetry"
	"swdeploy/internal/configutil"
	"swdeploy/internal/credentials"
	"swdeploy/internal/scrapers/scraperwiki"
)

const DefaultName = "swdeploy.json5"

type Sunlight struct {
	ApiKey     string `json:"api_key"`
	BioguideId string `json:"bioguide_id"`
}

type Config struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`

	// relative paths are resolved against the directory of the config file
	CookieFile string `json:"cookie_file"`
	DumpDir    string `json:"dump_dir"`

	CloudflareBypass *bool `json:"cloudflare_bypass"`
	// negative disables rate limiting
	RequestsPerSecond float64 `json:"requests_per_second"`

	Sunlight  Sunlight          `json:"sunlight"`
	Telemetry *telemetry.Config `json:"telemetry"`
}

func (c Config) Credentials() credentials.Credentials {
	return credentials.Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

// Load reads the config at path, or when path is empty the nearest
// swdeploy.json5 above the working directory. Having no config file at all
// is fine when path is empty, the defaults are used.
func Load(path string) (Config, error) {
	var cfg Config
	var dir string

	if path != "" {
		var err error
		cfg, err = configutil.ReadConfig[Config](path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		dir = filepath.Dir(path)
	} else {
		found, foundPath, err := configutil.ReadRecursively[Config](DefaultName)
		switch {
		case errors.Is(err, os.ErrNotExist):
			dir, err = os.Getwd()
			if err != nil {
				return Config{}, err
			}
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", foundPath, err)
		default:
			cfg = found
			dir = filepath.Dir(foundPath)
		}
	}

	cfg.applyDefaults(dir)
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (c *Config) applyDefaults(dir string) {
	if c.BaseUrl == "" {
		c.BaseUrl = scraperwiki.DefaultBaseUrl
	}
	if c.CookieFile == "" {
		c.CookieFile = "cookies.json"
	}
	c.CookieFile = resolve(dir, c.CookieFile)
	c.DumpDir = resolve(dir, c.DumpDir)
	if c.CloudflareBypass == nil {
		bypass := true
		c.CloudflareBypass = &bypass
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 2
	}
}
