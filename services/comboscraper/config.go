package comboscraper

import (
	"combo-scraper/lib/configutil"
	"combo-scraper/lib/restyutil"
	"combo-scraper/lib/scrapers/combosite"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

const ConfigFile = "config.json5"

type Config struct {
	BaseUrl string `json:"base_url"`
	// OutputDir receives combos.json and the icon cache.
	OutputDir string `json:"output_dir"`
	// CharacterLimit caps how many discovered characters are scraped, 0
	// means all of them.
	CharacterLimit int `json:"character_limit"`
	// PageLimit caps listing pages per character, 0 means no cap.
	PageLimit int `json:"page_limit"`
	PageDelay string `json:"page_delay"`
	Timeout   string `json:"timeout"`
	UserAgent string `json:"user_agent"`

	CloudflareBypass bool `json:"cloudflare_bypass"`
	// Characters restricts the run to the named characters.
	Characters []string `json:"characters"`

	PortraitBaseUrl string `json:"portrait_base_url"`
	PortraitDir     string `json:"portrait_dir"`

	// SqlitePath enables the sqlite export when set.
	SqlitePath string `json:"sqlite_path"`
}

func DefaultConfig() Config {
	return Config{
		BaseUrl:          combosite.DefaultBaseUrl,
		OutputDir:        filepath.Join("src", "dll", "ui", "assets"),
		CharacterLimit:   3,
		PageLimit:        combosite.DefaultPageLimit,
		PageDelay:        combosite.DefaultPageDelay.String(),
		Timeout:          combosite.DefaultTimeout.String(),
		UserAgent:        combosite.DefaultUserAgent,
		CloudflareBypass: true,
		PortraitDir:      filepath.Join("landing-page", "assets", "characters"),
	}
}

// ReadConfig reads path (and its .local override) on top of the
// defaults. Missing files leave the defaults in place.
func ReadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadWithDefaults(path, DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseUrl)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute url, got '%s'", c.BaseUrl)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.CharacterLimit < 0 {
		return fmt.Errorf("character_limit must not be negative, got %d", c.CharacterLimit)
	}
	if c.PageLimit < 0 {
		return fmt.Errorf("page_limit must not be negative, got %d", c.PageLimit)
	}

	delay, err := parseDuration("page_delay", c.PageDelay)
	if err != nil {
		return err
	}
	if delay < 0 {
		return fmt.Errorf("page_delay must not be negative, got %s", delay)
	}
	timeout, err := parseDuration("timeout", c.Timeout)
	if err != nil {
		return err
	}
	if c.Timeout != "" && timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	return nil
}

// PortraitUrl is the directory portraits are fetched from, it defaults
// to the site's character image directory.
func (c Config) PortraitUrl() string {
	if c.PortraitBaseUrl != "" {
		return c.PortraitBaseUrl
	}
	return strings.TrimSuffix(c.BaseUrl, "/") + "/tpl/img/char"
}

func (c Config) ClientOptions(dump restyutil.InstrumentOutput) (combosite.ClientOptions, error) {
	err := c.Validate()
	if err != nil {
		return combosite.ClientOptions{}, err
	}
	delay, _ := parseDuration("page_delay", c.PageDelay)
	timeout, _ := parseDuration("timeout", c.Timeout)

	return combosite.ClientOptions{
		BaseUrl:          c.BaseUrl,
		OutputDir:        c.OutputDir,
		UserAgent:        c.UserAgent,
		Timeout:          timeout,
		PageLimit:        c.PageLimit,
		PageDelay:        delay,
		CloudflareBypass: c.CloudflareBypass,
		HttpDump:         dump,
	}, nil
}
