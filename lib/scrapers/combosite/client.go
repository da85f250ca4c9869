package combosite

import (
	"combo-scraper/lib/restyutil"
	"combo-scraper/lib/telemetry"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseUrl   = "https://tekken8combo.kagewebsite.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
	DefaultPageLimit = 5
	DefaultPageDelay = 500 * time.Millisecond

	// IconDirName is the directory under the output directory icons are
	// cached in.
	IconDirName = "inputs"
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	Icons   *IconCache

	// PageLimit caps the number of listing pages per character, 0 means
	// no cap.
	PageLimit int
	// PageDelay is waited before every listing page after the first.
	PageDelay time.Duration
}

type ClientOptions struct {
	BaseUrl   string
	OutputDir string
	UserAgent string
	Timeout   time.Duration
	PageLimit int
	PageDelay time.Duration
	// CloudflareBypass wraps the transport with browser-like TLS and
	// headers.
	CloudflareBypass bool
	// HttpDump receives every exchange when debug logging is on, it can
	// be nil.
	HttpDump restyutil.InstrumentOutput
}

func (o *ClientOptions) defaults() {
	if o.BaseUrl == "" {
		o.BaseUrl = DefaultBaseUrl
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
}

func NewClient(opts ClientOptions) (*Client, error) {
	opts.defaults()
	if opts.PageLimit < 0 {
		return nil, fmt.Errorf("page limit must not be negative, got %d", opts.PageLimit)
	}
	if opts.PageDelay < 0 {
		return nil, fmt.Errorf("page delay must not be negative, got %s", opts.PageDelay)
	}

	baseUrl, err := url.Parse(strings.TrimSuffix(opts.BaseUrl, "/"))
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute, got %q", opts.BaseUrl)
	}

	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/combosite/http")
	restyutil.InstrumentClient(client, opts.HttpDump)

	c := &Client{
		BaseUrl:   baseUrl,
		Http:      client,
		PageLimit: opts.PageLimit,
		PageDelay: opts.PageDelay,
	}
	c.Icons = NewIconCache(client, baseUrl, filepath.Join(opts.OutputDir, IconDirName))
	return c, nil
}

// resolve turns a possibly base-relative link into an absolute url.
func (c *Client) resolve(link string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", err
	}
	return c.BaseUrl.ResolveReference(ref).String(), nil
}

// get fetches link, anything but a 2xx response is a *FetchError.
func (c *Client) get(ctx context.Context, link string) (*resty.Response, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, &FetchError{URL: link, Err: err}
	}
	if !res.IsSuccess() {
		return res, &FetchError{URL: link, Status: res.StatusCode()}
	}
	return res, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
