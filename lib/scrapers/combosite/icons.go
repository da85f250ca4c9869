package combosite

import (
	"combo-scraper/lib/htmlutil"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// IconCache downloads move icons into a directory keyed by basename. A
// file that already exists is never fetched again, and each basename is
// attempted at most once per IconCache.
type IconCache struct {
	Dir string

	http    *resty.Client
	baseUrl *url.URL

	lock sync.Mutex
	seen map[string]error
}

func NewIconCache(http *resty.Client, baseUrl *url.URL, dir string) *IconCache {
	return &IconCache{
		Dir:     dir,
		http:    http,
		baseUrl: baseUrl,
		seen:    map[string]error{},
	}
}

// EnsureDownloaded makes sure the icon at src is present in the cache
// directory. Failures are logged and never returned.
func (c *IconCache) EnsureDownloaded(ctx context.Context, src string) {
	err := c.Download(ctx, src)
	if err != nil {
		slog.WarnContext(ctx, "failed to download icon", "url", src, "err", err)
	}
}

// Download is EnsureDownloaded but returns the *DownloadError. Repeated
// calls for the same basename return the first outcome.
func (c *IconCache) Download(ctx context.Context, src string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	filename := htmlutil.Basename(src)
	if filename == "" || filename == "." || filename == "/" {
		return &DownloadError{URL: src, Err: errors.New("icon url has no file name")}
	}
	if err, done := c.seen[filename]; done {
		return err
	}
	err := c.download(ctx, src, filename)
	c.seen[filename] = err
	return err
}

func (c *IconCache) download(ctx context.Context, src, filename string) error {
	ctx, span := tracer.Start(ctx, "combosite:EnsureDownloaded")
	defer span.End()

	target := filepath.Join(c.Dir, filename)
	span.SetAttributes(attribute.String("file", target))

	_, err := os.Stat(target)
	if err == nil {
		span.SetStatus(codes.Ok, "CACHE HIT")
		return nil
	}

	fail := func(link string, err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download")
		iconsFailed.Add(ctx, 1)
		return &DownloadError{URL: link, Path: target, Err: err}
	}

	ref, err := url.Parse(src)
	if err != nil {
		return fail(src, err)
	}
	link := c.baseUrl.ResolveReference(ref).String()

	err = os.MkdirAll(c.Dir, 0777)
	if err != nil {
		return fail(link, err)
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return fail(link, err)
	}
	if !res.IsSuccess() {
		return fail(link, fmt.Errorf("status %d", res.StatusCode()))
	}

	// a partial icon must never look cached
	tmp, err := os.CreateTemp(c.Dir, "."+filename+".*")
	if err != nil {
		return fail(link, err)
	}
	_, err = tmp.Write(res.Body())
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), target)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fail(link, err)
	}

	slog.DebugContext(ctx, "downloaded icon", "url", link, "file", target)
	iconsDownloaded.Add(ctx, 1)
	return nil
}
