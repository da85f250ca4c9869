package combosite

import (
	"combo-scraper/internal/combos"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// slugs the portrait host uses that differ from the listing ids
var portraitAliases = map[string]string{
	"jack-8": "jack8",
	"jack_8": "jack8",
}

func PortraitSlug(character string) string {
	normalized := strings.ToLower(strings.TrimSpace(character))
	if alias, ok := portraitAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// PortraitSlugs lists the sorted, distinct portrait slugs of every
// character that has at least one combo.
func PortraitSlugs(rs *combos.ResultSet) []string {
	seen := map[string]bool{}
	var slugs []string
	for _, name := range rs.Characters() {
		records, _ := rs.Get(name)
		if len(records) == 0 {
			continue
		}
		slug := PortraitSlug(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

type PortraitResult struct {
	Downloaded int
	Failed     int
}

// SyncPortraits replaces dir with one <slug>.jpg per character fetched
// from baseUrl. A portrait that fails to download is counted and logged.
func (c *Client) SyncPortraits(ctx context.Context, rs *combos.ResultSet, baseUrl, dir string) (PortraitResult, error) {
	ctx, span := tracer.Start(ctx, "combosite:SyncPortraits")
	defer span.End()

	baseUrl = strings.TrimSuffix(baseUrl, "/")
	slugs := PortraitSlugs(rs)

	err := os.RemoveAll(dir)
	if err != nil {
		return PortraitResult{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return PortraitResult{}, err
	}

	var result PortraitResult
	for _, slug := range slugs {
		link, err := c.resolve(baseUrl + "/" + slug + ".jpg")
		if err == nil {
			err = c.downloadTo(ctx, link, filepath.Join(dir, slug+".jpg"))
		}
		if err != nil {
			result.Failed++
			slog.WarnContext(ctx, "failed to download portrait", "character", slug, "err", err)
			continue
		}
		result.Downloaded++
	}

	slog.InfoContext(
		ctx, "synced character portraits",
		"downloaded", result.Downloaded,
		"failed", result.Failed,
	)
	return result, nil
}

func (c *Client) downloadTo(ctx context.Context, link, target string) error {
	res, err := c.get(ctx, link)
	if err != nil {
		return err
	}
	err = os.WriteFile(target, res.Body(), 0644)
	if err != nil {
		return &DownloadError{URL: link, Path: target, Err: err}
	}
	return nil
}
