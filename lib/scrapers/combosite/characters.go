package combosite

import (
	"bytes"
	"combo-scraper/internal/combos"
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const listingPrefix = "combos-"

// characterFromHref extracts the character id out of a listing link such
// as "/combos-jin/" or "https://host/combos-jin/?page=2".
func characterFromHref(href string) string {
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	for _, segment := range strings.Split(link.Path, "/") {
		if strings.HasPrefix(segment, listingPrefix) {
			return strings.TrimPrefix(segment, listingPrefix)
		}
	}
	return ""
}

// ParseCharacters returns the distinct characters linked from doc, in
// the order they first appear.
func ParseCharacters(doc *goquery.Document) []combos.Character {
	var characters []combos.Character
	seen := map[string]bool{}

	doc.Find(`a[href*="/combos-"]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		name := characterFromHref(href)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		characters = append(characters, combos.Character{
			Name:        name,
			ListingPath: href,
		})
	})

	return characters
}

// Discover fetches the landing page once and lists the characters that
// have a combo listing.
func (c *Client) Discover(ctx context.Context) ([]combos.Character, error) {
	ctx, span := tracer.Start(ctx, "combosite:Discover")
	defer span.End()

	slog.InfoContext(ctx, "fetching character list", "url", c.BaseUrl.String())

	res, err := c.get(ctx, c.BaseUrl.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch landing page")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	characters := ParseCharacters(doc)
	span.SetAttributes(attribute.Int("characters", len(characters)))
	if len(characters) == 0 {
		slog.WarnContext(ctx, "landing page links to no combo listings", "url", c.BaseUrl.String())
	}

	slog.InfoContext(ctx, "found characters", "count", len(characters))
	return characters, nil
}
