package combosite

import (
	"bytes"
	"combo-scraper/internal/combos"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PageStatus int

const (
	// PageData means the page listed at least one combo.
	PageData PageStatus = iota
	// PageEnd means the page was fetched but listed nothing.
	PageEnd
	// PageFailed means the page could not be fetched or parsed.
	PageFailed
)

func (s PageStatus) String() string {
	switch s {
	case PageData:
		return "data"
	case PageEnd:
		return "end_of_listing"
	case PageFailed:
		return "failed"
	default:
		return fmt.Sprintf("PageStatus(%d)", int(s))
	}
}

// PageOutcome is the result of fetching one listing page. Items is only
// set for PageData and Err only for PageFailed.
type PageOutcome struct {
	Status PageStatus
	Items  []*goquery.Selection
	Err    error
}

// PageUrl is the listing url of a character's nth page.
func (c *Client) PageUrl(character string, page int) string {
	return fmt.Sprintf(
		"%s/%s%s/?&page=%d",
		c.BaseUrl.String(),
		listingPrefix,
		url.PathEscape(character),
		page,
	)
}

// ParseListing returns the listing items of a page.
func ParseListing(doc *goquery.Document) []*goquery.Selection {
	var items []*goquery.Selection
	doc.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		items = append(items, item)
	})
	return items
}

func (c *Client) FetchPage(ctx context.Context, character string, page int) PageOutcome {
	ctx, span := tracer.Start(ctx, "combosite:FetchPage")
	defer span.End()

	link := c.PageUrl(character, page)
	span.SetAttributes(
		attribute.String("character", character),
		attribute.Int("page", page),
		attribute.String("url", link),
	)

	res, err := c.get(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return PageOutcome{Status: PageFailed, Err: err}
	}
	pagesFetched.Add(ctx, 1)

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return PageOutcome{Status: PageFailed, Err: err}
	}

	items := ParseListing(doc)
	span.SetAttributes(attribute.Int("items", len(items)))
	if len(items) == 0 {
		return PageOutcome{Status: PageEnd}
	}
	return PageOutcome{Status: PageData, Items: items}
}

// Collect pages through a character's combo listing until a page fails,
// a page lists nothing, or PageLimit pages were read. Failed pages end
// the listing, they are logged and not returned. The only error is ctx's.
func (c *Client) Collect(ctx context.Context, character combos.Character) ([]combos.ComboRecord, error) {
	ctx, span := tracer.Start(ctx, "combosite:Collect")
	defer span.End()
	span.SetAttributes(attribute.String("character", character.Name))

	slog.InfoContext(ctx, "scraping combos", "character", character.Name)

	records := []combos.ComboRecord{}
	for page := 1; c.PageLimit == 0 || page <= c.PageLimit; page++ {
		if page > 1 {
			err := wait(ctx, c.PageDelay)
			if err != nil {
				return records, err
			}
		}

		outcome := c.FetchPage(ctx, character.Name, page)
		switch outcome.Status {
		case PageFailed:
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			var fetchErr *FetchError
			if errors.As(outcome.Err, &fetchErr) && fetchErr.Status != 0 {
				slog.InfoContext(
					ctx, "listing ended with non-success status",
					"character", character.Name,
					"page", page,
					"status", fetchErr.Status,
				)
			} else {
				slog.WarnContext(
					ctx, "listing page failed",
					"character", character.Name,
					"page", page,
					"err", outcome.Err,
				)
			}
			return records, nil
		case PageEnd:
			slog.InfoContext(
				ctx, "listing ended with an empty page",
				"character", character.Name,
				"page", page,
			)
			return records, nil
		}

		for _, item := range outcome.Items {
			records = append(records, Extract(ctx, item, c.Icons))
		}
		slog.InfoContext(
			ctx, "page done",
			"character", character.Name,
			"page", page,
			"items", len(outcome.Items),
		)
	}

	slog.InfoContext(ctx, "page limit reached", "character", character.Name, "limit", c.PageLimit)
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}
