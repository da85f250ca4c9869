package combosite

import (
	"combo-scraper/internal/combos"
	"combo-scraper/lib/htmlutil"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markup of a single listing item
const (
	itemSelector     = "li.combo-item"
	statsSelector    = ".powered"
	textSelector     = ".comboTxt"
	sequenceSelector = ".comboImg"
	stepTag          = "span"
	stepClass        = "key"

	hitsMarker   = "hits"
	damageMarker = "damages"
	statsDelim   = "|"
)

// IconFetcher is notified of every icon referenced by a combo.
type IconFetcher interface {
	EnsureDownloaded(ctx context.Context, src string)
}

// ParseStats splits a stats line like "10 hits | 55 damages". Either
// part is left empty when its marker is missing.
func ParseStats(stats string) (hits, damage string) {
	if strings.Contains(stats, hitsMarker) {
		hits = strings.TrimSpace(strings.Split(stats, statsDelim)[0])
	}
	if strings.Contains(stats, damageMarker) {
		parts := strings.Split(stats, statsDelim)
		damage = strings.TrimSpace(parts[len(parts)-1])
	}
	return hits, damage
}

// ExtractSteps reads the input sequence out of a sequence container.
// Only direct span.key children are steps.
func ExtractSteps(ctx context.Context, container *goquery.Selection, icons IconFetcher) []combos.MoveStep {
	steps := []combos.MoveStep{}
	if container.Length() == 0 {
		return steps
	}

	for _, child := range htmlutil.DirectChildren(container, stepTag, stepClass) {
		img := child.Find("img").First()
		if img.Length() == 0 {
			steps = append(steps, combos.TextStep(htmlutil.Text(child)))
			continue
		}

		src := img.AttrOr("src", "")
		steps = append(steps, combos.ImageStep(img.AttrOr("alt", ""), htmlutil.Basename(src)))
		if src != "" && icons != nil {
			icons.EnsureDownloaded(ctx, src)
		}
	}
	return steps
}

// Extract normalizes one listing item. Missing sub-elements leave their
// fields empty, it never fails.
func Extract(ctx context.Context, item *goquery.Selection, icons IconFetcher) combos.ComboRecord {
	record := combos.ComboRecord{
		Moves: []combos.MoveStep{},
	}

	if id, ok := item.Attr("id"); ok {
		record.ID = &id
	}

	stats := item.Find(statsSelector).First()
	if stats.Length() > 0 {
		record.Hits, record.Damage = ParseStats(htmlutil.Text(stats))
	}

	record.Text = htmlutil.Text(item.Find(textSelector).First())
	record.Moves = ExtractSteps(ctx, item.Find(sequenceSelector).First(), icons)

	combosExtracted.Add(ctx, 1)
	return record
}
