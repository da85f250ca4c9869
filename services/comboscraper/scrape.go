package comboscraper

import (
	"combo-scraper/internal/combos"
	"combo-scraper/lib/textutil"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/comboscraper")

// suggestionThreshold is the minimum similarity a discovered name needs
// to be offered for an unknown --characters entry.
const suggestionThreshold = 0.8

type Site interface {
	Discover(ctx context.Context) ([]combos.Character, error)
	Collect(ctx context.Context, character combos.Character) ([]combos.ComboRecord, error)
}

// Exporter receives the result set after it was written to disk.
type Exporter interface {
	Replace(ctx context.Context, rs *combos.ResultSet, listings []combos.Character) error
}

type RunOptions struct {
	OutputDir string
	// CharacterLimit caps the discovered characters scraped, 0 means all.
	// It does not apply when Characters is set.
	CharacterLimit int
	Characters     []string
	// Exporter may be nil.
	Exporter Exporter
}

// Select picks the characters a run scrapes, in discovery order.
func Select(discovered []combos.Character, names []string, limit int) []combos.Character {
	if len(names) == 0 {
		if limit > 0 && limit < len(discovered) {
			return discovered[:limit]
		}
		return discovered
	}

	known := make([]string, len(discovered))
	for i, c := range discovered {
		known[i] = c.Name
	}

	wanted := map[string]bool{}
	for _, name := range names {
		name = textutil.NormalizeName(name)
		found := false
		for _, c := range discovered {
			if textutil.NormalizeName(c.Name) == name {
				found = true
				break
			}
		}
		if found {
			wanted[name] = true
			continue
		}

		match, score := textutil.ClosestMatch(name, known)
		if score >= suggestionThreshold {
			slog.Warn("unknown character", "character", name, "closest", match)
		} else {
			slog.Warn("unknown character", "character", name)
		}
	}

	var selected []combos.Character
	for _, c := range discovered {
		if wanted[textutil.NormalizeName(c.Name)] {
			selected = append(selected, c)
		}
	}
	return selected
}

// Run discovers characters, collects the combos of the selected ones and
// writes them to <OutputDir>/combos.json. If ctx is cancelled while
// collecting, the partial result is still written and ctx's error is
// returned.
func Run(ctx context.Context, site Site, opts RunOptions) (*combos.ResultSet, error) {
	ctx, span := tracer.Start(ctx, "comboscraper:Run")
	defer span.End()

	discovered, err := site.Discover(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to discover characters")
		return nil, err
	}
	selected := Select(discovered, opts.Characters, opts.CharacterLimit)
	span.SetAttributes(
		attribute.Int("characters.discovered", len(discovered)),
		attribute.Int("characters.selected", len(selected)),
	)

	rs := combos.NewResultSet()
	var collectErr error
	for _, character := range selected {
		records, err := site.Collect(ctx, character)
		rs.Set(character.Name, records)
		if err != nil {
			collectErr = err
			break
		}
		slog.InfoContext(ctx, "collected combos", "character", character.Name, "items", len(records))
	}

	output := filepath.Join(opts.OutputDir, combos.ResultFile)
	err = combos.Save(output, rs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write results")
		return rs, fmt.Errorf("write %s: %w", output, err)
	}
	slog.InfoContext(ctx, "wrote results", "file", output, "characters", rs.Len())

	if collectErr != nil {
		span.RecordError(collectErr)
		span.SetStatus(codes.Error, "scrape interrupted")
		return rs, collectErr
	}

	if opts.Exporter != nil {
		err = opts.Exporter.Replace(ctx, rs, selected)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to export results")
			return rs, fmt.Errorf("export results: %w", err)
		}
	}
	return rs, nil
}
