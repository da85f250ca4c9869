package combosite

import (
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/combosite")
var meter = otel.Meter("scrapers/combosite")

var pagesFetched, _ = meter.Int64Counter("pages.fetched")
var combosExtracted, _ = meter.Int64Counter("combos.extracted")
var iconsDownloaded, _ = meter.Int64Counter("icons.downloaded")
var iconsFailed, _ = meter.Int64Counter("icons.failed")
