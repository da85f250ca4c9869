package main

import (
	"combo-scraper/cmd/combo-scraper/commands"
	"combo-scraper/lib/osutil"
	"combo-scraper/lib/telemetry"
	"context"
	"log/slog"
	"os"
	"time"
)

func main() {
	ctx, cancel := osutil.SignalContext(context.Background())
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "combo-scraper")
	if err != nil {
		slog.Warn("failed to setup telemetry, continuing without it", "err", err)
	}
	telemetry.InstrumentPerfStats(ctx, tel, 5*time.Second)

	err = commands.ExecuteContext(ctx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if shutdownErr := tel.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
