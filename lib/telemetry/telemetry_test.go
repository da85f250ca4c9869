package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.False(t, tel.Enabled())
	require.NoError(t, tel.Shutdown(context.Background()))

	// must not start anything without a meter provider
	InstrumentPerfStats(context.Background(), tel, time.Millisecond)
}

func TestIsText(t *testing.T) {
	require.True(t, isText("text/html; charset=utf-8"))
	require.True(t, isText("application/json"))
	require.False(t, isText("image/png"))
	require.False(t, isText(""))
}
