package main

import (
	"context"

	"gcctracker-backend/lib/serviceutil"
	"gcctracker-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	t, err := telemetry.SetupFromEnv(ctx, "gcc-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		t.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	telemetry.InitSlog(verbose)
}
