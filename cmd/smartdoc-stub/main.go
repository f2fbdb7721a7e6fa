package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"smartdoc/internal/config"
	"smartdoc/internal/otel"
	"smartdoc/internal/stub"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, "smartdoc-stub")
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	store := stub.NewStore()
	store.Seed()

	app, err := stub.NewApp(store, prometheus.DefaultRegisterer, cfg.Stub.UploadLimit)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	addr := ":" + cfg.Stub.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
