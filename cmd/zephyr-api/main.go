// README: Entry point; loads config, wires collaborators, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zephyr/internal/ai"
	"zephyr/internal/config"
	"zephyr/internal/geo"
	httptransport "zephyr/internal/http"
	"zephyr/internal/speaker"
	"zephyr/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := ai.NewGeminiCompleter(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer completer.Close()

	resolver, err := geo.NewResolver(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("geo init: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.Weather.RequestTimeout}

	primary := providers.NewOpenMeteoProvider(httpClient)
	secondary := providers.NewVisualCrossingProvider(httpClient, cfg.Weather.VisualCrossingKey)

	sp := speaker.NewService(completer, resolver, primary, secondary)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(sp),
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
