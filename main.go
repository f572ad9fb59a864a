package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lehigh-university-libraries/ocr-bench/internal/app"
	"github.com/lehigh-university-libraries/ocr-bench/internal/benchmark"
	"github.com/lehigh-university-libraries/ocr-bench/internal/config"
	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/handlers"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/services"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $CONFIG_PATH or ./config.yaml)")
	serveAddr := flag.String("serve", "", "serve the scoring API on this address instead of running a benchmark")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serveAddr != "" {
		serve(ctx, *serveAddr)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.ExitOnError("Unable to load config", err)
	}
	app.NewLogger(cfg.Log)

	regs, err := services.Build(ctx, cfg.Engines)
	if err != nil {
		utils.ExitOnError("Unable to build engines", err)
	}

	items, err := loadItems(cfg.Items, regs)
	if err != nil {
		utils.ExitOnError("Unable to read item lists", err)
	}

	report, err := benchmark.NewCoordinator(cfg.Parallel).Run(ctx, regs, items)
	if err != nil {
		utils.ExitOnError("Benchmark run failed", err)
	}

	err = report.Write(benchmark.Paths{
		Results: cfg.Output.Results,
		Texts:   cfg.Output.Texts,
		Summary: cfg.Output.Summary,
	})
	if err != nil {
		utils.ExitOnError("Unable to write results", err)
	}

	slog.Info("benchmark complete", "run_id", report.RunID, "records", len(report.Records))
	fmt.Fprint(os.Stderr, benchmark.RenderMarkdown(report.Summaries))
	fmt.Printf("Wrote %d records to %s\n", len(report.Records), cfg.Output.Results)
}

// loadItems reads the item list of every kind some engine is registered for.
// A missing list for an unused kind is an empty list.
func loadItems(cfg config.ItemsConfig, regs []engine.Registration) (benchmark.Items, error) {
	needed := map[models.Kind]bool{}
	for _, r := range regs {
		needed[r.Kind] = true
	}

	read := func(path string, kind models.Kind) ([]string, error) {
		items, err := utils.ReadItemList(path)
		if errors.Is(err, fs.ErrNotExist) && !needed[kind] {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s items: %w", kind, err)
		}
		return items, nil
	}

	var items benchmark.Items
	var err error
	if items.OCR, err = read(cfg.OCRList, models.KindOCR); err != nil {
		return items, err
	}
	if items.LLM, err = read(cfg.LLMList, models.KindLLM); err != nil {
		return items, err
	}
	return items, nil
}

func serve(ctx context.Context, addr string) {
	lc, err := config.LoadLogConfig()
	if err != nil {
		utils.ExitOnError("Unable to load config", err)
	}
	app.NewLogger(lc)

	mux := http.NewServeMux()
	handlers.New().Routes(mux)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
		}
	}()

	slog.Info("Scoring API available", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.ExitOnError("Server failed to start", err)
	}
}
