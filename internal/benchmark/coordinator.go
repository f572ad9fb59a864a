package benchmark

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/storage"
)

// Items holds the ordered item lists fed to engines of each kind.
type Items struct {
	OCR []string
	LLM []string
}

func (it Items) forKind(kind models.Kind) []string {
	if kind == models.KindOCR {
		return it.OCR
	}
	return it.LLM
}

// Coordinator runs every registered engine over the items of its kind.
type Coordinator struct {
	Driver *Driver
	// Parallel runs engines concurrently. Items of one engine are always
	// benchmarked in order, one at a time.
	Parallel bool
}

func NewCoordinator(parallel bool) *Coordinator {
	return &Coordinator{Driver: NewDriver(), Parallel: parallel}
}

// Run benchmarks regs in order and returns the collated report. The first
// engine failure aborts the run.
func (c *Coordinator) Run(ctx context.Context, regs []engine.Registration, items Items) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	store := storage.New(len(regs))

	slog.Info("starting benchmark run",
		"run_id", report.RunID,
		"engines", len(regs),
		"ocr_items", len(items.OCR),
		"llm_items", len(items.LLM),
		"parallel", c.Parallel,
	)

	if c.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, reg := range regs {
			g.Go(func() error {
				return c.runEngine(gctx, store, i, reg, items.forKind(reg.Kind))
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, reg := range regs {
			if err := c.runEngine(ctx, store, i, reg, items.forKind(reg.Kind)); err != nil {
				return nil, err
			}
		}
	}

	report.Records, report.OCRTexts = store.Collate()
	report.Summaries = Summarize(report.Records)
	return report, nil
}

func (c *Coordinator) runEngine(ctx context.Context, store *storage.ResultStore, idx int, reg engine.Registration, items []string) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := c.Driver.Bench(ctx, reg, item)
		if err != nil {
			return err
		}
		store.Append(idx, rec)
	}
	slog.Info("engine finished", "engine", reg.Name, "kind", reg.Kind, "items", len(items))
	return nil
}
