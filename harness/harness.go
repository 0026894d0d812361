package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/weiihann/contactbench/store"
	"github.com/weiihann/contactbench/workload"
)

// Values written by every update trial.
const (
	UpdatePhone = "1234567890"
	UpdateEmail = "updated@test.com"
)

// ErrTrialPanic wraps a panic raised by a backend during a timed trial.
var ErrTrialPanic = errors.New("trial panicked")

// RunConfig holds parameters for a benchmark run.
type RunConfig struct {
	Sizes    []int
	Trials   int
	Backends []string
	Seed     int64
	// SearchSample is how many of the generated names are searched per
	// trial. MutateSample is how many of those are updated and deleted.
	SearchSample int
	MutateSample int
}

func (c RunConfig) withDefaults() RunConfig {
	if len(c.Backends) == 0 {
		c.Backends = KnownBackends()
	}

	if c.SearchSample <= 0 {
		c.SearchSample = 100
	}

	if c.MutateSample <= 0 {
		c.MutateSample = 10
	}

	return c
}

// Runner drives every configured backend through the same workload.
type Runner struct {
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewRunner creates a Runner. metrics may be nil.
func NewRunner(logger *slog.Logger, metrics *Metrics) *Runner {
	return &Runner{
		Logger:  logger.With(slog.String("component", "harness")),
		Metrics: metrics,
	}
}

// Run benchmarks every backend at every size and returns one Result per
// pair, ordered by size then backend.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) ([]Result, error) {
	cfg = cfg.withDefaults()

	if len(cfg.Sizes) == 0 {
		return nil, fmt.Errorf("at least one dataset size is required")
	}

	if cfg.Trials < 1 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}

	if err := ValidateBackends(cfg.Backends); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.Logger.With(slog.String("run_id", runID))

	logger.InfoContext(ctx, "starting run",
		slog.Any("sizes", cfg.Sizes),
		slog.Int("trials", cfg.Trials),
		slog.Any("backends", cfg.Backends),
		slog.Int64("seed", cfg.Seed),
	)

	gen := workload.NewGenerator(workload.Config{Seed: cfg.Seed})
	results := make([]Result, 0, len(cfg.Sizes)*len(cfg.Backends))

	for _, size := range cfg.Sizes {
		contacts, err := gen.Contacts(size)
		if err != nil {
			return results, fmt.Errorf("generate %d contacts: %w", size, err)
		}

		searchNames := make([]string, 0, min(cfg.SearchSample, size))
		for _, c := range contacts[:min(cfg.SearchSample, size)] {
			searchNames = append(searchNames, c.Name)
		}

		mutateNames := searchNames[:min(cfg.MutateSample, len(searchNames))]

		logger.InfoContext(ctx, "dataset generated",
			slog.Int("size", size),
			slog.Int("search_names", len(searchNames)),
			slog.Int("mutate_names", len(mutateNames)),
		)

		for _, backend := range cfg.Backends {
			res, err := r.runBackend(ctx, bench{
				backend:     backend,
				size:        size,
				trials:      cfg.Trials,
				contacts:    contacts,
				searchNames: searchNames,
				mutateNames: mutateNames,
			})
			if err != nil {
				return results, fmt.Errorf("benchmark %s size %d: %w",
					backend, size, err)
			}

			res.RunID = runID
			results = append(results, res)

			logger.InfoContext(ctx, "backend finished",
				slog.String("structure", backend),
				slog.Int("size", size),
				slog.Float64("insert_ms", res.InsertMs),
				slog.Float64("search_ms", res.SearchMs),
				slog.Float64("update_ms", res.UpdateMs),
				slog.Float64("delete_ms", res.DeleteMs),
			)
		}
	}

	logger.InfoContext(ctx, "run complete", slog.Int("results", len(results)))

	return results, nil
}

type bench struct {
	backend     string
	size        int
	trials      int
	contacts    []store.Record
	searchNames []string
	mutateNames []string
}

func (r *Runner) runBackend(ctx context.Context, b bench) (Result, error) {
	newStore := constructors[b.backend]
	res := Result{Structure: b.backend, Size: b.size}

	var s store.Store

	fill := func() {
		fresh := newStore()
		for _, c := range b.contacts {
			fresh.Insert(c)
		}

		s = fresh
	}

	// Each insert trial starts from an empty store; the previous one is
	// dropped before the collector runs.
	insert, err := r.measure(ctx, b, "insert", func() { s = nil }, fill)
	if err != nil {
		return res, err
	}

	res.InsertMs, res.InsertSpread = insert.mean, insert.spread

	s = nil
	runtime.GC()
	fill()

	search, err := r.measure(ctx, b, "search", nil, func() {
		for _, name := range b.searchNames {
			s.Search(name)
		}
	})
	if err != nil {
		return res, err
	}

	res.SearchMs, res.SearchSpread = search.perOp(len(b.searchNames))

	update, err := r.measure(ctx, b, "update", nil, func() {
		for _, name := range b.mutateNames {
			s.Update(name,
				store.SetPhone(UpdatePhone),
				store.SetEmail(UpdateEmail),
			)
		}
	})
	if err != nil {
		return res, err
	}

	res.UpdateMs, res.UpdateSpread = update.perOp(len(b.mutateNames))

	// Trials after the first find nothing left to delete.
	del, err := r.measure(ctx, b, "delete", nil, func() {
		for _, name := range b.mutateNames {
			s.Delete(name)
		}
	})
	if err != nil {
		return res, err
	}

	res.DeleteMs, res.DeleteSpread = del.perOp(len(b.mutateNames))

	return res, nil
}

// measure runs fn b.trials times. reset, if set, runs before the collector
// ahead of every trial and is not timed.
func (r *Runner) measure(
	ctx context.Context,
	b bench,
	op string,
	reset func(),
	fn func(),
) (stats, error) {
	durations := make([]time.Duration, 0, b.trials)

	for range b.trials {
		if err := ctx.Err(); err != nil {
			return stats{}, err
		}

		if reset != nil {
			reset()
		}

		runtime.GC()

		d, err := runTrial(fn)
		if err != nil {
			return stats{}, fmt.Errorf("%s trial: %w", op, err)
		}

		r.Metrics.observe(b.backend, op, b.size, d)
		durations = append(durations, d)
	}

	return summarize(durations), nil
}

func runTrial(fn func()) (d time.Duration, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTrialPanic, p)
		}
	}()

	start := time.Now()
	fn()

	return time.Since(start), nil
}

// stats are in milliseconds.
type stats struct {
	mean   float64
	spread float64
}

func (s stats) perOp(n int) (float64, float64) {
	if n == 0 {
		return 0, 0
	}

	return s.mean / float64(n), s.spread / float64(n)
}

// summarize returns the mean and half the max-min range of durations.
func summarize(durations []time.Duration) stats {
	if len(durations) == 0 {
		return stats{}
	}

	var total, lo, hi time.Duration

	lo, hi = durations[0], durations[0]
	for _, d := range durations {
		total += d
		lo = min(lo, d)
		hi = max(hi, d)
	}

	mean := float64(total) / float64(len(durations))
	spread := float64(hi-lo) / 2

	return stats{
		mean:   mean / float64(time.Millisecond),
		spread: spread / float64(time.Millisecond),
	}
}
