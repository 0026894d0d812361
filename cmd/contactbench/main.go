// Package main provides the CLI entry point for contactbench, which
// benchmarks four contact store backends against the same workload.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/weiihann/contactbench/config"
	"github.com/weiihann/contactbench/harness"
	"github.com/weiihann/contactbench/report"
	"github.com/weiihann/contactbench/store"
	"github.com/weiihann/contactbench/workload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

type app struct {
	stdout    io.Writer
	stderr    io.Writer
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "contactbench",
		Short: "Contact store data structure benchmarking tool",
		Long: `Contactbench stores the same generated contacts in an array, a linked
list, a hash map and a binary search tree, then times insert, search,
update and delete on each and compares the results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := newLogger(a.stderr, a.logLevel, a.logFormat)
			if err != nil {
				return err
			}

			a.logger = logger

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "auto",
		"Log format: auto, text, json")

	root.AddCommand(
		newRunCmd(a), newDemoCmd(a), newGenerateCmd(a), newConfigCmd(a),
	)

	return root
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse --log-level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "auto":
		if f, ok := w.(*os.File); ok &&
			(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return slog.New(slog.NewTextHandler(w, opts)), nil
		}

		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown --log-format %q", format)
	}
}

func newRunCmd(a *app) *cobra.Command {
	var (
		configPath string
		flagCfg    = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark every backend across dataset sizes",
		Long: `Generate a deterministic contact dataset per size, time insert, search,
update and delete on each backend, and report the results.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, configPath, flagCfg)
			if err != nil {
				return err
			}

			return runBenchmark(cmd.Context(), a, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"YAML config file; explicitly set flags override it")
	flags.IntSliceVar(&flagCfg.Sizes, "sizes", flagCfg.Sizes,
		"Dataset sizes to benchmark")
	flags.IntVar(&flagCfg.Trials, "trials", flagCfg.Trials,
		"Timed trials per operation")
	flags.Int64Var(&flagCfg.Seed, "seed", flagCfg.Seed,
		"Random seed (0 = use current time)")
	flags.StringSliceVar(&flagCfg.Backends, "backends", flagCfg.Backends,
		"Backends to benchmark: "+strings.Join(harness.KnownBackends(), ","))
	flags.IntVar(&flagCfg.SearchSample, "search-sample", flagCfg.SearchSample,
		"Names searched per trial")
	flags.IntVar(&flagCfg.MutateSample, "mutate-sample", flagCfg.MutateSample,
		"Names updated and deleted per trial")
	flags.StringVar(&flagCfg.Output.CSV, "csv", flagCfg.Output.CSV,
		"CSV results file (empty to skip)")
	flags.BoolVar(&flagCfg.Output.JSON, "json", flagCfg.Output.JSON,
		"Output results as JSON instead of tables")
	flags.BoolVar(&flagCfg.Output.Growth, "growth", flagCfg.Output.Growth,
		"Append growth rate estimates to the report")
	flags.StringVar(&flagCfg.Output.MetricsFile, "metrics-file",
		flagCfg.Output.MetricsFile,
		"Write Prometheus trial metrics to this file")

	return cmd
}

// resolveConfig layers explicitly set flags over the config file, or over
// the defaults when no file is given.
func resolveConfig(
	cmd *cobra.Command,
	path string,
	flagCfg config.Config,
) (config.Config, error) {
	if path == "" {
		return flagCfg, flagCfg.Validate()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"sizes":         func() { cfg.Sizes = flagCfg.Sizes },
		"trials":        func() { cfg.Trials = flagCfg.Trials },
		"seed":          func() { cfg.Seed = flagCfg.Seed },
		"backends":      func() { cfg.Backends = flagCfg.Backends },
		"search-sample": func() { cfg.SearchSample = flagCfg.SearchSample },
		"mutate-sample": func() { cfg.MutateSample = flagCfg.MutateSample },
		"csv":           func() { cfg.Output.CSV = flagCfg.Output.CSV },
		"json":          func() { cfg.Output.JSON = flagCfg.Output.JSON },
		"growth":        func() { cfg.Output.Growth = flagCfg.Output.Growth },
		"metrics-file": func() {
			cfg.Output.MetricsFile = flagCfg.Output.MetricsFile
		},
	}

	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}

	return cfg, cfg.Validate()
}

func runBenchmark(ctx context.Context, a *app, cfg config.Config) error {
	seed := resolveSeed(cfg.Seed)

	reg := prometheus.NewRegistry()
	runner := harness.NewRunner(a.logger, harness.NewMetrics(reg))

	results, err := runner.Run(ctx, harness.RunConfig{
		Sizes:        cfg.Sizes,
		Trials:       cfg.Trials,
		Backends:     cfg.Backends,
		Seed:         seed,
		SearchSample: cfg.SearchSample,
		MutateSample: cfg.MutateSample,
	})
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}

	if cfg.Output.CSV != "" {
		if err := writeCSVFile(cfg.Output.CSV, results); err != nil {
			return err
		}

		a.logger.InfoContext(ctx, "results saved",
			slog.String("path", cfg.Output.CSV),
			slog.Int("rows", len(results)),
		)
	}

	if cfg.Output.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.Output.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics file: %w", err)
		}
	}

	if cfg.Output.JSON {
		if err := report.GenerateJSON(a.stdout, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	if err := report.Generate(a.stdout, results); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if cfg.Output.Growth {
		fmt.Fprintln(a.stdout)

		if err := report.GenerateGrowth(a.stdout, results); err != nil {
			return fmt.Errorf("generate growth report: %w", err)
		}
	}

	return nil
}

// resolveSeed maps 0 to a time-based seed.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}

	return seed
}

func writeCSVFile(path string, results []harness.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}

	if err := report.WriteCSV(f, results); err != nil {
		f.Close()

		return fmt.Errorf("write CSV file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close CSV file: %w", err)
	}

	return nil
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show basic operations on every backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(a.stdout)
		},
	}
}

func runDemo(w io.Writer) error {
	contacts := []store.Record{
		{Name: "Alice Johnson", Phone: "5551234567", Email: "alice@email.com"},
		{Name: "Bob Smith", Phone: "5559876543", Email: "bob@email.com"},
		{Name: "Charlie Brown", Phone: "5555555555", Email: "charlie@email.com"},
	}

	for _, name := range harness.KnownBackends() {
		s, err := harness.NewBackend(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s:\n", name)

		for _, c := range contacts {
			s.Insert(c)
		}

		fmt.Fprintf(w, "  inserted %d contacts\n", len(contacts))

		if found, ok := s.Search("Bob Smith"); ok {
			fmt.Fprintf(w, "  search: %s | %s | %s\n",
				found.Name, found.Phone, found.Email)
		} else {
			fmt.Fprintln(w, "  search: not found")
		}

		fmt.Fprintf(w, "  update Alice's phone: %t\n",
			s.Update("Alice Johnson", store.SetPhone("5550000000")))
		fmt.Fprintf(w, "  delete Charlie: %t\n", s.Delete("Charlie Brown"))
		fmt.Fprintf(w, "  final size: %d\n", s.Size())
	}

	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		count int
		seed  int64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a deterministic contact dataset as JSONL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}

			summary, err := generateContacts(a.stdout, out, resolveSeed(seed), count)
			if err != nil {
				return err
			}

			a.logger.InfoContext(cmd.Context(), "contacts generated",
				slog.Int("contacts", summary.Contacts),
				slog.Int("collisions", summary.Collisions),
				slog.Any("domains", summary.Domains),
			)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&count, "count", 1000, "Number of contacts to generate")
	flags.Int64Var(&seed, "seed", 42, "Random seed (0 = use current time)")
	flags.StringVar(&out, "out", "", "Output file (default: stdout)")

	return cmd
}

// generateContacts writes count contacts to path, or to stdout when path
// is empty.
func generateContacts(
	stdout io.Writer,
	path string,
	seed int64,
	count int,
) (workload.Summary, error) {
	gen := workload.NewGenerator(workload.Config{Seed: seed})

	if path == "" {
		summary, err := gen.Generate(stdout, count)
		if err != nil {
			return summary, fmt.Errorf("generate: %w", err)
		}

		return summary, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return workload.Summary{}, fmt.Errorf("create output file: %w", err)
	}

	summary, err := gen.Generate(f, count)
	if err != nil {
		f.Close()

		return summary, fmt.Errorf("generate: %w", err)
	}

	if err := f.Close(); err != nil {
		return summary, fmt.Errorf("close output file: %w", err)
	}

	return summary, nil
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage benchmark config files",
	}

	var out string

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default run config as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteDefault(out); err != nil {
				return err
			}

			a.logger.InfoContext(cmd.Context(), "config written",
				slog.String("path", out),
			)

			return nil
		},
	}

	initCmd.Flags().StringVar(&out, "out", "contactbench.yaml",
		"Path of the config file to write")

	cmd.AddCommand(initCmd)

	return cmd
}
