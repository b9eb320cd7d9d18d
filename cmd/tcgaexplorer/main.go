// Command tcgaexplorer clusters the gene-expression cohorts described in a
// TOML configuration file and prints one summary line per cohort.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tcgaexplorer "github.com/nicolas-legroux/tcgaExplorer"
)

var (
	configPath = flag.String("config", "", "TOML configuration file (default: built-in BRCA/LUAD cohort over ./data)")
	logLevel   = flag.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	jsonLogs   = flag.Bool("json-logs", false, "emit JSON logs instead of text")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("-log-level: %w", err)
	}
	logger := tcgaexplorer.NewTextLogger(level)
	if *jsonLogs {
		logger = tcgaexplorer.NewJSONLogger(level)
	}

	cfg := tcgaexplorer.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tcgaexplorer.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	rc := cfg.Resources.Controller()
	opts, err := cfg.Options(rc)
	if err != nil {
		return err
	}

	stores, err := openStores(ctx, cfg, rc)
	if err != nil {
		return err
	}
	opts = append(opts, tcgaexplorer.WithLogger(logger), tcgaexplorer.WithOutputStore(stores.output))
	if stores.recorder != nil {
		opts = append(opts, tcgaexplorer.WithRunRecorder(stores.recorder))
	}

	ex, err := tcgaexplorer.New(stores.input, opts...)
	if err != nil {
		return err
	}
	reports, err := ex.AnalyzeAll(ctx, cfg.Cohorts)
	if err != nil {
		return err
	}
	for _, r := range reports {
		fmt.Println(summary(r))
	}
	return nil
}

// summary renders one line per cohort, e.g.
// "brca-luad: 80 samples, hierarchical k=2 sizes=[41 39] | cluster 0: BRCA-Control=20 ...".
func summary(r *tcgaexplorer.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d samples, %s k=%d sizes=%v", r.Cohort, len(r.Samples), r.Algorithm, r.K, r.ClusterSizes)
	if !r.Converged {
		b.WriteString(" (not converged)")
	}
	for c, counts := range r.Composition {
		fmt.Fprintf(&b, " | cluster %d:", c)
		for _, class := range sortedKeys(counts) {
			fmt.Fprintf(&b, " %s=%d", class, counts[class])
		}
	}
	if r.RunVersion > 0 {
		fmt.Fprintf(&b, " (run %d)", r.RunVersion)
	}
	return b.String()
}
