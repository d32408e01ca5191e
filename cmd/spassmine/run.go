package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sdall/spass"
	"github.com/sdall/spass/dataset"
	"github.com/sdall/spass/internal/obs"
	"github.com/spf13/cobra"
)

// patternOut is one reported pattern, as spassmine's JSON output shape.
// Group identifies which model (label) accepted the pattern; it is
// always 0 in single-group mode.
type patternOut struct {
	Group int     `json:"group"`
	Items []int   `json:"items"`
	Freq  float64 `json:"freq"`
}

// report is spassmine's top-level JSON document.
type report struct {
	Patterns      []patternOut `json:"patterns"`
	ExecutionTime string       `json:"executiontime"`
	RunID         string       `json:"run_id"`
}

func runMine(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	logger := obs.NewLogger(obs.LoggerConfig{Level: obs.Level(flagLogLevel), Output: os.Stderr})

	var registry *prometheus.Registry
	var metrics obs.Metrics = obs.NoopMetrics
	if flagMetricsAddr != "" {
		registry = prometheus.NewRegistry()
		metrics = obs.NewPrometheusMetrics(registry)
		go serveMetrics(flagMetricsAddr, registry, logger)
	}

	logger.Phase("parse")
	txFile, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening transactions file: %w", err)
	}
	defer txFile.Close()

	rows, cols, err := parseTransactions(txFile)
	if err != nil {
		return fmt.Errorf("parsing transactions: %w", err)
	}

	view, err := dataset.FromRowSets(rows, cols)
	if err != nil {
		return fmt.Errorf("building dataset: %w", err)
	}

	var labels []int
	if flagLabels != "" {
		labelsFile, err := os.Open(flagLabels)
		if err != nil {
			return fmt.Errorf("opening labels file: %w", err)
		}
		defer labelsFile.Close()

		labels, err = parseLabels(labelsFile)
		if err != nil {
			return fmt.Errorf("parsing labels: %w", err)
		}
	}

	adjustment := spass.FWER
	if flagFDR {
		adjustment = spass.FDR
	}

	opts := []spass.Option{
		spass.WithAlpha(flagAlpha),
		spass.WithMinSupport(flagMinSupport),
		spass.WithMaxFactorSize(flagMaxFactorSize),
		spass.WithMaxFactorWidth(flagMaxFactorWidth),
		spass.WithMaxExpansions(flagMaxExpansions),
		spass.WithMaxDiscoveries(flagMaxDiscoveries),
		spass.WithMaxSeconds(flagMaxSeconds),
		spass.WithLogger(logger),
		spass.WithMetrics(metrics),
	}

	logger.Phase("fit")
	start := time.Now()
	models, err := spass.Fit(adjustment, view, labels, opts...)
	if err != nil {
		return fmt.Errorf("fitting model: %w", err)
	}
	elapsed := time.Since(start)

	logger.Phase("encode")
	var patterns []patternOut
	for g, model := range models {
		for _, p := range model.Patterns() {
			patterns = append(patterns, patternOut{Group: g, Items: p.Items, Freq: p.Freq})
		}
	}

	out := report{
		Patterns:      patterns,
		ExecutionTime: elapsed.String(),
		RunID:         runID,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

// serveMetrics exposes the Prometheus registry at /metrics until the
// process exits; a bind failure is logged, not fatal (spassmine still
// completes the mining run without metrics).
func serveMetrics(addr string, reg *prometheus.Registry, logger *obs.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", err)
	}
}
