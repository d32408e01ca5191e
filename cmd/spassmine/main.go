// Command spassmine runs spass's itemset miner over a FIMI/SPMF-style
// transactions file and prints the accepted patterns as JSON.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagAlpha          float64
	flagFDR            bool
	flagMinSupport     int
	flagMaxFactorSize  int
	flagMaxFactorWidth int
	flagMaxExpansions  int
	flagMaxDiscoveries int
	flagMaxSeconds     time.Duration
	flagLabels         string
	flagMetricsAddr    string
	flagLogLevel       string

	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "spassmine [transactions-file]",
	Args:    cobra.ExactArgs(1),
	Short:   "Mine statistically significant itemset patterns from a binary dataset",
	Long:    `spassmine fits a sequentially-updated maximum-entropy null model over a transactions file and reports the itemset patterns whose support is significant against it, under either a family-wise or false-discovery-rate error guarantee.`,
	Version: version,
	RunE:    runMine,
}

func init() {
	rootCmd.Flags().Float64Var(&flagAlpha, "alpha", 0.05, "target error rate")
	rootCmd.Flags().Bool("fwer", false, "use the family-wise (FWER) threshold; this is the default, and --fdr takes precedence")
	rootCmd.Flags().BoolVar(&flagFDR, "fdr", false, "use the sequential FDR (LORD) procedure instead of FWER")
	rootCmd.Flags().IntVar(&flagMinSupport, "min-support", 2, "minimum absolute row count per pattern")
	rootCmd.Flags().IntVar(&flagMaxFactorSize, "max-factor-size", 8, "maximum patterns folded into one maxent factor")
	rootCmd.Flags().IntVar(&flagMaxFactorWidth, "max-factor-width", 50, "maximum singletons spanned by one maxent factor")
	rootCmd.Flags().IntVar(&flagMaxExpansions, "max-expansions", 0, "candidate-expansion budget, 0 means unbounded")
	rootCmd.Flags().IntVar(&flagMaxDiscoveries, "max-discoveries", 0, "accepted-pattern budget, 0 means unbounded")
	rootCmd.Flags().DurationVar(&flagMaxSeconds, "max-seconds", 0, "wall-clock budget, 0 means unbounded")
	rootCmd.Flags().StringVar(&flagLabels, "labels", "", "path to a group-labels file (one integer per row, enables multi-group mode)")
	rootCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, empty disables metrics")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
