package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spergel/new-finance-sub001/cmd/holdings/config"
	"github.com/spergel/new-finance-sub001/internal/engine"
	"github.com/spergel/new-finance-sub001/internal/reporter"
)

// Flags for the analyze command.
var (
	analyzeSnapshotFile string
	analyzePeriodLabel  string

	analyzeOutputFormat string
	analyzeOutputFile   string
	analyzeTopN         int
	analyzeMaxRows      int
	analyzeParTolerance float64
	analyzeHorizon      int
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute distributional and risk analytics over one snapshot",
	Long: `Analyze computes industry, investment-type and rate-structure
distributions, concentration indices, spread and floor-rate statistics, PIK
aggregates, fair-value ratios, a maturity ladder, top holdings, and red
flags over a single snapshot file.

The period is the snapshot's reporting date. Maturity-relative analytics
(the maturity ladder, near-maturity red flags) are anchored to it and are
skipped when it is absent or unparseable.

Examples:
  # Console report
  holdings analyze --snapshot 2024-q2.json --period 2024-06-30

  # JSON report with a larger top-holdings table
  holdings analyze --snapshot q2.csv --period 2024-06-30 \
    --top 25 --output-format json --output-file analytics.json`,

	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeSnapshotFile, "snapshot", "s", "", "path to the snapshot file (required)")
	analyzeCmd.Flags().StringVarP(&analyzePeriodLabel, "period", "p", "", "reporting period date (YYYY-MM-DD)")

	analyzeCmd.Flags().StringVarP(&analyzeOutputFormat, "output-format", "f", "console", "output format: console, json, csv")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	analyzeCmd.Flags().IntVarP(&analyzeTopN, "top", "n", 10, "number of top holdings to report")
	analyzeCmd.Flags().IntVar(&analyzeMaxRows, "max-rows", 8, "distribution rows before folding into Other (console only)")
	analyzeCmd.Flags().Float64Var(&analyzeParTolerance, "par-tolerance", 0.01, "fraction of principal within which fair value counts as par")
	analyzeCmd.Flags().IntVar(&analyzeHorizon, "maturity-horizon", 12, "near-maturity lookahead in months")

	analyzeCmd.MarkFlagRequired("snapshot")

	viper.BindPFlag("analyze.top", analyzeCmd.Flags().Lookup("top"))
	viper.BindPFlag("analyze.par-tolerance", analyzeCmd.Flags().Lookup("par-tolerance"))
	viper.BindPFlag("analyze.maturity-horizon", analyzeCmd.Flags().Lookup("maturity-horizon"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	engineConfig, err := config.CreateEngineConfig(config.EngineOptions{
		Epsilon:               0.01,
		MatchByType:           true,
		TopN:                  analyzeTopN,
		ParTolerance:          analyzeParTolerance,
		MaturityHorizonMonths: analyzeHorizon,
	})
	if err != nil {
		return err
	}

	reportConfig, err := config.CreateReportConfig(analyzeOutputFormat, false, analyzeMaxRows)
	if err != nil {
		return err
	}

	service, err := engine.NewService(engineConfig)
	if err != nil {
		return err
	}

	report, err := service.Analyze(&engine.AnalyzeRequest{
		SnapshotFile: analyzeSnapshotFile,
		PeriodLabel:  analyzePeriodLabel,
	})
	if err != nil {
		return err
	}

	generator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return err
	}

	writer, closer, err := openOutput(analyzeOutputFile)
	if err != nil {
		return err
	}
	defer closer()

	return generator.WriteAnalyticsReport(report, writer)
}
