package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spergel/new-finance-sub001/cmd/holdings/config"
	"github.com/spergel/new-finance-sub001/internal/engine"
	"github.com/spergel/new-finance-sub001/internal/reporter"
	"github.com/spergel/new-finance-sub001/pkg/errors"
)

// Flags for the diff command.
var (
	diffBeforeFile  string
	diffAfterFile   string
	diffBeforeLabel string
	diffAfterLabel  string

	diffOutputFormat     string
	diffOutputFile       string
	diffEpsilon          float64
	diffMatchByType      bool
	diffIncludeUnchanged bool
)

// diffCmd represents the diff command.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two portfolio snapshots",
	Long: `Diff reconciles two snapshot files by holding identity (company name
plus investment type) and reports added, removed, modified, and unchanged
holdings with field-level changes.

Examples:
  # Basic comparison
  holdings diff --before 2024-q1.json --after 2024-q2.json

  # Labeled periods with JSON output
  holdings diff --before q1.csv --after q2.csv \
    --before-label 2024-03-31 --after-label 2024-06-30 \
    --output-format json --output-file diff.json

  # Looser tolerance, match on company name only
  holdings diff --before a.json --after b.json --epsilon 1.0 --match-by-type=false`,

	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffBeforeFile, "before", "", "path to the earlier snapshot file (required)")
	diffCmd.Flags().StringVar(&diffAfterFile, "after", "", "path to the later snapshot file (required)")
	diffCmd.Flags().StringVar(&diffBeforeLabel, "before-label", "", "period label for the earlier snapshot")
	diffCmd.Flags().StringVar(&diffAfterLabel, "after-label", "", "period label for the later snapshot")

	diffCmd.Flags().StringVarP(&diffOutputFormat, "output-format", "f", "console", "output format: console, json, csv")
	diffCmd.Flags().StringVarP(&diffOutputFile, "output-file", "o", "", "output file path (default: stdout)")

	diffCmd.Flags().Float64VarP(&diffEpsilon, "epsilon", "e", 0.01, "absolute tolerance below which numeric changes are ignored")
	diffCmd.Flags().BoolVar(&diffMatchByType, "match-by-type", true, "include investment type in the holding identity key")
	diffCmd.Flags().BoolVar(&diffIncludeUnchanged, "include-unchanged", false, "include unchanged holdings in the output")

	diffCmd.MarkFlagRequired("before")
	diffCmd.MarkFlagRequired("after")

	viper.BindPFlag("diff.epsilon", diffCmd.Flags().Lookup("epsilon"))
	viper.BindPFlag("diff.match-by-type", diffCmd.Flags().Lookup("match-by-type"))
}

func runDiff(cmd *cobra.Command, args []string) error {
	engineConfig, err := config.CreateEngineConfig(config.EngineOptions{
		Epsilon:     diffEpsilon,
		MatchByType: diffMatchByType,
	})
	if err != nil {
		return err
	}

	reportConfig, err := config.CreateReportConfig(diffOutputFormat, diffIncludeUnchanged, 0)
	if err != nil {
		return err
	}

	service, err := engine.NewService(engineConfig)
	if err != nil {
		return err
	}

	report, err := service.Diff(&engine.DiffRequest{
		BeforeFile:  diffBeforeFile,
		AfterFile:   diffAfterFile,
		BeforeLabel: diffBeforeLabel,
		AfterLabel:  diffAfterLabel,
	})
	if err != nil {
		return err
	}

	generator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return err
	}

	writer, closer, err := openOutput(diffOutputFile)
	if err != nil {
		return err
	}
	defer closer()

	return generator.WriteDiffReport(report, writer)
}

// openOutput resolves the output destination: stdout when path is empty.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.FileError(errors.CodeFilePermission, path, err).
			WithSuggestion("check that the output directory exists and is writable")
	}
	return file, func() { file.Close() }, nil
}
