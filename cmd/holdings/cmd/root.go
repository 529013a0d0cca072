package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spergel/new-finance-sub001/pkg/logger"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Portfolio snapshot diff and analytics tool",
	Long: `Holdings is a command-line tool for comparing portfolio holding
snapshots across reporting periods and computing distributional and risk
analytics over a single snapshot.

Examples:
  holdings diff --before 2024-q1.json --after 2024-q2.json
  holdings analyze --snapshot 2024-q2.json --period 2024-06-30 --output-format json
  holdings version`,
	Version: getVersionString(),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
			os.Exit(1)
		}
	}

	viper.SetEnvPrefix("HOLDINGS")
	viper.AutomaticEnv()

	level := logger.InfoLevel
	if viper.GetBool("verbose") {
		level = logger.DebugLevel
	}
	if err := logger.Configure(&logger.Config{
		Level:  level,
		Format: logger.TextFormat,
		Output: os.Stderr,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %s\n", err)
		os.Exit(1)
	}
}

func getVersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
