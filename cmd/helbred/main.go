package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nyborg-rpa/helbredstillaeg/internal/bundle"
	"github.com/nyborg-rpa/helbredstillaeg/internal/calculation"
	"github.com/nyborg-rpa/helbredstillaeg/internal/config"
	"github.com/nyborg-rpa/helbredstillaeg/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "helbred",
	Short: "KP helbredstillæg eligibility calculator",
	Long:  "Decides eligibility and amount for health allowance cases from the per-case KP/SharePoint data drops",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the health allowance decision for one case",
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, _ := cmd.Flags().GetInt("id")
		configFile, _ := cmd.Flags().GetString("config")
		dataRoot, _ := cmd.Flags().GetString("data")
		nowFlag, _ := cmd.Flags().GetString("now")
		formatName, _ := cmd.Flags().GetString("format")

		cfg := config.Default()
		if configFile != "" {
			loaded, err := config.LoadFromFile(configFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if dataRoot != "" {
			cfg.DataRoot = dataRoot
		}

		formatter := output.GetFormatterByName(formatName)
		if formatter == nil {
			return fmt.Errorf("unknown output format %q", formatName)
		}

		logger, err := cfg.Logger.BuildLogger()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		now := cfg.EvaluationTime(time.Now())
		if nowFlag != "" {
			if now, err = time.Parse("2006-01-02", nowFlag); err != nil {
				return fmt.Errorf("--now must be a YYYY-MM-DD date: %w", err)
			}
		}

		startedAt := time.Now()
		logger.Info("evaluating case", zap.Int("case_id", caseID), zap.Time("as_of", now))

		data, err := bundle.NewLoader(cfg.DataRoot).Load(caseID)
		if err != nil {
			return err
		}

		engine := calculation.NewEngine(now, logger)
		result, err := engine.Evaluate(data)
		if err != nil {
			return err
		}

		// A rejection is a normal decision, not a failure; route it to
		// manual review with the operator text where one exists.
		if !result.Eligible {
			if msg, ok := result.Reason.ManualMessage(data.Case.Category); ok {
				logger.Info("routed to manual review", zap.String("message", msg))
			}
		}

		rendered, err := formatter.Format(output.NewEnvelope(caseID, startedAt, result))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(rendered)
		return err
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "helbred %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	calculateCmd.Flags().Int("id", 0, "Tracking-list id of the case to calculate")
	calculateCmd.Flags().String("config", "", "Path to a YAML configuration file")
	calculateCmd.Flags().String("data", "", "Data root directory (overrides config)")
	calculateCmd.Flags().String("now", "", "Evaluate as of this date (YYYY-MM-DD) instead of today")
	calculateCmd.Flags().String("format", "text", "Output format: text or json")
	_ = calculateCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
