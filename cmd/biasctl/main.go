// biasctl analyzes datasets from the command line without running the
// web server. It shares the exact summarization pipeline the server
// uses, so scores match byte for byte.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"biaslens/internal/bias"
	"biaslens/internal/config"
	"biaslens/internal/dataset"
)

var (
	flagQuiet  bool
	flagPretty bool
)

var rootCmd = &cobra.Command{
	Use:   "biasctl",
	Short: "biasctl summarizes gender bias in tabular datasets",
	Long: `biasctl inspects a CSV or Excel file, finds its gender column,
and prints the gender distribution together with a bias score and label.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a CSV or Excel file and print the bias summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := dataset.ValidateUpload(path, info.Size(), 0); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		table, err := dataset.Parse(f, path)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
		summarizer := bias.NewSummarizer(logger, analysisConfig())

		summary, err := summarizer.Summarize(cmd.Context(), table)
		if err != nil {
			return err
		}

		return printJSON(summary)
	},
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Print the bias label catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		details := bias.LabelDetails()
		names := make([]string, 0, len(details))
		for name := range details {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-24s %s\n", name, details[name])
		}
		return nil
	},
}

func analysisConfig() bias.Config {
	// Environment overrides still apply; a missing config file is fine.
	if cfg, err := config.Load(); err == nil {
		return cfg.Analysis
	}
	return bias.DefaultConfig()
}

func logLevel() slog.Level {
	if flagQuiet {
		return slog.LevelError
	}
	return slog.LevelInfo
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	if flagPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress logging")
	analyzeCmd.Flags().BoolVar(&flagPretty, "pretty", true, "indent JSON output")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(labelsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
