// Command roadsafety generates road accident safety reports from a CSV
// dataset and serves them over a read-only HTTP API.
//
// Usage:
//
//	roadsafety generate --data data/accidents.csv --out data/reports
//	roadsafety serve
//	roadsafety validate --dir data/reports
//	roadsafety genmock --rows 5000 --seed 42 --out data/accidents.csv
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataPath   string
	reportsDir string
	validateIn string
	mockRows   int
	mockSeed   uint64
	mockOut    string

	rootCmd = &cobra.Command{
		Use:           "roadsafety",
		Short:         "Batch road accident analytics and report API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Load the accident dataset and write every report artifact",
		Args:  cobra.NoArgs,
		RunE:  runGenerate, // generate.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve generated reports and predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe, // serve.go
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check written report artifacts for internal consistency",
		Args:  cobra.NoArgs,
		RunE:  runValidate, // validate.go
	}

	genmockCmd = &cobra.Command{
		Use:   "genmock",
		Short: "Write a deterministic synthetic accident dataset",
		Args:  cobra.NoArgs,
		RunE:  runGenmock, // genmock.go
	}
)

func init() {
	generateCmd.Flags().StringVar(&dataPath, "data", "", "accident CSV path (overrides DATA_PATH)")
	generateCmd.Flags().StringVar(&reportsDir, "out", "", "report output directory (overrides REPORTS_DIR)")

	validateCmd.Flags().StringVar(&validateIn, "dir", "data/reports", "directory holding generated reports")

	genmockCmd.Flags().IntVar(&mockRows, "rows", 5000, "number of accident rows")
	genmockCmd.Flags().Uint64Var(&mockSeed, "seed", 42, "random seed")
	genmockCmd.Flags().StringVar(&mockOut, "out", "data/accidents.csv", "output CSV path")

	rootCmd.AddCommand(generateCmd, serveCmd, validateCmd, genmockCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
