package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/road-safety-reports/internal/adapter/csvsource"
)

func runGenmock(cmd *cobra.Command, _ []string) error {
	if mockRows <= 0 {
		return fmt.Errorf("--rows must be positive, got %d", mockRows)
	}
	if err := os.MkdirAll(filepath.Dir(mockOut), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(mockOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", mockOut, err)
	}
	bw := bufio.NewWriter(f)
	if err := csvsource.WriteSynthetic(bw, csvsource.SyntheticOptions{Rows: mockRows, Seed: mockSeed}); err != nil {
		_ = f.Close()
		return fmt.Errorf("write synthetic dataset: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", mockOut, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", mockOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s (seed %d)\n", mockRows, mockOut, mockSeed)
	return nil
}
