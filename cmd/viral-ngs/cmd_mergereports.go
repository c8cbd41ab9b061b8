// Package main implements the merge-reports command, which consolidates
// per-sample report files into a single summary without re-running the
// pipeline.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper357/viral-ngs/reports"
	"github.com/harper357/viral-ngs/samples"
)

var (
	mergeKind string
	mergeOut  string
)

// mergeReportsCmd merges per-sample reports into one summary file
var mergeReportsCmd = &cobra.Command{
	Use:   "merge-reports [report-file ...]",
	Short: "Merge per-sample reports into a batch summary",
	Long: `Merge per-sample report files into a single summary that carries
exactly one header line. All inputs must agree on their header; a mismatch
aborts the merge.

With positional arguments, those files are merged in the given order into
the file named by --out. Without arguments, --kind selects a report kind
(coverage or spike_count); the inputs are then the configured report paths
of the assembly sample set, in sample-list order, and the summary lands at
the configured summary path.`,
	RunE: runMergeReports,
}

func runMergeReports(cmd *cobra.Command, args []string) error {
	inPaths := args
	outPath := mergeOut

	if len(args) == 0 {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Samples.Assembly == "" {
			return fmt.Errorf("no assembly sample-set file configured")
		}
		names, err := samples.ReadSampleNames(cfg.Samples.Assembly)
		if err != nil {
			return fmt.Errorf("failed to resolve sample set: %w", err)
		}
		inPaths = cfg.ReportPaths(names, mergeKind)
		if outPath == "" {
			outPath = cfg.SummaryPath(mergeKind)
		}
	} else if outPath == "" {
		return fmt.Errorf("--out is required when report files are given explicitly")
	}

	if err := reports.CatFilesWithHeader(inPaths, outPath); err != nil {
		return fmt.Errorf("failed to merge reports: %w", err)
	}
	logger.Info("merged reports",
		zap.Int("inputs", len(inPaths)),
		zap.String("summary", outPath))
	return nil
}

func init() {
	mergeReportsCmd.Flags().StringVarP(&mergeKind, "kind", "k", "coverage", "Report kind to merge (coverage, spike_count)")
	mergeReportsCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "Summary output path")
}
