// Package main implements the run command, which builds the pipeline
// workflow from the configuration and executes it (or plots it).
package main

import (
	"fmt"

	sp "github.com/scipipe/scipipe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper357/viral-ngs/samples"
	"github.com/harper357/viral-ngs/workflow"
)

var (
	procsRegex string
	graphFile  string
	maxTasks   int
)

// runCmd executes the pipeline
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sequencing pipeline",
	Long: `Run the sequencing pipeline over the samples named in the
configured sample-set files.

With --graph, the wired workflow graph is written as a GraphViz dot file
instead of being executed. With --procs, only processes whose names match
the regex (and their upstream dependencies) are run.`,
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if maxTasks > 0 {
		cfg.MaxTasks = maxTasks
	}

	var sheet []samples.SheetRow
	if cfg.SampleSheet != "" {
		sheet, err = samples.ReadSampleSheet(cfg.SampleSheet)
		if err != nil {
			return fmt.Errorf("failed to read samplesheet: %w", err)
		}
	}

	sets, err := workflow.LoadSampleSets(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve sample sets: %w", err)
	}
	logger.Info("resolved sample sets",
		zap.Int("depletion", len(sets.Depletion)),
		zap.Int("assembly", len(sets.Assembly)),
		zap.Int("interhost", len(sets.Interhost)),
		zap.Int("intrahost", len(sets.Intrahost)))

	sp.InitLogInfo()
	wf := workflow.Build(cfg, sheet, sets)

	if graphFile != "" {
		wf.PlotGraph(graphFile)
		logger.Info("wrote workflow graph", zap.String("file", graphFile))
		return nil
	}

	logger.Info("starting workflow",
		zap.String("procs", procsRegex),
		zap.Int("max_tasks", cfg.MaxTasks))
	wf.RunToRegex(procsRegex)
	return nil
}

func init() {
	runCmd.Flags().StringVarP(&procsRegex, "procs", "p", ".*", "Regex selecting which processes to run")
	runCmd.Flags().StringVar(&graphFile, "graph", "", "Write the workflow graph to this dot file instead of running")
	runCmd.Flags().IntVar(&maxTasks, "maxtasks", 0, "Override the configured max concurrent tasks")
}
