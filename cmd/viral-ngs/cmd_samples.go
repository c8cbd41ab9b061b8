// Package main implements the samples command, which resolves a pipeline
// flavor's sample-set file and prints the sample names.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper357/viral-ngs/samples"
)

// samplesCmd resolves and prints a sample set
var samplesCmd = &cobra.Command{
	Use:   "samples <flavor>",
	Short: "Print the resolved sample set for a pipeline flavor",
	Long: `Print the sample names of one pipeline flavor (depletion, assembly,
interhost or intrahost), resolved from the sample-set file the configuration
names for that flavor. Names print one per line, in file order.`,
	Args: cobra.ExactArgs(1),
	RunE: runSamples,
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := cfg.SamplesFile(args[0])
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no sample-set file configured for flavor %q", args[0])
	}

	names, err := samples.ReadSampleNames(path)
	if err != nil {
		return fmt.Errorf("failed to resolve sample set: %w", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
