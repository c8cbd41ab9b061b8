// Package samples resolves the sample sets a pipeline run operates on: flat
// sample-name lists for the per-sample stages, and the flowcell samplesheet
// that drives demultiplexing.
package samples

import (
	"bufio"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// ReadSampleNames reads a newline-delimited sample list from path and
// returns the trimmed, non-empty lines in file order. Blank lines are
// skipped. Duplicates are not collapsed: order of appearance determines the
// ordering of every downstream per-sample artifact, including the merged
// summary reports.
func ReadSampleNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	return names, nil
}
