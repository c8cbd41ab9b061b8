package fasta

import (
	"fmt"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// Transpose regroups per-sample genome FASTAs into per-chromosome FASTAs for
// multiple alignment. Each input file holds one sample's genome with the
// same number of sequences (chromosomes or segments) in the same order; the
// k-th output file holds the k-th sequence of every sample, in input order.
//
// Output files are written to outDir as <prefix>_<k>.fasta (k counting from
// 0, matching the chromosome index) and their paths are returned in
// chromosome order.
func Transpose(inPaths []string, outDir, prefix string) ([]string, error) {
	if len(inPaths) == 0 {
		return nil, pfx.Err(fmt.Errorf("fasta: no input sequences"))
	}

	perSample := make([][]Record, 0, len(inPaths))
	for _, path := range inPaths {
		records, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(perSample) > 0 && len(records) != len(perSample[0]) {
			return nil, pfx.Err(fmt.Errorf("fasta: %s has %d sequences, %s has %d; inputs must all have the same number of sequences",
				path, len(records), inPaths[0], len(perSample[0])))
		}
		perSample = append(perSample, records)
	}

	var outPaths []string
	for chr := range perSample[0] {
		group := make([]Record, len(perSample))
		for i := range perSample {
			group[i] = perSample[i][chr]
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("%s_%d.fasta", prefix, chr))
		if err := WriteFile(outPath, group); err != nil {
			return nil, err
		}
		outPaths = append(outPaths, outPath)
	}
	return outPaths, nil
}
