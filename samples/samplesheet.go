package samples

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// A SheetRow is one library on the flowcell samplesheet consumed by the
// demultiplexing stage: which barcodes identify which sample on which lane.
type SheetRow struct {
	Sample   string `csv:"sample"`
	Barcode1 string `csv:"barcode_1"`
	Barcode2 string `csv:"barcode_2"`
	Library  string `csv:"library"`
	Lane     int    `csv:"lane"`
}

// ReadSampleSheet parses a tab-delimited flowcell samplesheet.
func ReadSampleSheet(path string) ([]SheetRow, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Samplesheets are tab-delimited
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true
		return r
	})

	rows := []SheetRow{}
	if err := gocsv.UnmarshalBytes(fileBytes, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	for i, row := range rows {
		if row.Sample == "" {
			return nil, pfx.Err(fmt.Errorf("samplesheet %s: row %d has no sample name", path, i+1))
		}
		if row.Lane < 1 {
			return nil, pfx.Err(fmt.Errorf("samplesheet %s: row %d (%s): lane must be >= 1, got %d",
				path, i+1, row.Sample, row.Lane))
		}
	}
	return rows, nil
}

// SheetSamples returns the distinct sample names on the sheet, in order of
// first appearance.
func SheetSamples(rows []SheetRow) []string {
	seen := map[string]bool{}
	var names []string
	for _, row := range rows {
		if !seen[row.Sample] {
			seen[row.Sample] = true
			names = append(names, row.Sample)
		}
	}
	return names
}

// Lanes returns the sorted-unique lane numbers present on the sheet.
func Lanes(rows []SheetRow) []int {
	seen := map[int]bool{}
	var lanes []int
	for _, row := range rows {
		if !seen[row.Lane] {
			seen[row.Lane] = true
			lanes = append(lanes, row.Lane)
		}
	}
	sort.Ints(lanes)
	return lanes
}
