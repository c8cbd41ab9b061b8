package samples

import (
	"bufio"
	"fmt"
	"os"

	"github.com/carbocation/pfx"
)

// WriteLibraryParams writes the tab-delimited LIBRARY_PARAMS file Picard's
// IlluminaBasecallsToSam expects for one lane: one row per library on that
// lane, routing its barcode pair to the per-sample output BAM named by
// bamPathFor.
func WriteLibraryParams(rows []SheetRow, lane int, outPath string, bamPathFor func(sample string) string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "OUTPUT\tSAMPLE_ALIAS\tLIBRARY_NAME\tBARCODE_1\tBARCODE_2")
	n := 0
	for _, row := range rows {
		if row.Lane != lane {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			bamPathFor(row.Sample), row.Sample, row.Library, row.Barcode1, row.Barcode2)
		n++
	}
	if n == 0 {
		return pfx.Err(fmt.Errorf("samplesheet has no rows for lane %d", lane))
	}
	if err := w.Flush(); err != nil {
		return pfx.Err(err)
	}
	return pfx.Err(f.Close())
}
