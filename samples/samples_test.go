package samples

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadSampleNames(t *testing.T) {
	path := writeFile(t, "samples.txt", "S1\nS2\n  S3 \n\nS4\n")

	names, err := ReadSampleNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, names)
}

func TestReadSampleNamesBlanksAndWhitespaceOnly(t *testing.T) {
	path := writeFile(t, "samples.txt", "\n  \n\t\nG1234.1\n\n")

	names, err := ReadSampleNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"G1234.1"}, names)
}

func TestReadSampleNamesKeepsDuplicatesAndOrder(t *testing.T) {
	path := writeFile(t, "samples.txt", "B\nA\nB\n")

	names, err := ReadSampleNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "B"}, names)
}

func TestReadSampleNamesEmptyFile(t *testing.T) {
	path := writeFile(t, "samples.txt", "")

	names, err := ReadSampleNames(path)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadSampleNamesNoTrailingNewline(t *testing.T) {
	path := writeFile(t, "samples.txt", "S1\nS2")

	names, err := ReadSampleNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, names)
}

func TestReadSampleNamesMissingFile(t *testing.T) {
	_, err := ReadSampleNames(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadSampleSheet(t *testing.T) {
	sheet := "sample\tbarcode_1\tbarcode_2\tlibrary\tlane\n" +
		"G1234.1\tACGTACGT\tTGCATGCA\tlib1\t1\n" +
		"G1234.2\tCCCGGGAA\tTTTACGCA\tlib1\t1\n" +
		"G1234.1\tACGTACGT\tTGCATGCA\tlib2\t2\n"
	path := writeFile(t, "flowcell.txt", sheet)

	rows, err := ReadSampleSheet(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, SheetRow{Sample: "G1234.1", Barcode1: "ACGTACGT", Barcode2: "TGCATGCA", Library: "lib1", Lane: 1}, rows[0])

	assert.Equal(t, []string{"G1234.1", "G1234.2"}, SheetSamples(rows))
	assert.Equal(t, []int{1, 2}, Lanes(rows))
}

func TestReadSampleSheetRejectsBadRows(t *testing.T) {
	for name, sheet := range map[string]string{
		"missing sample": "sample\tbarcode_1\tbarcode_2\tlibrary\tlane\n\tACGT\tTGCA\tlib1\t1\n",
		"zero lane":      "sample\tbarcode_1\tbarcode_2\tlibrary\tlane\nS1\tACGT\tTGCA\tlib1\t0\n",
	} {
		path := writeFile(t, "flowcell.txt", sheet)
		_, err := ReadSampleSheet(path)
		assert.Error(t, err, name)
	}
}
