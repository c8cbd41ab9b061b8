package reports

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCatFilesWithHeader(t *testing.T) {
	dir := t.TempDir()
	in1 := writeFile(t, dir, "S1.txt", "id,depth\n1,30\n")
	in2 := writeFile(t, dir, "S2.txt", "id,depth\n2,45\n")
	out := filepath.Join(dir, "summary.txt")

	require.NoError(t, CatFilesWithHeader([]string{in1, in2}, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "id,depth\n1,30\n2,45\n", string(got))
}

func TestCatFilesWithHeaderLineCount(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeFile(t, dir, "a.txt", "h\n1\n2\n3\n"),
		writeFile(t, dir, "b.txt", "h\n"),
		writeFile(t, dir, "c.txt", "h\n4\n5\n"),
	}
	out := filepath.Join(dir, "out.txt")

	require.NoError(t, CatFilesWithHeader(inputs, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(got), "\n"), "\n")
	assert.Len(t, lines, 1+3+0+2)
	assert.Equal(t, "h", lines[0])
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, lines[1:])
}

func TestCatFilesWithHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	in1 := writeFile(t, dir, "S1.txt", "id,depth\n1,30\n")
	in2 := writeFile(t, dir, "S2.txt", "id,coverage\n2,45\n")
	out := filepath.Join(dir, "summary.txt")

	err := CatFilesWithHeader([]string{in1, in2}, out)
	require.Error(t, err)

	var mismatch *HeaderMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, in2, mismatch.Path)
	assert.Equal(t, "id,coverage\n", mismatch.Header)
	assert.Equal(t, "id,depth\n", mismatch.Expected)
	assert.Contains(t, err.Error(), in2)
	assert.Contains(t, err.Error(), "id,coverage")
	assert.Contains(t, err.Error(), "id,depth")
}

func TestCatFilesWithHeaderNoInputs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.txt")

	require.NoError(t, CatFilesWithHeader(nil, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatFilesWithHeaderSingleInput(t *testing.T) {
	dir := t.TempDir()
	content := "chr\tpos\tdepth\nKJ660346\t1\t132\nKJ660346\t2\t130\n"
	in := writeFile(t, dir, "only.txt", content)
	out := filepath.Join(dir, "out.txt")

	require.NoError(t, CatFilesWithHeader([]string{in}, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestCatFilesWithHeaderMissingInput(t *testing.T) {
	dir := t.TempDir()
	in1 := writeFile(t, dir, "S1.txt", "h\n1\n")
	missing := filepath.Join(dir, "nope.txt")
	out := filepath.Join(dir, "out.txt")

	err := CatFilesWithHeader([]string{in1, missing}, out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCatFilesWithHeaderUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "S1.txt", "h\n1\n")

	err := CatFilesWithHeader([]string{in}, filepath.Join(dir, "no", "such", "dir", "out.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCatFilesWithHeaderTruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "S1.txt", "h\n1\n")
	out := writeFile(t, dir, "out.txt", "stale content from a previous run\nwith more lines than the new one\n")

	require.NoError(t, CatFilesWithHeader([]string{in}, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "h\n1\n", string(got))
}

// Merging then splitting on the shared header should reconstruct each
// original body section in order.
func TestCatFilesWithHeaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bodies := []string{"1,30\n", "2,45\n3,50\n", "4,1\n"}
	var inputs []string
	for i, body := range bodies {
		inputs = append(inputs, writeFile(t, dir, string(rune('A'+i))+".txt", "id,depth\n"+body))
	}
	out := filepath.Join(dir, "summary.txt")
	require.NoError(t, CatFilesWithHeader(inputs, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	merged := string(got)
	require.True(t, strings.HasPrefix(merged, "id,depth\n"))
	assert.Equal(t, strings.Join(bodies, ""), strings.TrimPrefix(merged, "id,depth\n"))
}
