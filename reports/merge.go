// Package reports merges per-sample report files into batch summary
// artifacts.
//
// Per-sample reports are line-oriented text files whose first line is a
// header describing the columns of the remaining rows. The merge keeps the
// header of the first file and requires every other file in the batch to
// carry a byte-identical header, so that schema drift between samples is
// caught instead of silently concatenated.
package reports

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

// A HeaderMismatchError reports an input file whose header line differs from
// the header of the first file in the batch. Header strings are kept raw,
// including any line terminator.
type HeaderMismatchError struct {
	Path     string
	Header   string
	Expected string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("reports: header of %s (%q) does not match first header (%q)",
		e.Path, e.Header, e.Expected)
}

// CatFilesWithHeader concatenates the report files named by inPaths into a
// single file at outPath. The first input's header line is written exactly
// once, followed by the body lines (everything after the header) of every
// input, byte for byte, in input order. Any input whose header is not
// byte-identical to the first stops the merge with a HeaderMismatchError.
//
// An empty inPaths produces an empty output file, not an error.
//
// The output is written in place with truncate-and-write semantics: on
// error, output already written for earlier inputs is left behind at
// outPath, and the caller must treat it as unusable. Callers that need an
// all-or-nothing summary should write to a scratch path and rename.
func CatFilesWithHeader(inPaths []string, outPath string) error {
	outf, err := os.Create(outPath)
	if err != nil {
		return pfx.Err(err)
	}
	defer outf.Close()

	w := bufio.NewWriter(outf)
	var header *string
	for _, path := range inPaths {
		header, err = appendReport(w, path, header)
		if err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return pfx.Err(err)
	}
	return pfx.Err(outf.Close())
}

// appendReport copies one report into w. A nil header means no file has been
// seen yet: this file's header is written and becomes the batch header.
func appendReport(w *bufio.Writer, path string, header *string) (*string, error) {
	inf, err := os.Open(path)
	if err != nil {
		return header, pfx.Err(err)
	}
	defer inf.Close()

	r := bufio.NewReader(inf)
	h, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return header, pfx.Err(err)
	}
	if header == nil {
		if _, err := w.WriteString(h); err != nil {
			return header, pfx.Err(err)
		}
		header = &h
	} else if h != *header {
		return header, &HeaderMismatchError{Path: path, Header: h, Expected: *header}
	}
	if _, err := io.Copy(w, r); err != nil {
		return header, pfx.Err(err)
	}
	return header, nil
}
