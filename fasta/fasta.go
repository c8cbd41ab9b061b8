// Package fasta contains the minimal FASTA reading and writing the pipeline
// needs for shuffling genome files between stages. Sequence content is
// opaque: no alphabet validation, bases are kept as read.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// A Record is one FASTA sequence: the full header text after '>' and the
// concatenated sequence lines.
type Record struct {
	ID  string
	Seq []byte
}

// lineWidth is the wrap width used when writing sequences.
const lineWidth = 60

// Parse reads all records from r. A record with an empty sequence is legal;
// sequence data before the first header is an error.
func Parse(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	// Sequence lines can be very long when files are written unwrapped.
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var records []Record
	started := false
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			records = append(records, Record{ID: strings.TrimSpace(string(line[1:]))})
			started = true
			continue
		}
		if !started {
			return nil, pfx.Err(fmt.Errorf("fasta: sequence data before first header"))
		}
		cur := &records[len(records)-1]
		cur.Seq = append(cur.Seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	return records, nil
}

// ReadFile parses every record in the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()
	return Parse(f)
}

// Write writes records to w, wrapping sequence lines at 60 columns.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := fmt.Fprintf(bw, ">%s\n", rec.ID); err != nil {
			return pfx.Err(err)
		}
		for off := 0; off < len(rec.Seq); off += lineWidth {
			end := off + lineWidth
			if end > len(rec.Seq) {
				end = len(rec.Seq)
			}
			if _, err := fmt.Fprintf(bw, "%s\n", rec.Seq[off:end]); err != nil {
				return pfx.Err(err)
			}
		}
	}
	return pfx.Err(bw.Flush())
}

// WriteFile writes records to a new file at path.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()
	if err := Write(f, records); err != nil {
		return err
	}
	return pfx.Err(f.Close())
}
