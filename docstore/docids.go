// Package docstore holds the ordered doc_id table and the line-delimited
// document stream format described in spec.md §6. The table's
// positional index is exactly the doc_index the codec encodes into
// postings lists, so docstore is the only place a doc_index is ever
// turned back into a doc_id string.
package docstore

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/cwacek/corpusidx/errs"
)

// DocIds is the ordered, positional doc_index -> doc_id mapping
// persisted to doc_ids.bin. It is read-only after Load or after a
// build completes.
type DocIds struct {
	ids []string
}

// NewBuilder returns an empty DocIds ready to accumulate entries in
// doc_index order during a build.
func NewBuilder() *DocIds {
	return &DocIds{ids: make([]string, 0, 1024)}
}

// Append adds the next doc_id in sequence and returns its assigned
// doc_index.
func (d *DocIds) Append(id string) uint64 {
	d.ids = append(d.ids, id)
	return uint64(len(d.ids) - 1)
}

// Len returns N, the number of documents in the table.
func (d *DocIds) Len() int { return len(d.ids) }

// At resolves a doc_index back to its doc_id string.
func (d *DocIds) At(index uint64) (string, bool) {
	if index >= uint64(len(d.ids)) {
		return "", false
	}
	return d.ids[index], true
}

// Save writes the length-prefixed doc_id table to path: a vbyte count
// of entries, followed for each entry by a vbyte length and its raw
// bytes, in doc_index order.
func (d *DocIds) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IoError, "creating "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	var hdr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], uint64(len(d.ids)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(errs.IoError, "writing count to "+path, err)
	}

	for _, id := range d.ids {
		n := binary.PutUvarint(hdr[:], uint64(len(id)))
		if _, err := w.Write(hdr[:n]); err != nil {
			return errs.Wrap(errs.IoError, "writing entry length to "+path, err)
		}
		if _, err := w.WriteString(id); err != nil {
			return errs.Wrap(errs.IoError, "writing entry to "+path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.IoError, "flushing "+path, err)
	}
	return nil
}

// Load reads a doc_ids.bin file written by Save. Decode failures are
// reported as errs.CorruptIndex, matching index.LoadDictionary and
// index.LoadStats, so index.Load's exit-code mapping is consistent
// regardless of which of the three artifacts is malformed.
func Load(path string) (*DocIds, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "opening "+path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, errs.Wrap(errs.CorruptIndex, "reading count from "+path, err)
	}

	ids := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		strLen, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading entry length from "+path, err)
		}

		buf := make([]byte, strLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading entry from "+path, err)
		}
		ids = append(ids, string(buf))
	}

	return &DocIds{ids: ids}, nil
}
