// Package index implements the on-disk index format and the Index
// Builder (spec.md §4.3, §4.5): the hash-table directory plus the
// compressed postings file, and the single-pass accumulation
// algorithm that produces them.
package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cwacek/corpusidx/errs"
)

// DictEntry is one dictionary record: where a term's postings list
// lives in the postings blob, how long the encoded list is, and its
// document frequency.
type DictEntry struct {
	Offset uint64
	Length uint64
	Df     uint64
}

// Dictionary is the term -> DictEntry mapping, persisted as described
// in spec.md §4.5.
type Dictionary struct {
	entries map[string]DictEntry
	// terms holds ascending byte order for stable re-iteration (e.g.
	// for diagnostics); not required for lookup.
	terms []string
}

func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string]DictEntry)}
}

// Set records or overwrites a dictionary entry. The caller is
// responsible for presenting terms in ascending order when building,
// per spec.md §4.3 step 3.a; Set does not itself sort.
func (d *Dictionary) Set(term string, e DictEntry) {
	if _, exists := d.entries[term]; !exists {
		d.terms = append(d.terms, term)
	}
	d.entries[term] = e
}

// Get performs the O(1) expected dictionary lookup of spec.md §4.5.
func (d *Dictionary) Get(term string) (DictEntry, bool) {
	e, ok := d.entries[term]
	return e, ok
}

func (d *Dictionary) Len() int { return len(d.entries) }

// Save persists the dictionary as: vbyte(count), then per term in
// ascending byte order [vbyte(term_len), term_bytes, vbyte(offset),
// vbyte(length), vbyte(df)].
func (d *Dictionary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IoError, "creating dictionary file "+path, err)
	}
	defer f.Close()

	terms := make([]string, 0, len(d.entries))
	for t := range d.entries {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	w := bufio.NewWriter(f)
	var hdr [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(hdr[:], uint64(len(terms)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(errs.IoError, "writing dictionary count", err)
	}

	for _, term := range terms {
		e := d.entries[term]

		n := binary.PutUvarint(hdr[:], uint64(len(term)))
		if _, err := w.Write(hdr[:n]); err != nil {
			return errs.Wrap(errs.IoError, "writing term length for "+term, err)
		}
		if _, err := w.WriteString(term); err != nil {
			return errs.Wrap(errs.IoError, "writing term bytes for "+term, err)
		}

		for _, v := range []uint64{e.Offset, e.Length, e.Df} {
			n := binary.PutUvarint(hdr[:], v)
			if _, err := w.Write(hdr[:n]); err != nil {
				return errs.Wrap(errs.IoError, "writing dictionary entry for "+term, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.IoError, "flushing dictionary file", err)
	}
	return nil
}

// LoadDictionary reconstructs a Dictionary in one linear pass.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "opening dictionary file "+path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, errs.Wrap(errs.CorruptIndex, "reading dictionary count", err)
	}

	d := &Dictionary{entries: make(map[string]DictEntry, count), terms: make([]string, 0, count)}

	for i := uint64(0); i < count; i++ {
		termLen, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, fmt.Sprintf("reading term %d length", i), err)
		}

		buf := make([]byte, termLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, fmt.Sprintf("reading term %d bytes", i), err)
		}
		term := string(buf)

		offset, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading offset for "+term, err)
		}
		length, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading length for "+term, err)
		}
		df, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading df for "+term, err)
		}

		d.Set(term, DictEntry{Offset: offset, Length: length, Df: df})
	}

	return d, nil
}
