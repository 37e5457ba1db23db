package index

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/cwacek/corpusidx/errs"
)

// DocLengthsFile is a supplemental artifact, not part of spec.md §6's
// four required files: a positional (by doc_index) array of each
// document's total term count, consumed only by the BM25 ranking
// engine for average-document-length normalization.
const DocLengthsFile = "doc_lengths.bin"

func saveDocLengths(path string, lengths []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.IoError, "creating doc lengths file "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var hdr [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(hdr[:], uint64(len(lengths)))
	if _, err := w.Write(hdr[:n]); err != nil {
		return errs.Wrap(errs.IoError, "writing doc lengths count", err)
	}
	for _, l := range lengths {
		n := binary.PutUvarint(hdr[:], l)
		if _, err := w.Write(hdr[:n]); err != nil {
			return errs.Wrap(errs.IoError, "writing doc length entry", err)
		}
	}
	return w.Flush()
}

// DocLengths is the loaded positional term-count array.
type DocLengths struct {
	lengths []uint64
}

// LoadDocLengths reads doc_lengths.bin if present. Because this
// artifact is supplemental, its absence is reported as a plain error
// rather than errs.CorruptIndex -- a missing doc_lengths.bin does not
// indicate a broken core index, only that BM25 runs without length
// normalization.
func LoadDocLengths(dir string) (*DocLengths, error) {
	path := dir + string(os.PathSeparator) + DocLengthsFile
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, errs.Wrap(errs.CorruptIndex, "reading doc lengths count", err)
	}

	lengths := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		l, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "reading doc length entry", err)
		}
		lengths = append(lengths, l)
	}

	return &DocLengths{lengths: lengths}, nil
}

// At returns the term count for docIndex.
func (d *DocLengths) At(docIndex uint64) (uint64, bool) {
	if docIndex >= uint64(len(d.lengths)) {
		return 0, false
	}
	return d.lengths[docIndex], true
}

// Average returns the corpus's average document length, used by BM25.
func (d *DocLengths) Average() float64 {
	if len(d.lengths) == 0 {
		return 0
	}
	var sum uint64
	for _, l := range d.lengths {
		sum += l
	}
	return float64(sum) / float64(len(d.lengths))
}
