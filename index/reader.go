package index

import (
	"os"

	"github.com/cwacek/corpusidx/codec"
	"github.com/cwacek/corpusidx/errs"
)

// Postings looks up term and, if present, positionally reads and
// decodes its postings list. It performs one contiguous read of
// exactly Length bytes at Offset (spec.md §4.4 latency budget: no
// shared seek cursor, safe for concurrent callers each opening their
// own handle).
func (idx *Index) Postings(term string) ([]codec.Posting, bool, error) {
	entry, ok := idx.Dict.Get(term)
	if !ok {
		return nil, false, nil
	}

	f, err := os.Open(idx.postingsPath)
	if err != nil {
		return nil, false, errs.Wrap(errs.IoError, "opening postings file", err)
	}
	defer f.Close()

	buf := make([]byte, entry.Length)
	if _, err := f.ReadAt(buf, int64(entry.Offset)); err != nil {
		return nil, false, errs.Wrap(errs.IoError, "reading postings for "+term, err)
	}

	postings, err := codec.Decode(buf, int(entry.Df))
	if err != nil {
		return nil, false, errs.Wrap(errs.CorruptIndex, "decoding postings for "+term, err)
	}

	return postings, true, nil
}
