package index

import (
	"path/filepath"
	"time"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/codec"
	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/errs"
	"github.com/cwacek/corpusidx/lexicon"
	"github.com/cwacek/corpusidx/normalize"
)

const (
	PostingsFile  = "postings.bin"
	DictionaryFile = "dictionary.bin"
	DocIdsFile    = "doc_ids.bin"
	StatsFile     = "stats.json"
)

// Builder implements the single-pass Index Builder algorithm of
// spec.md §4.3: accumulate term/doc_index/tf triples in memory, then
// on end-of-stream emit the dictionary and postings blob in ascending
// term order.
type Builder struct {
	acc    *lexicon.Accumulator
	docIds *docstore.DocIds
	seen   map[string]bool

	numPostings int
	// docLengths holds each document's total (non-distinct) term
	// count, positional by doc_index. It is not part of the core
	// artifact set spec.md §6 requires; it is persisted separately
	// (doc_lengths.bin) purely to support the supplemental BM25
	// ranking engine, which needs average document length.
	docLengths []uint64
}

func NewBuilder() *Builder {
	return &Builder{
		acc:    lexicon.NewAccumulator(),
		docIds: docstore.NewBuilder(),
		seen:   make(map[string]bool),
	}
}

// Add processes one (doc_id, raw_text) record: assigns it the next
// doc_index, normalizes its body, collapses per-document term
// frequencies, and folds them into the accumulator. A repeated doc_id
// fails the build with errs.DuplicateDocId (spec.md §4.3 Failure
// semantics); a record with empty normalized text is still assigned a
// doc_index and still counts toward N.
func (b *Builder) Add(rec docstore.Record) error {
	if b.seen[rec.DocId] {
		return errs.New(errs.DuplicateDocId, "duplicate doc_id: "+rec.DocId)
	}
	b.seen[rec.DocId] = true

	docIndex := b.docIds.Append(rec.DocId)

	allTerms := normalize.Terms(rec.Body)
	termFreq := make(map[string]int)
	for _, term := range allTerms {
		termFreq[term]++
	}

	for term, tf := range termFreq {
		b.acc.AddTerm(term, docIndex, tf)
		b.numPostings++
	}

	b.docLengths = append(b.docLengths, uint64(len(allTerms)))

	log.Debugf("Indexed %s as doc_index %d with %d distinct terms", rec.DocId, docIndex, len(termFreq))
	return nil
}

// Finish writes the four artifacts to outputDir and returns the
// resulting Stats. started is the build's wall-clock start time, used
// only to compute build_ms for observability.
func (b *Builder) Finish(outputDir string, started time.Time) (*Stats, error) {
	dict := NewDictionary()

	f, err := createPostingsFile(filepath.Join(outputDir, PostingsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var offset uint64
	for _, term := range b.acc.Terms() {
		postings, _ := b.acc.Postings(term)
		encoded := codec.Encode(postings)

		if _, err := f.Write(encoded); err != nil {
			return nil, errs.Wrap(errs.IoError, "writing postings for "+term, err)
		}

		dict.Set(term, DictEntry{
			Offset: offset,
			Length: uint64(len(encoded)),
			Df:     uint64(len(postings)),
		})
		offset += uint64(len(encoded))
	}

	if err := f.sync(); err != nil {
		return nil, err
	}

	if err := dict.Save(filepath.Join(outputDir, DictionaryFile)); err != nil {
		return nil, err
	}
	if err := b.docIds.Save(filepath.Join(outputDir, DocIdsFile)); err != nil {
		return nil, errs.Wrap(errs.IoError, "saving doc_ids", err)
	}
	if len(b.docLengths) > 0 {
		if err := saveDocLengths(filepath.Join(outputDir, DocLengthsFile), b.docLengths); err != nil {
			return nil, err
		}
	}

	stats := &Stats{
		N:           b.docIds.Len(),
		NumTerms:    dict.Len(),
		NumPostings: b.numPostings,
		BuildMs:     time.Since(started).Milliseconds(),
	}
	if err := stats.Save(filepath.Join(outputDir, StatsFile)); err != nil {
		return nil, err
	}

	log.Infof("Built index: %d documents, %d terms, %d postings in %dms",
		stats.N, stats.NumTerms, stats.NumPostings, stats.BuildMs)

	return stats, nil
}
