// Package lexicon implements the Index Builder's in-memory term
// accumulator (spec.md §4.3 step 1-2). It is grounded on the teacher's
// indexer/lexicon.go TrieLexicon: a radix trie keyed by term bytes,
// each entry holding an accumulator for that term's unaggregated
// postings. Unlike the teacher, which stores one positional posting
// list per term directly in the trie node, this accumulator stores a
// goskiplist ordered by doc_index, grounded on the teacher's
// indexer/positional_postinglist.go use of the same library — here
// repurposed to give the §5 concurrency extension (per-shard
// accumulation, deterministic merge) a ready-made ordered structure
// to merge instead of a plain append-then-sort.
package lexicon

import (
	"sort"

	radix "github.com/cwacek/radix-go"
	"github.com/ryszard/goskiplist/skiplist"

	"github.com/cwacek/corpusidx/codec"
)

// termAccumulator is the radix.RadixTreeEntry stored per distinct
// term: a skiplist of doc_index -> tf, always queried in ascending
// doc_index order because records are assigned doc_index serially.
type termAccumulator struct {
	text string
	pl   *skiplist.SkipList
}

func newTermAccumulator(text string) *termAccumulator {
	return &termAccumulator{text: text, pl: skiplist.NewIntMap()}
}

// RadixKey implements radix.RadixTreeEntry.
func (t *termAccumulator) RadixKey() []byte {
	return []byte(t.text)
}

// Register records one occurrence of the term in document docIndex.
// Because the Builder assigns doc_index serially and processes one
// document's terms before moving to the next, repeated calls for the
// same docIndex only ever extend the current document's count.
func (t *termAccumulator) Register(docIndex uint64, tf int) {
	if existing, ok := t.pl.Get(int(docIndex)); ok {
		t.pl.Set(int(docIndex), existing.(int)+tf)
		return
	}
	t.pl.Set(int(docIndex), tf)
}

// Postings materializes the accumulator into an ascending-doc_index
// postings slice, ready for codec.Encode.
func (t *termAccumulator) Postings() []codec.Posting {
	out := make([]codec.Posting, 0, t.pl.Len())
	for it := t.pl.Iterator(); it.Next(); {
		out = append(out, codec.Posting{
			DocIndex: uint64(it.Key().(int)),
			Tf:       uint64(it.Value().(int)),
		})
	}
	return out
}

func (t *termAccumulator) Df() int { return t.pl.Len() }

// Accumulator is a single shard's term -> postings map, built during
// one pass (or one shard's pass) over the input stream.
type Accumulator struct {
	trie radix.Trie
}

func NewAccumulator() *Accumulator {
	a := &Accumulator{}
	a.trie.Init()
	return a
}

// AddTerm records one occurrence of term in docIndex, within a
// document whose own per-term counts have already been collapsed by
// the caller (spec.md §4.3 step 2.c) -- tf here is the document-level
// term frequency, added atomically to the accumulator.
func (a *Accumulator) AddTerm(term string, docIndex uint64, tf int) {
	key := []byte(term)
	if elem, ok := a.trie.Find(key); ok && elem != nil {
		elem.(*termAccumulator).Register(docIndex, tf)
		return
	}

	acc := newTermAccumulator(term)
	acc.Register(docIndex, tf)
	a.trie.Insert(acc)
}

// Terms returns every accumulated term in ascending byte order,
// matching spec.md §4.3 step 3.a.
func (a *Accumulator) Terms() []string {
	entries := a.trie.Walk()
	terms := make([]string, 0, len(entries))
	for _, e := range entries {
		terms = append(terms, e.(*termAccumulator).text)
	}
	sort.Strings(terms)
	return terms
}

// Postings returns the accumulated postings for term, sorted by
// ascending doc_index, along with its document frequency.
func (a *Accumulator) Postings(term string) ([]codec.Posting, bool) {
	elem, ok := a.trie.Find([]byte(term))
	if !ok || elem == nil {
		return nil, false
	}
	acc := elem.(*termAccumulator)
	return acc.Postings(), true
}

// Len returns the number of distinct terms accumulated so far.
func (a *Accumulator) Len() int {
	return a.trie.Len()
}

// Merge folds other into a, term by term, preserving ascending
// doc_index order within each term's postings (spec.md §5: shards
// merge deterministically by ascending term, then ascending
// doc_index). Merge assumes the two accumulators were built from
// disjoint sets of doc_index values, as guaranteed by a single
// serial doc_index assignment point.
func (a *Accumulator) Merge(other *Accumulator) {
	for _, term := range other.Terms() {
		postings, _ := other.Postings(term)
		for _, p := range postings {
			a.AddTerm(term, p.DocIndex, int(p.Tf))
		}
	}
}
