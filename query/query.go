// Package query implements the Query Processor (spec.md §4.4):
// resolving query terms against a loaded index.Index, decoding
// postings, and ranking documents. The default ranking engine is the
// TF-IDF formula spec.md fixes; two alternate engines -- BM25 and
// cosine VSM -- are supplemented from the teacher's original
// query_engine package and selectable via Engine by name (see
// querier.go).
package query

import (
	"sort"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/codec"
	"github.com/cwacek/corpusidx/index"
	"github.com/cwacek/corpusidx/normalize"
)

// Result is one ranked hit.
type Result struct {
	DocId string
	Score float64
}

// TermPostings bundles a resolved query term's dictionary-known
// document frequency with its decoded postings list, the unit every
// Engine scores against.
type TermPostings struct {
	Df       uint64
	Postings []codec.Posting
}

// Engine computes a per-document score contribution for a set of
// resolved query terms. N is the corpus's total document count.
// Implementations must be side-effect free: concurrent Search calls
// may invoke Score from independent goroutines (spec.md §5), each
// with its own terms map, so an Engine must not retain mutable state
// between calls.
type Engine interface {
	Name() string
	Score(n int, terms map[string]TermPostings) map[uint64]float64
}

// Search implements spec.md §4.4 end to end: normalize, resolve,
// decode, score, rank, truncate. An empty normalized query, or a
// query whose terms are all absent from the dictionary, returns a
// nil result slice with no error -- both are well-defined empty
// results per spec.md §7, not failures.
func Search(idx *index.Index, queryString string, engine Engine, maxResults int) ([]Result, error) {
	queryTerms := dedupe(normalize.Terms(queryString))
	if len(queryTerms) == 0 {
		return nil, nil
	}

	resolved := make(map[string]TermPostings, len(queryTerms))
	for _, term := range queryTerms {
		entry, ok := idx.Dict.Get(term)
		if !ok {
			log.Debugf("Query term %q absent from dictionary", term)
			continue
		}

		postings, found, err := idx.Postings(term)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		resolved[term] = TermPostings{Df: entry.Df, Postings: postings}
	}

	if len(resolved) == 0 {
		return nil, nil
	}

	scores := engine.Score(idx.Stats.N, resolved)

	results := make([]Result, 0, len(scores))
	for docIndex, score := range scores {
		docId, ok := idx.DocIds.At(docIndex)
		if !ok {
			continue
		}
		results = append(results, Result{DocId: docId, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocId < results[j].DocId
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// dedupe preserves first-occurrence order while dropping repeats, per
// spec.md §4.4 step 1: "multiplicity does not weight the query."
func dedupe(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
