package query

import "math"

// VSM is the supplemental cosine vector-space ranking engine. The
// teacher's own query_engine/cosine_vsm.go never implemented real
// scoring (it returned a single hardcoded result); this is a genuine
// replacement, not a port.
//
// Cosine similarity proper needs each document's full term-weight
// vector norm, which the compact postings format does not retain (it
// would require a second index dimension keyed by doc_index instead
// of term). VSM approximates it by restricting both vectors to the
// query's terms: each document's norm is computed only over the terms
// the query touched. For a single-term query every matching document
// therefore gets the same score (the term's idf), and ranking falls to
// the doc_id tie-break; it is documented here rather than silently
// passed off as full-corpus cosine similarity.
type VSM struct{}

func (VSM) Name() string { return "vsm" }

func (VSM) Score(n int, terms map[string]TermPostings) map[uint64]float64 {
	rawScore := make(map[uint64]float64)
	normSq := make(map[uint64]float64)

	for _, tp := range terms {
		idf := idf10(n, int(tp.Df))
		if idf == 0 {
			continue
		}
		queryWeight := idf // query term frequency is always 1 post-dedup

		for _, p := range tp.Postings {
			docWeight := (1 + math.Log10(float64(p.Tf))) * idf
			rawScore[p.DocIndex] += docWeight * queryWeight
			normSq[p.DocIndex] += docWeight * docWeight
		}
	}

	scores := make(map[uint64]float64, len(rawScore))
	for doc, raw := range rawScore {
		norm := math.Sqrt(normSq[doc])
		if norm == 0 {
			continue
		}
		scores[doc] = raw / norm
	}

	return scores
}
