package query

import (
	"math"

	"github.com/cwacek/corpusidx/index"
)

// BM25 is the supplemental Okapi BM25 ranking engine, ported from the
// teacher's query_engine/bm25.go. It needs each document's total term
// count to normalize by length, which the core artifact set does not
// carry -- DocLengths must be set from index.LoadDocLengths before
// Score is called with a non-trivial result; with DocLengths nil,
// every document is treated as average length (no length
// normalization effect, b term drops out).
type BM25 struct {
	K1, B      float64
	DocLengths *index.DocLengths
}

func (BM25) Name() string { return "bm25" }

func (bm BM25) Score(n int, terms map[string]TermPostings) map[uint64]float64 {
	scores := make(map[uint64]float64)

	avgdl := 1.0
	if bm.DocLengths != nil {
		if a := bm.DocLengths.Average(); a > 0 {
			avgdl = a
		}
	}

	for _, tp := range terms {
		idf := bm25Idf(n, int(tp.Df))

		for _, p := range tp.Postings {
			docLen := avgdl
			if bm.DocLengths != nil {
				if l, ok := bm.DocLengths.At(p.DocIndex); ok {
					docLen = float64(l)
				}
			}

			tfD := float64(p.Tf)
			numerator := tfD * (bm.K1 + 1)
			denominator := tfD + bm.K1*((1-bm.B)+bm.B*(docLen/avgdl))

			scores[p.DocIndex] += idf * (numerator / denominator)
		}
	}

	return scores
}

// bm25Idf uses the classic Robertson/Sparck-Jones form rather than
// spec.md's §4.4 TF-IDF idf -- they diverge intentionally: this
// engine is an alternative, not a restatement of the mandatory one.
func bm25Idf(n, df int) float64 {
	if df == 0 {
		return 0
	}
	return math.Log10((float64(n-df) + 0.5) / (float64(df) + 0.5))
}
