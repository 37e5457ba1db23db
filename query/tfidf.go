package query

import "math"

// TFIDF implements the scoring formula fixed by spec.md §4.4:
//
//	score[doc] += (1 + log10(tf)) * log10(N / df_t)
//
// If df_t >= N the IDF factor is 0 and the term contributes nothing.
type TFIDF struct{}

func (TFIDF) Name() string { return "tfidf" }

func (TFIDF) Score(n int, terms map[string]TermPostings) map[uint64]float64 {
	scores := make(map[uint64]float64)

	for _, tp := range terms {
		idf := idf10(n, int(tp.Df))
		if idf == 0 {
			continue
		}

		for _, p := range tp.Postings {
			scores[p.DocIndex] += (1 + math.Log10(float64(p.Tf))) * idf
		}
	}

	return scores
}

func idf10(n, df int) float64 {
	if df >= n {
		return 0
	}
	return math.Log10(float64(n) / float64(df))
}
