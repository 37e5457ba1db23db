package query

// Engines is the name -> Engine registry, grounded on the teacher's
// query_engine/querier.go RankingEngines map. TFIDF is the only
// engine spec.md mandates and is always registered; BM25 and VSM are
// supplemental alternatives a caller may opt into (see SPEC_FULL.md).
var Engines = map[string]Engine{
	"tfidf": TFIDF{},
	"bm25":  BM25{K1: 1.2, B: 0.75},
	"vsm":   VSM{},
}

// Lookup resolves an engine by name, defaulting to TFIDF for an empty
// or unknown name so a misconfigured --engine flag degrades to the
// spec-mandated behavior rather than failing the query.
func Lookup(name string) Engine {
	if e, ok := Engines[name]; ok {
		return e
	}
	return TFIDF{}
}
