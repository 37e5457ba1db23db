package query

import (
	"math"
	"testing"
	"time"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/index"
)

var wsjCorpus = []docstore.Record{
	{DocId: "WSJ001", Body: "Daminozide is a plant growth regulator."},
	{DocId: "WSJ002", Body: "Economic policy affects growth."},
	{DocId: "WSJ003", Body: "Policy, policy, policy!"},
	{DocId: "WSJ004", Body: "The growth of Daminozide use declined."},
}

func buildIdx(t *testing.T) *index.Index {
	t.Helper()
	b := index.NewBuilder()
	for _, d := range wsjCorpus {
		if err := b.Add(d); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	dir := t.TempDir()
	if _, err := b.Finish(dir, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	idx, err := index.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return idx
}

func TestSearchDaminozideTieBreak(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "Daminozide", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %v", len(results), results)
	}
	if results[0].Score != results[1].Score {
		t.Fatalf("expected equal scores, got %v", results)
	}
	if results[0].DocId != "WSJ001" || results[1].DocId != "WSJ004" {
		t.Errorf("expected WSJ001 then WSJ004, got %v", results)
	}
}

func TestSearchPolicyRanking(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "policy", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].DocId != "WSJ003" || results[1].DocId != "WSJ002" {
		t.Fatalf("expected WSJ003 then WSJ002, got %v", results)
	}

	want0 := (1 + math.Log10(3)) * math.Log10(4.0/2.0)
	want1 := (1 + math.Log10(1)) * math.Log10(4.0/2.0)
	if math.Abs(results[0].Score-want0) > 1e-9 {
		t.Errorf("score[0] = %v, want %v", results[0].Score, want0)
	}
	if math.Abs(results[1].Score-want1) > 1e-9 {
		t.Errorf("score[1] = %v, want %v", results[1].Score, want1)
	}
}

func TestSearchMultiTermQuery(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "economic policy", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].DocId != "WSJ002" {
		t.Fatalf("expected WSJ002 to rank first, got %v", results)
	}
	if len(results) > 1 && results[1].DocId != "WSJ003" {
		t.Errorf("expected WSJ003 second, got %v", results)
	}
}

func TestSearchGrowthTheRanking(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "growth the", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].DocId != "WSJ004" {
		t.Fatalf("expected WSJ004 to rank first (matches growth and the), got %v", results)
	}
}

func TestSearchUnknownTerm(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "quantum", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %v", results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %v", results)
	}
}

func TestSearchMaxResultsTruncation(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "growth", TFIDF{}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestSearchTermInAllDocsContributesZero(t *testing.T) {
	idx := buildIdx(t)
	results, err := Search(idx, "the", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, r := range results {
		if r.Score < 0 {
			t.Errorf("negative score for %v", r)
		}
	}

	// "the" occurs only in WSJ004, so check the boundary on a corpus
	// where "common" occurs in every document: its idf is 0.
	b := index.NewBuilder()
	for _, d := range []docstore.Record{
		{DocId: "A", Body: "common alpha"},
		{DocId: "B", Body: "common beta"},
	} {
		if err := b.Add(d); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	dir := t.TempDir()
	if _, err := b.Finish(dir, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	allIdx, err := index.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	results, err = Search(allIdx, "common", TFIDF{}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no scored results for a term in every document, got %v", results)
	}
}

func TestLookupDefaultsToTFIDF(t *testing.T) {
	if _, ok := Lookup("nonexistent").(TFIDF); !ok {
		t.Error("Lookup of unknown engine should default to TFIDF")
	}
	if _, ok := Lookup("bm25").(BM25); !ok {
		t.Error("Lookup(bm25) should return a BM25 engine")
	}
}

func TestBM25AndVSMProduceFiniteScores(t *testing.T) {
	idx := buildIdx(t)
	for _, name := range []string{"bm25", "vsm"} {
		results, err := Search(idx, "growth policy", Lookup(name), 0)
		if err != nil {
			t.Fatalf("Search with %s: %v", name, err)
		}
		for _, r := range results {
			if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
				t.Errorf("%s produced non-finite score: %v", name, r)
			}
		}
	}
}
