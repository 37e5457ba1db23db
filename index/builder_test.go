package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/errs"
)

func buildTestIndex(t *testing.T, docs []docstore.Record) (*Index, string) {
	t.Helper()

	b := NewBuilder()
	for _, d := range docs {
		if err := b.Add(d); err != nil {
			t.Fatalf("Add(%v): %v", d, err)
		}
	}

	dir := t.TempDir()
	if _, err := b.Finish(dir, time.Now()); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return idx, dir
}

var wsjCorpus = []docstore.Record{
	{DocId: "WSJ001", Body: "Daminozide is a plant growth regulator."},
	{DocId: "WSJ002", Body: "Economic policy affects growth."},
	{DocId: "WSJ003", Body: "Policy, policy, policy!"},
	{DocId: "WSJ004", Body: "The growth of Daminozide use declined."},
}

func TestBuilderRoundTrip(t *testing.T) {
	idx, _ := buildTestIndex(t, wsjCorpus)

	if idx.Stats.N != 4 {
		t.Errorf("N = %d, want 4", idx.Stats.N)
	}

	entry, ok := idx.Dict.Get("policy")
	if !ok {
		t.Fatal("expected dictionary entry for policy")
	}
	if entry.Df != 2 {
		t.Errorf("df(policy) = %d, want 2", entry.Df)
	}

	postings, found, err := idx.Postings("policy")
	if err != nil || !found {
		t.Fatalf("Postings(policy): found=%v err=%v", found, err)
	}
	if len(postings) != 2 {
		t.Fatalf("len(postings) = %d, want 2", len(postings))
	}

	id, ok := idx.DocIds.At(postings[1].DocIndex)
	if !ok || id != "WSJ003" {
		t.Errorf("doc for second posting = %q, want WSJ003", id)
	}
	if postings[1].Tf != 3 {
		t.Errorf("tf(policy, WSJ003) = %d, want 3", postings[1].Tf)
	}
}

func TestBuilderDuplicateDocId(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(docstore.Record{DocId: "A", Body: "x"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := b.Add(docstore.Record{DocId: "A", Body: "y"})
	if err == nil {
		t.Fatal("expected DuplicateDocId error")
	}
	if !errs.Is(err, errs.DuplicateDocId) {
		t.Errorf("got %v, want DuplicateDocId", err)
	}
}

func TestBuilderEmptyBodyCountsTowardN(t *testing.T) {
	idx, _ := buildTestIndex(t, []docstore.Record{
		{DocId: "A", Body: "hello"},
		{DocId: "B", Body: "   "},
	})
	if idx.Stats.N != 2 {
		t.Fatalf("N = %d, want 2", idx.Stats.N)
	}
	if idx.Stats.NumPostings != 1 {
		t.Fatalf("NumPostings = %d, want 1", idx.Stats.NumPostings)
	}
}

func TestLoadRejectsMissingArtifact(t *testing.T) {
	idx, dir := buildTestIndex(t, wsjCorpus)
	_ = idx

	if err := os.Remove(filepath.Join(dir, StatsFile)); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil || !errs.Is(err, errs.CorruptIndex) {
		t.Fatalf("expected CorruptIndex, got %v", err)
	}
}

func TestLoadRejectsInconsistentStats(t *testing.T) {
	_, dir := buildTestIndex(t, wsjCorpus)

	stats, err := LoadStats(filepath.Join(dir, StatsFile))
	if err != nil {
		t.Fatal(err)
	}
	stats.N = 999
	if err := stats.Save(filepath.Join(dir, StatsFile)); err != nil {
		t.Fatal(err)
	}

	_, err = Load(dir)
	if err == nil || !errs.Is(err, errs.CorruptIndex) {
		t.Fatalf("expected CorruptIndex, got %v", err)
	}
}

func TestBuildShardedMatchesSerial(t *testing.T) {
	ch := make(chan docstore.Record, len(wsjCorpus))
	for _, d := range wsjCorpus {
		ch <- d
	}
	close(ch)

	b, err := BuildSharded(ch, 3)
	if err != nil {
		t.Fatalf("BuildSharded: %v", err)
	}

	dir := t.TempDir()
	stats, err := b.Finish(dir, time.Now())
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if stats.N != 4 || stats.NumTerms == 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	idx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry, ok := idx.Dict.Get("policy")
	if !ok || entry.Df != 2 {
		t.Fatalf("df(policy) = %v, ok=%v, want 2", entry.Df, ok)
	}

	serial, _ := buildTestIndex(t, wsjCorpus)
	if stats.NumTerms != serial.Stats.NumTerms || stats.NumPostings != serial.Stats.NumPostings {
		t.Fatalf("sharded stats %+v differ from serial %+v", stats, serial.Stats)
	}
	for _, term := range serial.Dict.terms {
		want, _ := serial.Dict.Get(term)
		got, ok := idx.Dict.Get(term)
		if !ok || got != want {
			t.Errorf("dict[%q] = %+v, ok=%v; serial build has %+v", term, got, ok, want)
		}
	}
}
