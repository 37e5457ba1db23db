package index

import (
	"sync"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/errs"
	"github.com/cwacek/corpusidx/lexicon"
	"github.com/cwacek/corpusidx/normalize"
)

// docTerms is one normalized document's collapsed term counts, tagged
// with its already-assigned doc_index.
type docTerms struct {
	docIndex uint64
	counts   map[string]int
}

// BuildSharded implements the concurrency extension permitted by
// spec.md §5: the normalize-and-accumulate stage is sharded across
// numShards worker goroutines, each with its own Accumulator, while
// doc_index assignment and duplicate detection stay on a single
// serial point (the caller reading recs). Shards are merged
// deterministically -- by ascending term, then ascending doc_index --
// before emission, via Accumulator.Merge.
//
// numShards < 1 is treated as 1: a single worker goroutine with one
// accumulator, producing the same postings as Builder.Add called in a
// loop.
func BuildSharded(recs <-chan docstore.Record, numShards int) (*Builder, error) {
	if numShards < 1 {
		numShards = 1
	}

	docIds := docstore.NewBuilder()
	seen := make(map[string]bool)
	var docLengths []uint64

	shardIn := make([]chan docTerms, numShards)
	shardAcc := make([]*lexicon.Accumulator, numShards)
	for i := range shardIn {
		shardIn[i] = make(chan docTerms, 64)
		shardAcc[i] = lexicon.NewAccumulator()
	}

	var wg sync.WaitGroup
	numPostings := make([]int64, numShards)

	for i := 0; i < numShards; i++ {
		wg.Add(1)
		go func(shard int) {
			defer wg.Done()
			for dt := range shardIn[shard] {
				for term, tf := range dt.counts {
					shardAcc[shard].AddTerm(term, dt.docIndex, tf)
					numPostings[shard]++
				}
			}
		}(i)
	}

	// Once buildErr is set we keep draining recs instead of returning
	// early: the caller's producer goroutine may still be sending, and
	// abandoning the channel here would leave it blocked forever.
	var buildErr error
	for rec := range recs {
		if buildErr != nil {
			continue
		}

		if seen[rec.DocId] {
			buildErr = errs.New(errs.DuplicateDocId, "duplicate doc_id: "+rec.DocId)
			continue
		}
		seen[rec.DocId] = true

		docIndex := docIds.Append(rec.DocId)

		allTerms := normalize.Terms(rec.Body)
		counts := make(map[string]int)
		for _, term := range allTerms {
			counts[term]++
		}
		docLengths = append(docLengths, uint64(len(allTerms)))

		shardIn[docIndex%uint64(numShards)] <- docTerms{docIndex: docIndex, counts: counts}
	}

	for _, ch := range shardIn {
		close(ch)
	}
	wg.Wait()

	if buildErr != nil {
		return nil, buildErr
	}

	merged := lexicon.NewAccumulator()
	var total int64
	for i := 0; i < numShards; i++ {
		merged.Merge(shardAcc[i])
		total += numPostings[i]
	}

	log.Infof("Sharded build across %d workers merged %d documents", numShards, docIds.Len())

	return &Builder{acc: merged, docIds: docIds, seen: seen, numPostings: int(total), docLengths: docLengths}, nil
}

// BuildFromChannel is the single-threaded counterpart: it drains recs
// into a fresh Builder and returns it, or the first error
// encountered. This is the default scheduling model of spec.md §5.
//
// It keeps ranging over recs even after the first error, same reason
// as BuildSharded above: abandoning the channel early could leave a
// concurrent producer blocked sending into it forever.
func BuildFromChannel(recs <-chan docstore.Record) (*Builder, error) {
	b := NewBuilder()
	var buildErr error
	for rec := range recs {
		if buildErr != nil {
			continue
		}
		if err := b.Add(rec); err != nil {
			buildErr = err
		}
	}
	if buildErr != nil {
		return nil, buildErr
	}
	return b, nil
}
