package index

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/errs"
)

// Index is the loaded, read-only triple of artifacts the Query
// Processor operates on (spec.md §3 Lifecycle).
type Index struct {
	Dict    *Dictionary
	DocIds  *docstore.DocIds
	Stats   *Stats
	postingsPath string
}

// Load opens and validates the four artifacts under dir. Artifacts
// load only when all four exist and their internal sizes/counts are
// mutually consistent (spec.md §6); any inconsistency is reported as
// errs.CorruptIndex.
func Load(dir string) (*Index, error) {
	postingsPath := filepath.Join(dir, PostingsFile)
	dictPath := filepath.Join(dir, DictionaryFile)
	docIdsPath := filepath.Join(dir, DocIdsFile)
	statsPath := filepath.Join(dir, StatsFile)

	for _, p := range []string{postingsPath, dictPath, docIdsPath, statsPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, errs.Wrap(errs.CorruptIndex, "missing artifact "+p, err)
		}
	}

	dict, err := LoadDictionary(dictPath)
	if err != nil {
		return nil, err
	}

	docIds, err := docstore.Load(docIdsPath)
	if err != nil {
		return nil, err
	}

	stats, err := LoadStats(statsPath)
	if err != nil {
		return nil, err
	}

	if err := validate(dict, docIds, stats, postingsPath); err != nil {
		return nil, err
	}

	log.Infof("Loaded index from %s: %d documents, %d terms", dir, stats.N, stats.NumTerms)

	return &Index{Dict: dict, DocIds: docIds, Stats: stats, postingsPath: postingsPath}, nil
}

func validate(dict *Dictionary, docIds *docstore.DocIds, stats *Stats, postingsPath string) error {
	if docIds.Len() != stats.N {
		return errs.New(errs.CorruptIndex,
			fmt.Sprintf("doc_ids has %d entries, stats.N says %d", docIds.Len(), stats.N))
	}

	if dict.Len() != stats.NumTerms {
		return errs.New(errs.CorruptIndex,
			fmt.Sprintf("dictionary has %d terms, stats.num_terms says %d", dict.Len(), stats.NumTerms))
	}

	fi, err := os.Stat(postingsPath)
	if err != nil {
		return errs.Wrap(errs.CorruptIndex, "stat-ing postings file", err)
	}

	var totalLen, totalDf uint64
	for _, term := range dict.terms {
		e, _ := dict.Get(term)
		if e.Offset != totalLen {
			return errs.New(errs.CorruptIndex,
				fmt.Sprintf("postings ranges are not contiguous at term %q: offset %d, expected %d",
					term, e.Offset, totalLen))
		}
		totalLen += e.Length
		totalDf += e.Df
	}

	if totalLen != uint64(fi.Size()) {
		return errs.New(errs.CorruptIndex,
			fmt.Sprintf("postings file is %d bytes, dictionary ranges cover %d", fi.Size(), totalLen))
	}

	if totalDf != uint64(stats.NumPostings) {
		return errs.New(errs.CorruptIndex,
			fmt.Sprintf("dictionary df sum is %d, stats.num_postings says %d", totalDf, stats.NumPostings))
	}

	return nil
}
