package index

import (
	"encoding/json"
	"os"

	"github.com/cwacek/corpusidx/errs"
)

// Stats is the corpus statistics record persisted to stats.json
// (spec.md §3, §6).
type Stats struct {
	N           int   `json:"N"`
	NumTerms    int   `json:"num_terms"`
	NumPostings int   `json:"num_postings"`
	BuildMs     int64 `json:"build_ms"`
}

func (s *Stats) Save(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errs.Wrap(errs.IoError, "marshaling stats", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errs.Wrap(errs.IoError, "writing stats file "+path, err)
	}
	return nil
}

func LoadStats(path string) (*Stats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "reading stats file "+path, err)
	}
	var s Stats
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, errs.Wrap(errs.CorruptIndex, "decoding stats file "+path, err)
	}
	return &s, nil
}
