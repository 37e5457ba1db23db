package actions

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/index"
	"github.com/cwacek/corpusidx/query"
)

func RunQuerier() *search_action {
	return new(search_action)
}

type search_action struct {
	Args

	indexDir *string
	engine   *string
	maxHits  *int
}

func (a *search_action) Name() string {
	return "search"
}

func (a *search_action) DefineFlags(fs *flag.FlagSet) {
	a.AddDefaultArgs(fs)

	a.indexDir = fs.String("index-dir", "", "Directory containing a built index")
	a.engine = fs.String("engine", "tfidf", "Ranking engine: tfidf, bm25, or vsm")
	a.maxHits = fs.Int("max-results", 0, "Maximum results per query (0 = unbounded)")
}

func (a *search_action) Run() {
	SetupLogging(*a.verbosity)

	if *a.indexDir == "" {
		log.Criticalf("--index-dir is a required argument")
		os.Exit(ExitMalformed)
	}

	idx, err := index.Load(*a.indexDir)
	if err != nil {
		log.Criticalf("loading index: %v", err)
		os.Exit(ExitCodeFor(err))
	}

	engine := query.Lookup(*a.engine)
	if bm, ok := engine.(query.BM25); ok {
		if dl, err := index.LoadDocLengths(*a.indexDir); err == nil {
			bm.DocLengths = dl
			engine = bm
		} else {
			log.Warnf("doc_lengths.bin unavailable, BM25 will skip length normalization: %v", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for scanner.Scan() {
		line := scanner.Text()

		results, err := query.Search(idx, line, engine, *a.maxHits)
		if err != nil {
			log.Criticalf("search failed: %v", err)
			os.Exit(ExitIoFailure)
		}

		for _, r := range results {
			fmt.Fprintf(writer, "%s %.4f\n", r.DocId, r.Score)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Criticalf("reading queries: %v", err)
		os.Exit(ExitIoFailure)
	}
}
