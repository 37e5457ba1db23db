package actions

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/index"
)

func RunIndexer() *run_index_action {
	return new(run_index_action)
}

type run_index_action struct {
	Args

	documentStore *string
	outputDir     *string
	shards        *int
}

func (a *run_index_action) Name() string {
	return "index"
}

func (a *run_index_action) DefineFlags(fs *flag.FlagSet) {
	a.AddDefaultArgs(fs)

	a.documentStore = fs.String("document-store", "",
		"The document_store.jsonl file produced by `parse`")

	a.outputDir = fs.String("output-dir", "/tmp/corpusidx",
		"The directory in which to store the built index")

	a.shards = fs.Int("shards", 1,
		"Number of accumulator shards to build concurrently (1 disables sharding)")
}

func (a *run_index_action) Run() {
	SetupLogging(*a.verbosity)

	if *a.documentStore == "" {
		log.Criticalf("--document-store is a required argument")
		os.Exit(ExitMalformed)
	}

	file, err := os.Open(*a.documentStore)
	if err != nil {
		log.Criticalf("opening document store: %v", err)
		os.Exit(ExitIoFailure)
	}
	defer file.Close()

	started := time.Now()

	recs := make(chan docstore.Record, 64)
	readErrCh := make(chan error, 1)
	go func() {
		readErrCh <- docstore.ReadStream(file, func(r docstore.Record) error {
			recs <- r
			return nil
		})
		close(recs)
	}()

	var b *index.Builder
	if *a.shards > 1 {
		b, err = index.BuildSharded(recs, *a.shards)
	} else {
		b, err = index.BuildFromChannel(recs)
	}

	if readErr := <-readErrCh; err == nil && readErr != nil {
		err = readErr
	}

	if err != nil {
		log.Criticalf("building index: %v", err)
		os.Exit(ExitCodeFor(err))
	}

	if err := os.MkdirAll(*a.outputDir, 0o755); err != nil {
		log.Criticalf("creating output dir: %v", err)
		os.Exit(ExitIoFailure)
	}

	stats, err := b.Finish(*a.outputDir, started)
	if err != nil {
		log.Criticalf("finishing build: %v", err)
		os.Exit(ExitIoFailure)
	}

	fmt.Printf("Built index: N=%d, terms=%d, postings=%d, took %dms\n",
		stats.N, stats.NumTerms, stats.NumPostings, stats.BuildMs)
}
