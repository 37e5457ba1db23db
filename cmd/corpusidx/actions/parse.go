package actions

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/ingest"
)

func ParseAction() *parse_action {
	return new(parse_action)
}

type parse_action struct {
	Args

	input     *string
	outputDir *string
}

func (a *parse_action) Name() string {
	return "parse"
}

func (a *parse_action) DefineFlags(fs *flag.FlagSet) {
	a.AddDefaultArgs(fs)

	a.input = fs.String("input", "", "The TREC/WSJ document collection file to parse")
	a.outputDir = fs.String("output-dir", "", "Directory to write document_store.jsonl into")
}

func (a *parse_action) Run() {
	SetupLogging(*a.verbosity)

	if *a.input == "" || *a.outputDir == "" {
		log.Criticalf("both --input and --output-dir are required")
		os.Exit(ExitMalformed)
	}

	in, err := os.Open(*a.input)
	if err != nil {
		log.Criticalf("opening input: %v", err)
		os.Exit(ExitIoFailure)
	}
	defer in.Close()

	if err := os.MkdirAll(*a.outputDir, 0o755); err != nil {
		log.Criticalf("creating output dir: %v", err)
		os.Exit(ExitIoFailure)
	}

	outPath := filepath.Join(*a.outputDir, "document_store.jsonl")
	out, err := os.Create(outPath)
	if err != nil {
		log.Criticalf("creating output file: %v", err)
		os.Exit(ExitIoFailure)
	}
	defer out.Close()

	writer := docstore.NewStreamWriter(out)

	n, err := ingest.ParseTrec(in, writer)
	if err != nil {
		log.Criticalf("parsing: %v", err)
		os.Exit(ExitIoFailure)
	}

	fmt.Printf("Wrote %d documents to %s\n", n, outPath)
}
