package actions

import (
	"flag"
	"fmt"
	"os"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/index"
	"github.com/cwacek/corpusidx/netserve"
)

func RunServer() *serve_action {
	return new(serve_action)
}

type serve_action struct {
	Args

	indexDir *string
	port     *int
}

func (a *serve_action) Name() string {
	return "serve"
}

func (a *serve_action) DefineFlags(fs *flag.FlagSet) {
	a.AddDefaultArgs(fs)

	a.indexDir = fs.String("index-dir", "", "Directory containing a built index")
	a.port = fs.Int("port", 10800, "Port on which to listen for incoming queries")
}

func (a *serve_action) Run() {
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

	fmt.Printf("Loaded index with %d documents\n", idx.Stats.N)

	engine := netserve.NewEngine(idx, *a.port)
	if err := engine.Start(); err != nil {
		log.Criticalf("server error: %v", err)
		os.Exit(ExitIoFailure)
	}
}
