package main

import (
	log "github.com/cihub/seelog"
	"github.com/cwacek/subcommand"

	"github.com/cwacek/corpusidx/cmd/corpusidx/actions"
)

func main() {
	defer log.Flush()
	Run()
}

func Run() {
	actions.SetupLogging(0)

	subcommand.Parse(true,
		actions.ParseAction(),
		actions.RunIndexer(),
		actions.RunQuerier(),
		actions.RunServer(),
	)
}
