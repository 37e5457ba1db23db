// Package corpusidxlog configures the process-wide seelog logger used
// by the packages in this repository that log. It follows the teacher's
// logging package (logging/logging.go): a verbosity-to-minlevel XML
// template installed via log.ReplaceLogger.
package corpusidxlog

import (
	"fmt"

	log "github.com/cihub/seelog"
)

var appConfig = `
  <seelog type="sync" minlevel="%s">
  <outputs formatid="corpusidx">
    <console />
  </outputs>
  <formats>
  <format id="corpusidx" format="corpusidx: [%%LEV] %%Msg%%n" />
  </formats>
  </seelog>
`

// Setup installs a seelog logger at the level implied by verbosity:
// 0 or 1 -> warn, 2 -> info, 3 or higher -> trace.
func Setup(verbosity int) {
	var level string
	switch {
	case verbosity <= 1:
		level = "warn"
	case verbosity == 2:
		level = "info"
	default:
		level = "trace"
	}

	logger, err := log.LoggerFromConfigAsBytes([]byte(fmt.Sprintf(appConfig, level)))
	if err != nil {
		fmt.Println(err)
		return
	}

	log.ReplaceLogger(logger)
}

// SetupQuiet installs a logger at critical level only, for test runs
// and library callers that want the core silent by default.
func SetupQuiet() {
	logger, err := log.LoggerFromConfigAsBytes([]byte(fmt.Sprintf(appConfig, "critical")))
	if err != nil {
		return
	}
	log.ReplaceLogger(logger)
}
