package actions

import (
	"errors"
	"flag"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/corpusidxlog"
	"github.com/cwacek/corpusidx/docstore"
	"github.com/cwacek/corpusidx/errs"
)

// Args is embedded by every action, same as the teacher's
// scanner/actions/defaults.go: it carries the one flag every
// subcommand shares.
type Args struct {
	verbosity *int
}

func (a *Args) AddDefaultArgs(fs *flag.FlagSet) {
	a.verbosity = fs.Int("v", 0, "Be verbose [1, 2, 3]")
}

func SetupLogging(verbosity int) {
	corpusidxlog.Setup(verbosity)
	log.Infof("Configured logging at verbosity %d", verbosity)
	log.Debugf("logging ready")
}

// Exit codes map onto the core error taxonomy: 0 success, 1 malformed
// input, 2 missing or corrupt index, 3 I/O failure.
const (
	ExitSuccess      = 0
	ExitMalformed    = 1
	ExitCorruptIndex = 2
	ExitIoFailure    = 3
)

// ExitCodeFor maps a core error onto the CLI exit codes above. A
// *docstore.ErrMalformedRecord (docstore's own stream error type, not
// an errs.Error) counts as malformed input. Errors outside both are
// treated as I/O failures.
func ExitCodeFor(err error) int {
	var malformed *docstore.ErrMalformedRecord
	if errors.As(err, &malformed) {
		return ExitMalformed
	}

	switch {
	case errs.Is(err, errs.MalformedInput), errs.Is(err, errs.DuplicateDocId):
		return ExitMalformed
	case errs.Is(err, errs.CorruptIndex):
		return ExitCorruptIndex
	default:
		return ExitIoFailure
	}
}
