package index

import (
	"os"

	"github.com/cwacek/corpusidx/errs"
)

// postingsFile wraps the postings blob output so a build failure can
// be told apart from a completed one: Finish only calls sync (fsync)
// once every term has been written successfully. If Finish
// returns early with an error, the caller is expected to discard the
// output directory -- the load path independently validates artifact
// sizes against the stats record, so a half-written postings.bin is
// rejected as CorruptIndex even if a caller forgets to clean up.
type postingsFile struct {
	f *os.File
}

func createPostingsFile(path string) (*postingsFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "creating postings file "+path, err)
	}
	return &postingsFile{f: f}, nil
}

func (p *postingsFile) Write(b []byte) (int, error) {
	n, err := p.f.Write(b)
	if err != nil {
		return n, errs.Wrap(errs.IoError, "writing postings blob", err)
	}
	return n, nil
}

func (p *postingsFile) sync() error {
	if err := p.f.Sync(); err != nil {
		return errs.Wrap(errs.IoError, "syncing postings blob", err)
	}
	return nil
}

func (p *postingsFile) Close() error {
	return p.f.Close()
}
