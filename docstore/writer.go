package docstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// StreamWriter emits the line-delimited document stream format that
// ReadStream consumes. It is used by the ingest package (the upstream
// parser stand-in), not by the Builder or Query Processor.
type StreamWriter struct {
	w *bufio.Writer
}

func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: bufio.NewWriter(w)}
}

func (s *StreamWriter) Write(rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("docstore: marshaling record %s: %w", rec.DocId, err)
	}
	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("docstore: writing record %s: %w", rec.DocId, err)
	}
	return s.w.WriteByte('\n')
}

func (s *StreamWriter) Flush() error {
	return s.w.Flush()
}
