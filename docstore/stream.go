package docstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Record is a single input document as delivered by the upstream
// parser: one JSON object per line, carrying at minimum doc_id and
// body (spec.md §6). Additional fields are ignored.
type Record struct {
	DocId string `json:"doc_id"`
	Body  string `json:"body"`
}

// ErrMalformedRecord reports a stream line that does not decode into
// a valid Record: missing doc_id, missing body, or a non-string
// doc_id field.
type ErrMalformedRecord struct {
	Line int
	Err  error
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("docstore: malformed record at line %d: %v", e.Line, e.Err)
}

func (e *ErrMalformedRecord) Unwrap() error { return e.Err }

// rawRecord decodes doc_id loosely so a non-string doc_id (e.g. a
// bare number) is caught explicitly rather than silently stringified.
type rawRecord struct {
	DocId json.RawMessage `json:"doc_id"`
	Body  *string         `json:"body"`
}

// ReadStream reads a line-delimited document stream and calls fn for
// each decoded Record, in file order. It stops and returns an
// *ErrMalformedRecord on the first line that fails to decode into a
// valid record. Blank lines are skipped.
func ReadStream(r io.Reader, fn func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(bytesTrimSpace(line)) == 0 {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			return &ErrMalformedRecord{Line: lineNo, Err: err}
		}

		var docID string
		if err := json.Unmarshal(raw.DocId, &docID); err != nil {
			return &ErrMalformedRecord{Line: lineNo, Err: fmt.Errorf("doc_id must be a string: %w", err)}
		}
		if docID == "" {
			return &ErrMalformedRecord{Line: lineNo, Err: fmt.Errorf("doc_id must not be empty")}
		}
		if raw.Body == nil {
			return &ErrMalformedRecord{Line: lineNo, Err: fmt.Errorf("missing body field")}
		}

		if err := fn(Record{DocId: docID, Body: *raw.Body}); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("docstore: reading stream: %w", err)
	}
	return nil
}

func bytesTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpaceByte(b[start]) {
		start++
	}
	for end > start && isSpaceByte(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
