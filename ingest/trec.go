// Package ingest stands in for the upstream parser spec.md §1 treats
// as an external collaborator: it walks WSJ-style TREC documents (the
// loosely-formed "XML" the teacher's scanner/filereader/trec.go and
// tokenizer.go parse with a hand-rolled scanner rather than a
// standards-compliant XML parser, because the source feed is not
// well-formed XML) and emits the line-delimited document stream
// spec.md §6 defines as the Builder's input. Nothing in index or
// query imports this package; it exists only for the `parse` CLI
// subcommand's interoperability story.
package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	log "github.com/cihub/seelog"

	"github.com/cwacek/corpusidx/docstore"
)

// ParseTrec reads WSJ-style <DOC>...</DOC> records from r and writes
// one docstore.Record per document to w, in file order. It tolerates
// the malformed markup the teacher's BadXMLTokenizer was built to
// survive: unescaped ampersands outside TEXT, ragged whitespace, and
// tags split across lines.
func ParseTrec(r io.Reader, w *docstore.StreamWriter) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("ingest: reading input: %w", err)
	}

	count := 0
	rest := data
	for {
		docStart := bytes.Index(rest, []byte("<DOC>"))
		if docStart < 0 {
			break
		}
		docEnd := bytes.Index(rest, []byte("</DOC>"))
		if docEnd < 0 {
			log.Warnf("Found <DOC> with no matching </DOC>; stopping")
			break
		}

		block := rest[docStart+len("<DOC>") : docEnd]
		rest = rest[docEnd+len("</DOC>"):]

		docId := extractTag(block, "DOCNO")
		if docId == "" {
			log.Warnf("Skipping document %d: no DOCNO found", count+1)
			continue
		}

		body := extractAllText(block)

		if err := w.Write(docstore.Record{DocId: docId, Body: body}); err != nil {
			return count, err
		}
		count++
	}

	return count, w.Flush()
}

// extractTag returns the trimmed text content of the first
// <tag>...</tag> occurrence in block.
func extractTag(block []byte, tag string) string {
	open := []byte("<" + tag + ">")
	close := []byte("</" + tag + ">")

	start := bytes.Index(block, open)
	if start < 0 {
		return ""
	}
	start += len(open)

	end := bytes.Index(block[start:], close)
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(string(block[start : start+end]))
}

// extractAllText concatenates the content of every <TEXT>...</TEXT>
// section in block, separated by a space, since WSJ articles can
// carry several TEXT sections (one per paragraph).
func extractAllText(block []byte) string {
	open := []byte("<TEXT>")
	close := []byte("</TEXT>")

	var buf bytes.Buffer
	rest := block
	for {
		start := bytes.Index(rest, open)
		if start < 0 {
			break
		}
		start += len(open)

		end := bytes.Index(rest[start:], close)
		if end < 0 {
			break
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.Write(rest[start : start+end])

		rest = rest[start+end+len(close):]
	}

	return stripTags(buf.String())
}

// stripTags removes any remaining "<...>" markup (paragraph markers,
// stray nested tags) from extracted text content, leaving the bare
// prose for the Normalizer to consume.
func stripTags(s string) string {
	var out strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// CountDocs scans a reader for the number of lines containing a <DOC>
// marker, without fully parsing.
func CountDocs(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	count := 0
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "<DOC>") {
			count++
		}
	}
	return count, scanner.Err()
}
