package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwacek/corpusidx/docstore"
)

const sampleTrec = `<DOC>
<DOCNO> WSJ880406-0090 </DOCNO>
<HL> Daminozide Decision </HL>
<TEXT>
Daminozide is a plant growth regulator.
<p>
Some growers use it on apples.
</TEXT>
</DOC>
<DOC>
<DOCNO>WSJ880406-0091</DOCNO>
<TEXT>Economic policy affects growth.</TEXT>
</DOC>
`

func TestParseTrecExtractsRecords(t *testing.T) {
	var out bytes.Buffer
	writer := docstore.NewStreamWriter(&out)

	n, err := ParseTrec(strings.NewReader(sampleTrec), writer)
	if err != nil {
		t.Fatalf("ParseTrec: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d docs, want 2", n)
	}

	var records []docstore.Record
	err = docstore.ReadStream(&out, func(r docstore.Record) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0].DocId != "WSJ880406-0090" {
		t.Errorf("doc_id = %q, want trimmed WSJ880406-0090", records[0].DocId)
	}
	if !strings.Contains(records[0].Body, "Daminozide is a plant growth regulator.") {
		t.Errorf("body missing expected text: %q", records[0].Body)
	}
	if strings.Contains(records[0].Body, "<p>") {
		t.Errorf("body should have paragraph tags stripped: %q", records[0].Body)
	}

	if records[1].DocId != "WSJ880406-0091" {
		t.Errorf("doc_id = %q, want WSJ880406-0091", records[1].DocId)
	}
	if records[1].Body != "Economic policy affects growth." {
		t.Errorf("body = %q", records[1].Body)
	}
}

func TestParseTrecSkipsMissingDocno(t *testing.T) {
	const noDocno = `<DOC>
<TEXT>No doc number here.</TEXT>
</DOC>
<DOC>
<DOCNO>WSJ001</DOCNO>
<TEXT>Has a doc number.</TEXT>
</DOC>
`
	var out bytes.Buffer
	writer := docstore.NewStreamWriter(&out)

	n, err := ParseTrec(strings.NewReader(noDocno), writer)
	if err != nil {
		t.Fatalf("ParseTrec: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d docs, want 1 (malformed doc skipped)", n)
	}
}

func TestParseTrecMultipleTextSections(t *testing.T) {
	const multiText = `<DOC>
<DOCNO>WSJ002</DOCNO>
<TEXT>First paragraph.</TEXT>
<TEXT>Second paragraph.</TEXT>
</DOC>
`
	var out bytes.Buffer
	writer := docstore.NewStreamWriter(&out)

	if _, err := ParseTrec(strings.NewReader(multiText), writer); err != nil {
		t.Fatalf("ParseTrec: %v", err)
	}

	var body string
	err := docstore.ReadStream(&out, func(r docstore.Record) error {
		body = r.Body
		return nil
	})
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if body != "First paragraph. Second paragraph." {
		t.Errorf("body = %q, want joined paragraphs", body)
	}
}

func TestCountDocs(t *testing.T) {
	n, err := CountDocs(strings.NewReader(sampleTrec))
	if err != nil {
		t.Fatalf("CountDocs: %v", err)
	}
	if n != 2 {
		t.Errorf("CountDocs = %d, want 2", n)
	}
}
