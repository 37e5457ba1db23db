package codec

import (
	"reflect"
	"testing"
)

func TestVByteRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40}

	for _, v := range cases {
		buf := PutUvarint(nil, v)
		got, n := Uvarint(buf)
		if n != len(buf) {
			t.Errorf("Uvarint(%d) consumed %d bytes, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("Uvarint(PutUvarint(%d)) = %d", v, got)
		}
	}
}

func TestPostingsRoundTrip(t *testing.T) {
	cases := [][]Posting{
		{},
		{{DocIndex: 0, Tf: 1}},
		{{DocIndex: 0, Tf: 3}, {DocIndex: 1, Tf: 1}, {DocIndex: 5000, Tf: 7}},
		{{DocIndex: 2, Tf: 1}, {DocIndex: 300, Tf: 2}, {DocIndex: 301, Tf: 1}},
	}

	for _, list := range cases {
		enc := Encode(list)
		dec, err := Decode(enc, len(list))
		if err != nil {
			t.Fatalf("Decode(%v): %v", list, err)
		}
		if !reflect.DeepEqual(dec, list) {
			if len(dec) != 0 || len(list) != 0 {
				t.Errorf("round trip mismatch: got %v, want %v", dec, list)
			}
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	enc := Encode([]Posting{{DocIndex: 0, Tf: 1}, {DocIndex: 1, Tf: 1}})
	_, err := Decode(enc[:1], 2)
	if err == nil {
		t.Fatal("expected error decoding truncated postings list")
	}
}

func TestEncodePanicsOnNonIncreasing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-increasing doc index")
		}
	}()
	Encode([]Posting{{DocIndex: 5, Tf: 1}, {DocIndex: 5, Tf: 1}})
}
