package codec

import "fmt"

// Posting is a single (document index, term frequency) pair within a
// postings list, as referenced by spec.md §4.2: the encoded unit is the
// integer document index assigned during a build, not the doc_id
// string itself.
type Posting struct {
	DocIndex uint64
	Tf       uint64
}

// Encode serializes a postings list already sorted in ascending
// DocIndex order into the VByte/delta format described in spec.md
// §4.2: [vbyte(delta1), vbyte(tf1), vbyte(delta2), vbyte(tf2), ...].
//
// Encode panics if postings is not strictly increasing in DocIndex or
// if any Tf is zero; both are invariants the builder must uphold
// before calling Encode, so a violation here means a bug upstream, not
// bad input.
func Encode(postings []Posting) []byte {
	buf := make([]byte, 0, len(postings)*2)

	var prev uint64
	for i, p := range postings {
		if p.Tf == 0 {
			panic(fmt.Sprintf("codec: zero tf for posting %d", i))
		}
		if i > 0 && p.DocIndex <= prev {
			panic(fmt.Sprintf("codec: postings not strictly increasing at %d", i))
		}

		delta := p.DocIndex
		if i > 0 {
			delta = p.DocIndex - prev
		}
		prev = p.DocIndex

		buf = PutUvarint(buf, delta)
		buf = PutUvarint(buf, p.Tf)
	}

	return buf
}

// Decode reverses Encode, reconstructing df postings from the encoded
// byte range. df is known ahead of time from the dictionary entry, so
// Decode does not need an end-of-list sentinel.
func Decode(buf []byte, df int) ([]Posting, error) {
	out := make([]Posting, 0, df)

	var cur uint64
	pos := 0
	for i := 0; i < df; i++ {
		delta, n := Uvarint(buf[pos:])
		if n == 0 {
			return nil, fmt.Errorf("codec: truncated postings list at entry %d of %d", i, df)
		}
		pos += n

		tf, n := Uvarint(buf[pos:])
		if n == 0 {
			return nil, fmt.Errorf("codec: truncated tf at entry %d of %d", i, df)
		}
		pos += n

		cur += delta
		out = append(out, Posting{DocIndex: cur, Tf: tf})
	}

	return out, nil
}
