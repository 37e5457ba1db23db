// Package errs implements the small error taxonomy spec.md §7 assigns
// to this core: DuplicateDocId, CorruptIndex, IoError, MalformedInput.
// The teacher's own error types (indexer/constrained/errors.go) are a
// single bare message string with no kind; this taxonomy generalizes
// that shape so a caller can branch on Kind without string matching.
package errs

import "fmt"

// Kind identifies which of the four error categories an Error
// belongs to.
type Kind int

const (
	// DuplicateDocId: the Builder's input stream presented the same
	// doc_id twice. Fatal to the build.
	DuplicateDocId Kind = iota
	// CorruptIndex: on-disk artifact sizes or counts are mutually
	// inconsistent at load time. Fatal to the load.
	CorruptIndex
	// IoError: an underlying I/O failure. Fatal to the in-flight
	// operation, safe to retry once the transient condition clears.
	IoError
	// MalformedInput: a stream record is missing a required field or
	// carries a non-string doc_id. Fatal to the build.
	MalformedInput
)

func (k Kind) String() string {
	switch k {
	case DuplicateDocId:
		return "DuplicateDocId"
	case CorruptIndex:
		return "CorruptIndex"
	case IoError:
		return "IoError"
	case MalformedInput:
		return "MalformedInput"
	default:
		return "Unknown"
	}
}

// Error carries a Kind plus a human-readable context string, and
// optionally wraps an underlying cause.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

func Wrap(kind Kind, context string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
