package format

import (
	"encoding"

	"github.com/dhamidi/javagen/java"
)

// Encoder renders compilation units in one output format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(unit *java.CompilationUnit) error
}

var (
	_ Encoder = (*JavaEncoder)(nil)
	_ Encoder = (*LineEncoder)(nil)
	_ Encoder = (*JSONEncoder)(nil)
)
