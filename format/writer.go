package format

import (
	"fmt"
	"io"
	"strings"
)

const defaultIndent = "    "

// SourceWriter writes indented source text. It tracks a nesting level and
// whether the indent for the current line is still owed; the indent is
// written lazily by the first Write on a line so blank lines stay empty.
//
// The first write error is kept and returned by every later call.
type SourceWriter struct {
	w          io.Writer
	level      int
	indentStr  string
	indentOwed bool
	err        error
}

func NewSourceWriter(w io.Writer) *SourceWriter {
	return &SourceWriter{
		w:          w,
		indentStr:  defaultIndent,
		indentOwed: true,
	}
}

// Level returns the current nesting level.
func (sw *SourceWriter) Level() int {
	return sw.level
}

// Err returns the first write error.
func (sw *SourceWriter) Err() error {
	return sw.err
}

// MarkIndentOwed makes the next Write start with the indent.
func (sw *SourceWriter) MarkIndentOwed() {
	sw.indentOwed = true
}

func (sw *SourceWriter) writeIndent() {
	if !sw.indentOwed {
		return
	}
	sw.indentOwed = false
	if sw.level > 0 {
		sw.raw(strings.Repeat(sw.indentStr, sw.level))
	}
}

func (sw *SourceWriter) raw(s string) {
	if sw.err != nil || s == "" {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

// Write writes s, preceded by the owed indent if any.
func (sw *SourceWriter) Write(s string) error {
	if s == "" {
		return sw.err
	}
	sw.writeIndent()
	sw.raw(s)
	return sw.err
}

func (sw *SourceWriter) Writef(format string, args ...any) error {
	return sw.Write(fmt.Sprintf(format, args...))
}

// Newline ends the current line. An owed indent is dropped, so empty lines
// carry no trailing whitespace.
func (sw *SourceWriter) Newline() error {
	sw.raw("\n")
	sw.indentOwed = true
	return sw.err
}

// Line writes s followed by a newline.
func (sw *SourceWriter) Line(s string) error {
	if err := sw.Write(s); err != nil {
		return err
	}
	return sw.Newline()
}

// WithIndent runs fn one level deeper. The level is restored however fn
// returns.
func (sw *SourceWriter) WithIndent(fn func() error) error {
	sw.level++
	defer func() { sw.level-- }()
	if err := fn(); err != nil {
		return err
	}
	return sw.err
}
