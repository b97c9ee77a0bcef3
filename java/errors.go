package java

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingArgument     = errors.New("missing argument")
	ErrUnusedArgument      = errors.New("unused argument")
	ErrUnknownPlaceholder  = errors.New("unknown placeholder")
	ErrDanglingPlaceholder = errors.New("dangling placeholder")
)

// TemplateError reports a statement template that cannot be expanded.
// Unit, Type, Method and Statement locate the statement once the error has
// passed through the emitter; they are empty for direct Expand calls.
type TemplateError struct {
	Unit      string
	Type      string
	Method    string
	Statement int

	Template    string
	Offset      int
	Placeholder rune
	Arg         int
	Err         error
}

func (e *TemplateError) Error() string {
	var sb strings.Builder
	if e.Unit != "" {
		fmt.Fprintf(&sb, "%s: ", e.Unit)
	}
	if e.Method != "" {
		if e.Type != "" {
			fmt.Fprintf(&sb, "%s.", e.Type)
		}
		fmt.Fprintf(&sb, "%s: statement %d: ", e.Method, e.Statement)
	}
	fmt.Fprintf(&sb, "template %q: ", e.Template)
	switch {
	case errors.Is(e.Err, ErrUnknownPlaceholder):
		fmt.Fprintf(&sb, "%v $%c at offset %d", e.Err, e.Placeholder, e.Offset)
	case errors.Is(e.Err, ErrDanglingPlaceholder):
		fmt.Fprintf(&sb, "%v at offset %d", e.Err, e.Offset)
	default:
		fmt.Fprintf(&sb, "%v %d", e.Err, e.Arg)
	}
	return sb.String()
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// At returns a copy of e located at statement index stmt of method in type
// typ of unit.
func (e *TemplateError) At(unit, typ, method string, stmt int) *TemplateError {
	c := *e
	c.Unit, c.Type, c.Method, c.Statement = unit, typ, method, stmt
	return &c
}

// ImportCollisionError reports two qualified names competing for the same
// simple name in one unit.
type ImportCollisionError struct {
	Unit     string
	Simple   string
	Kept     string
	Rejected string
}

func (e *ImportCollisionError) Error() string {
	return fmt.Sprintf("%s: import collision on %s: %s is already imported, cannot import %s",
		e.Unit, e.Simple, e.Kept, e.Rejected)
}
