package java

import (
	"strings"
)

// Qualifier decides how a type name is displayed inside a unit.
type Qualifier interface {
	Qualify(name string) string
}

// QualifierFunc adapts a function to the Qualifier interface.
type QualifierFunc func(name string) string

func (f QualifierFunc) Qualify(name string) string {
	return f(name)
}

// SimpleNames displays every type by its simple name, keeping array
// suffixes.
var SimpleNames Qualifier = QualifierFunc(func(name string) string {
	t := ParseType(name)
	return t.WithName(t.SimpleName()).String()
})

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentType
	segmentValue
)

type segment struct {
	kind   segmentKind
	text   string
	offset int
}

type scanState int

const (
	scanText scanState = iota
	scanPlaceholder
)

// scanTemplate splits a template into literal text and placeholders.
// One trailing '$' is trimmed first. "$$" is a literal '$'.
func scanTemplate(template string) ([]segment, error) {
	src := strings.TrimSuffix(template, "$")

	var (
		segments []segment
		lit      strings.Builder
		state    = scanText
		start    int
	)
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{kind: segmentLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i, r := range src {
		switch state {
		case scanText:
			if r == '$' {
				state = scanPlaceholder
				start = i
				continue
			}
			lit.WriteRune(r)
		case scanPlaceholder:
			switch r {
			case 'T':
				flush()
				segments = append(segments, segment{kind: segmentType, offset: start})
			case 'V':
				flush()
				segments = append(segments, segment{kind: segmentValue, offset: start})
			case '$':
				lit.WriteByte('$')
			default:
				return nil, &TemplateError{
					Template:    template,
					Offset:      start,
					Placeholder: r,
					Arg:         -1,
					Err:         ErrUnknownPlaceholder,
				}
			}
			state = scanText
		}
	}
	if state == scanPlaceholder {
		return nil, &TemplateError{Template: template, Offset: start, Arg: -1, Err: ErrDanglingPlaceholder}
	}
	flush()
	return segments, nil
}

type binding struct {
	segment
	arg string
}

// bind assigns args to placeholders left to right and checks that every
// placeholder has an argument and every argument a placeholder.
func bind(template string, args []string) ([]binding, error) {
	segments, err := scanTemplate(template)
	if err != nil {
		return nil, err
	}
	out := make([]binding, 0, len(segments))
	next := 0
	for _, s := range segments {
		b := binding{segment: s}
		if s.kind != segmentLiteral {
			if next >= len(args) {
				return nil, &TemplateError{Template: template, Offset: s.offset, Arg: next, Err: ErrMissingArgument}
			}
			b.arg = args[next]
			next++
		}
		out = append(out, b)
	}
	if next < len(args) {
		return nil, &TemplateError{Template: template, Offset: len(template), Arg: next, Err: ErrUnusedArgument}
	}
	return out, nil
}

// Expand substitutes placeholders in template. $T is replaced by the simple
// name of its argument and $V by the argument verbatim.
func Expand(template string, args []string) (string, error) {
	return ExpandWith(template, args, SimpleNames)
}

// ExpandWith is Expand with $T arguments displayed through q.
func ExpandWith(template string, args []string, q Qualifier) (string, error) {
	bindings, err := bind(template, args)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range bindings {
		switch b.kind {
		case segmentLiteral:
			sb.WriteString(b.text)
		case segmentType:
			sb.WriteString(q.Qualify(b.arg))
		case segmentValue:
			sb.WriteString(b.arg)
		}
	}
	return sb.String(), nil
}

// TypeArgs returns the arguments consumed by $T placeholders, in order.
func TypeArgs(template string, args []string) ([]string, error) {
	bindings, err := bind(template, args)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, b := range bindings {
		if b.kind == segmentType {
			out = append(out, b.arg)
		}
	}
	return out, nil
}

// Expand expands the statement with simple type names.
func (s *MethodStatement) Expand() (string, error) {
	return Expand(s.Template, s.Args)
}
