package java

import (
	"fmt"
	"strings"
)

// RenderAnnotation writes a as Java source, displaying type names through q.
//
// The attribute named "value" uses the single-element shorthand: plain
// values become one quoted, comma-joined literal and class references
// become class literals. Every other attribute is written as name={...}.
func RenderAnnotation(a *AnnotationDeclaration, q Qualifier) string {
	var sb strings.Builder
	sb.WriteByte('@')
	sb.WriteString(q.Qualify(a.Name))
	if len(a.Attributes) == 0 {
		return sb.String()
	}
	sb.WriteByte('(')
	for i, attr := range a.Attributes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(renderAttribute(attr, q))
	}
	sb.WriteByte(')')
	return sb.String()
}

func renderAttribute(attr AnnotationAttribute, q Qualifier) string {
	if attr.Kind == ValueClassReference {
		literals := make([]string, len(attr.Values))
		for i, v := range attr.Values {
			literals[i] = q.Qualify(v) + ".class"
		}
		if attr.Name == "value" {
			if len(literals) == 1 {
				return literals[0]
			}
			return "{" + strings.Join(literals, ",") + "}"
		}
		return attr.Name + "={" + strings.Join(literals, ",") + "}"
	}
	if attr.Name == "value" {
		return QuoteString(strings.Join(attr.Values, ","))
	}
	return attr.Name + "={" + strings.Join(attr.Values, ",") + "}"
}

// String renders the annotation with simple type names.
func (a *AnnotationDeclaration) String() string {
	return RenderAnnotation(a, SimpleNames)
}

// QuoteString returns s as a Java string literal. Control characters are
// written as escapes; everything else is kept as is.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
