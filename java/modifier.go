package java

import "strings"

// Modifier is a set of Java modifier keywords encoded as bit flags.
type Modifier uint16

const (
	Public       Modifier = 1 << 1
	Private      Modifier = 1 << 2
	Protected    Modifier = 1 << 3
	Static       Modifier = 1 << 4
	Final        Modifier = 1 << 5
	Abstract     Modifier = 1 << 6
	Native       Modifier = 1 << 7
	Strictfp     Modifier = 1 << 8
	Synchronized Modifier = 1 << 9
	Transient    Modifier = 1 << 10
	Volatile     Modifier = 1 << 11
)

// DeclKind selects which modifiers are legal and in which order they are
// written.
type DeclKind int

const (
	KindType DeclKind = iota
	KindField
	KindMethod
)

func (k DeclKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

type modifierKeyword struct {
	bit     Modifier
	keyword string
}

var (
	typeModifiers = []modifierKeyword{
		{Public, "public"},
		{Private, "private"},
		{Protected, "protected"},
		{Static, "static"},
		{Final, "final"},
		{Abstract, "abstract"},
		{Strictfp, "strictfp"},
	}
	fieldModifiers = []modifierKeyword{
		{Public, "public"},
		{Private, "private"},
		{Protected, "protected"},
		{Static, "static"},
		{Final, "final"},
		{Transient, "transient"},
		{Volatile, "volatile"},
	}
	methodModifiers = []modifierKeyword{
		{Public, "public"},
		{Private, "private"},
		{Protected, "protected"},
		{Static, "static"},
		{Final, "final"},
		{Abstract, "abstract"},
		{Strictfp, "strictfp"},
		{Synchronized, "synchronized"},
		{Native, "native"},
	}
)

func keywordsFor(kind DeclKind) []modifierKeyword {
	switch kind {
	case KindType:
		return typeModifiers
	case KindField:
		return fieldModifiers
	case KindMethod:
		return methodModifiers
	default:
		return nil
	}
}

// Has reports whether every bit in flag is set in m.
func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}

// Keywords returns the keywords legal for kind whose bit is set in m, in
// canonical order. Bits that are not legal for kind are ignored and
// combinations are not validated.
func (m Modifier) Keywords(kind DeclKind) []string {
	var out []string
	for _, k := range keywordsFor(kind) {
		if m&k.bit != 0 {
			out = append(out, k.keyword)
		}
	}
	return out
}

// Render returns the space-joined keywords for kind.
func (m Modifier) Render(kind DeclKind) string {
	return strings.Join(m.Keywords(kind), " ")
}

// RenderModifiers is Render as a function.
func RenderModifiers(m Modifier, kind DeclKind) string {
	return m.Render(kind)
}
