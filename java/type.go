package java

import (
	"strings"
)

// Type is a Java type name as written in the code model, split into its
// element name and array depth so that "a.b.Foo[]" can be imported as
// "a.b.Foo" and still be displayed as "Foo[]".
type Type struct {
	Name       string
	ArrayDepth int
}

// ParseType splits trailing "[]" pairs off name.
func ParseType(name string) Type {
	name = strings.TrimSpace(name)
	depth := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		depth++
	}
	return Type{Name: name, ArrayDepth: depth}
}

func (t Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// WithName returns t with its element name replaced, keeping the array depth.
func (t Type) WithName(name string) Type {
	return Type{Name: name, ArrayDepth: t.ArrayDepth}
}

func (t Type) IsPrimitive() bool {
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t Type) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

// IsQualified reports whether the element name carries a package.
func (t Type) IsQualified() bool {
	return strings.Contains(t.Name, ".")
}

// Package returns the package part of the element name, or "" if unqualified.
func (t Type) Package() string {
	return PackageOf(t.Name)
}

// SimpleName returns the last segment of the element name.
func (t Type) SimpleName() string {
	return SimpleName(t.Name)
}

// IsJavaLang reports whether the type lives directly in java.lang.
// Subpackages such as java.lang.reflect still need an import.
func (t Type) IsJavaLang() bool {
	return t.Package() == "java.lang"
}

// Importable reports whether the type needs an import line when referenced
// from a unit in package pkg.
func (t Type) Importable(pkg string) bool {
	if !t.IsQualified() || t.IsJavaLang() {
		return false
	}
	return t.Package() != pkg
}

// SimpleName returns the part of a qualified name after the final '.'.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// PackageOf returns the part of a qualified name before the final '.'.
func PackageOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// IsQualified reports whether name contains a package separator.
func IsQualified(name string) bool {
	return ParseType(name).IsQualified()
}
