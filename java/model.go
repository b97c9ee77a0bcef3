package java

// CompilationUnit is the model of one output source file.
type CompilationUnit struct {
	Package string
	Name    string
	Types   []*TypeDeclaration
}

func NewCompilationUnit(pkg, name string) *CompilationUnit {
	return &CompilationUnit{Package: pkg, Name: name}
}

func (u *CompilationUnit) AddType(t *TypeDeclaration) *CompilationUnit {
	u.Types = append(u.Types, t)
	return u
}

// QualifiedName returns the package-qualified name of the unit.
func (u *CompilationUnit) QualifiedName() string {
	if u.Package == "" {
		return u.Name
	}
	return u.Package + "." + u.Name
}

// TypeDeclaration is a single-inheritance class body.
type TypeDeclaration struct {
	Modifiers   Modifier
	Name        string
	Extends     string
	Implements  []string
	Fields      []*FieldDeclaration
	Methods     []*MethodDeclaration
	Annotations []*AnnotationDeclaration
}

func NewTypeDeclaration(mods Modifier, name, extends string) *TypeDeclaration {
	return &TypeDeclaration{Modifiers: mods, Name: name, Extends: extends}
}

func (t *TypeDeclaration) AddImplements(names ...string) *TypeDeclaration {
	t.Implements = append(t.Implements, names...)
	return t
}

func (t *TypeDeclaration) AddField(f *FieldDeclaration) *TypeDeclaration {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *TypeDeclaration) AddMethod(m *MethodDeclaration) *TypeDeclaration {
	t.Methods = append(t.Methods, m)
	return t
}

func (t *TypeDeclaration) AddAnnotation(a *AnnotationDeclaration) *TypeDeclaration {
	t.Annotations = append(t.Annotations, a)
	return t
}

type FieldDeclaration struct {
	Name        string
	Type        string
	Modifiers   Modifier
	Initializer string
	Annotations []*AnnotationDeclaration
}

// NewField creates a field. An empty initializer declares the field without
// one; otherwise the text is inserted verbatim after " = ".
func NewField(name, typeName string, mods Modifier, initializer string) *FieldDeclaration {
	return &FieldDeclaration{Name: name, Type: typeName, Modifiers: mods, Initializer: initializer}
}

func (f *FieldDeclaration) AddAnnotation(a *AnnotationDeclaration) *FieldDeclaration {
	f.Annotations = append(f.Annotations, a)
	return f
}

// MethodDeclaration is a method with a flat statement list. An empty
// ReturnType declares a constructor.
type MethodDeclaration struct {
	Name        string
	ReturnType  string
	Modifiers   Modifier
	Annotations []*AnnotationDeclaration
	Parameters  []*MethodParameter
	Statements  []*MethodStatement
}

func NewMethod(name, returnType string, mods Modifier) *MethodDeclaration {
	return &MethodDeclaration{Name: name, ReturnType: returnType, Modifiers: mods}
}

func (m *MethodDeclaration) AddAnnotation(a *AnnotationDeclaration) *MethodDeclaration {
	m.Annotations = append(m.Annotations, a)
	return m
}

func (m *MethodDeclaration) AddParameter(p *MethodParameter) *MethodDeclaration {
	m.Parameters = append(m.Parameters, p)
	return m
}

func (m *MethodDeclaration) AddStatement(s *MethodStatement) *MethodDeclaration {
	m.Statements = append(m.Statements, s)
	return m
}

// Statement appends a statement built from template and args.
func (m *MethodDeclaration) Statement(template string, args ...string) *MethodDeclaration {
	return m.AddStatement(NewStatement(template, args...))
}

// IsConstructor reports whether m has no return type.
func (m *MethodDeclaration) IsConstructor() bool {
	return m.ReturnType == ""
}

// HasBody reports whether m is written with a brace-delimited body.
// Abstract and native methods without statements end in ';'.
func (m *MethodDeclaration) HasBody() bool {
	if len(m.Statements) > 0 {
		return true
	}
	return m.Modifiers&(Abstract|Native) == 0
}

type MethodParameter struct {
	Name        string
	Type        string
	Annotations []*AnnotationDeclaration
}

func NewParameter(name, typeName string) *MethodParameter {
	return &MethodParameter{Name: name, Type: typeName}
}

func (p *MethodParameter) AddAnnotation(a *AnnotationDeclaration) *MethodParameter {
	p.Annotations = append(p.Annotations, a)
	return p
}

// MethodStatement is one line of a method body. Whether an argument is a
// type reference or a verbatim token depends on the placeholder that
// consumes it: $T for types, $V for verbatim text.
type MethodStatement struct {
	Template string
	Args     []string
}

func NewStatement(template string, args ...string) *MethodStatement {
	return &MethodStatement{Template: template, Args: args}
}

type AnnotationDeclaration struct {
	Name       string
	Attributes []AnnotationAttribute
}

func NewAnnotation(name string, attrs ...AnnotationAttribute) *AnnotationDeclaration {
	return &AnnotationDeclaration{Name: name, Attributes: attrs}
}

func (a *AnnotationDeclaration) AddAttribute(attr AnnotationAttribute) *AnnotationDeclaration {
	a.Attributes = append(a.Attributes, attr)
	return a
}

// ValueKind tags how the values of an annotation attribute are written.
type ValueKind int

const (
	// ValuePlain values are inserted as written.
	ValuePlain ValueKind = iota
	// ValueClassReference values are qualified type names written as
	// class literals and registered for import.
	ValueClassReference
)

func (k ValueKind) String() string {
	if k == ValueClassReference {
		return "class"
	}
	return "plain"
}

type AnnotationAttribute struct {
	Name   string
	Kind   ValueKind
	Values []string
}

// PlainAttribute returns an attribute whose values are written as is.
func PlainAttribute(name string, values ...string) AnnotationAttribute {
	return AnnotationAttribute{Name: name, Kind: ValuePlain, Values: values}
}

// ClassAttribute returns an attribute whose values are class literals.
func ClassAttribute(name string, classes ...string) AnnotationAttribute {
	return AnnotationAttribute{Name: name, Kind: ValueClassReference, Values: classes}
}
