package format

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/dhamidi/javagen/java"
)

// JavaEncoder writes a compilation unit as Java source. The whole unit is
// rendered before anything reaches the underlying writer, so a template or
// import error never leaves partial output behind.
type JavaEncoder struct {
	w      io.Writer
	unit   *java.CompilationUnit
	policy java.CollisionPolicy
}

type Option func(*JavaEncoder)

// WithCollisionPolicy sets how import collisions are handled.
func WithCollisionPolicy(policy java.CollisionPolicy) Option {
	return func(e *JavaEncoder) {
		e.policy = policy
	}
}

func NewJavaEncoder(w io.Writer, opts ...Option) *JavaEncoder {
	e := &JavaEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *JavaEncoder) Encode(unit *java.CompilationUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	if e.unit == nil {
		return nil, errors.New("no compilation unit to encode")
	}
	imports, err := java.ResolveImports(e.unit, e.policy)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	uw := &unitWriter{
		sw:      NewSourceWriter(&buf),
		unit:    e.unit,
		imports: imports,
	}
	if err := uw.writeUnit(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJava renders unit as Java source.
func MarshalJava(unit *java.CompilationUnit, opts ...Option) ([]byte, error) {
	e := NewJavaEncoder(nil, opts...)
	e.unit = unit
	return e.MarshalText()
}

type unitWriter struct {
	sw      *SourceWriter
	unit    *java.CompilationUnit
	imports *java.Imports
}

func (uw *unitWriter) qualify(name string) string {
	return uw.imports.Qualify(name)
}

func (uw *unitWriter) writeUnit() error {
	sw := uw.sw
	if pkg := uw.unit.Package; pkg != "" {
		sw.Line("package " + pkg + ";")
		sw.Newline()
	}

	if specs := uw.imports.Specs(); len(specs) > 0 {
		for _, spec := range specs {
			sw.Line("import " + spec + ";")
		}
		sw.Newline()
	}

	for i, t := range uw.unit.Types {
		if i > 0 {
			sw.Newline()
		}
		if err := uw.writeType(t); err != nil {
			return err
		}
	}
	return sw.Err()
}

func (uw *unitWriter) writeAnnotations(anns []*java.AnnotationDeclaration) {
	for _, a := range anns {
		uw.sw.Line(java.RenderAnnotation(a, uw.imports))
	}
}

func (uw *unitWriter) writeType(t *java.TypeDeclaration) error {
	sw := uw.sw
	uw.writeAnnotations(t.Annotations)

	header := words(t.Modifiers.Render(java.KindType), "class", t.Name)
	if t.Extends != "" {
		header = append(header, "extends", uw.qualify(t.Extends))
	}
	if len(t.Implements) > 0 {
		names := make([]string, len(t.Implements))
		for i, name := range t.Implements {
			names[i] = uw.qualify(name)
		}
		header = append(header, "implements", strings.Join(names, ", "))
	}
	sw.Line(strings.Join(header, " ") + " {")

	err := sw.WithIndent(func() error {
		for _, f := range t.Fields {
			uw.writeField(f)
		}
		for i, m := range t.Methods {
			if i > 0 || len(t.Fields) > 0 {
				sw.Newline()
			}
			if err := uw.writeMethod(t, m); err != nil {
				return err
			}
		}
		return sw.Err()
	})
	if err != nil {
		return err
	}
	return sw.Line("}")
}

func (uw *unitWriter) writeField(f *java.FieldDeclaration) {
	uw.writeAnnotations(f.Annotations)
	decl := strings.Join(words(f.Modifiers.Render(java.KindField), uw.qualify(f.Type), f.Name), " ")
	if f.Initializer != "" {
		decl += " = " + f.Initializer
	}
	uw.sw.Line(decl + ";")
}

func (uw *unitWriter) writeMethod(t *java.TypeDeclaration, m *java.MethodDeclaration) error {
	sw := uw.sw

	body := make([]string, len(m.Statements))
	for i, s := range m.Statements {
		text, err := java.ExpandWith(s.Template, s.Args, uw.imports)
		if err != nil {
			var te *java.TemplateError
			if errors.As(err, &te) {
				return te.At(uw.unit.QualifiedName(), t.Name, m.Name, i)
			}
			return err
		}
		body[i] = text
	}

	uw.writeAnnotations(m.Annotations)

	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		var parts []string
		for _, a := range p.Annotations {
			parts = append(parts, java.RenderAnnotation(a, uw.imports))
		}
		parts = append(parts, uw.qualify(p.Type), p.Name)
		params[i] = strings.Join(parts, " ")
	}

	var returnType string
	if !m.IsConstructor() {
		returnType = uw.qualify(m.ReturnType)
	}
	signature := strings.Join(words(m.Modifiers.Render(java.KindMethod), returnType, m.Name), " ") +
		"(" + strings.Join(params, ", ") + ")"

	if !m.HasBody() {
		return sw.Line(signature + ";")
	}

	sw.Line(signature + " {")
	err := sw.WithIndent(func() error {
		for _, text := range body {
			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimRight(line, " \t\r")
				if line == "" {
					sw.Newline()
					continue
				}
				sw.Line(line)
			}
		}
		return sw.Err()
	})
	if err != nil {
		return err
	}
	return sw.Line("}")
}

// words drops empty strings so absent modifiers leave no stray spaces.
func words(ws ...string) []string {
	var out []string
	for _, w := range ws {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
