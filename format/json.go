package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/javagen/java"
)

// JSONEncoder writes the resolved view of a unit: the import list plus every
// declaration with type names as they appear in the Java output.
type JSONEncoder struct {
	w      io.Writer
	unit   *java.CompilationUnit
	policy java.CollisionPolicy
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(unit *java.CompilationUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.unit == nil {
		return nil, errors.New("no compilation unit to encode")
	}
	data, err := e.buildUnitData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonUnit struct {
	Package    string          `json:"package"`
	Name       string          `json:"name"`
	Imports    []string        `json:"imports,omitempty"`
	Collisions []jsonCollision `json:"collisions,omitempty"`
	Types      []jsonType      `json:"types"`
}

type jsonCollision struct {
	Simple   string `json:"simple"`
	Kept     string `json:"kept"`
	Rejected string `json:"rejected"`
}

type jsonType struct {
	Name        string       `json:"name"`
	Modifiers   []string     `json:"modifiers,omitempty"`
	Extends     string       `json:"extends,omitempty"`
	Implements  []string     `json:"implements,omitempty"`
	Annotations []string     `json:"annotations,omitempty"`
	Fields      []jsonField  `json:"fields,omitempty"`
	Methods     []jsonMethod `json:"methods,omitempty"`
}

type jsonField struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Initializer string   `json:"initializer,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

type jsonMethod struct {
	Name        string          `json:"name"`
	ReturnType  string          `json:"returnType,omitempty"`
	Modifiers   []string        `json:"modifiers,omitempty"`
	Annotations []string        `json:"annotations,omitempty"`
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Statements  []string        `json:"statements,omitempty"`
}

type jsonParameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Annotations []string `json:"annotations,omitempty"`
}

func (e *JSONEncoder) buildUnitData() (jsonUnit, error) {
	u := e.unit
	imports, err := java.ResolveImports(u, e.policy)
	if err != nil {
		return jsonUnit{}, err
	}
	data := jsonUnit{
		Package: u.Package,
		Name:    u.Name,
		Imports: imports.Specs(),
	}
	for _, c := range imports.Collisions() {
		data.Collisions = append(data.Collisions, jsonCollision(c))
	}

	renderAll := func(anns []*java.AnnotationDeclaration) []string {
		var out []string
		for _, a := range anns {
			out = append(out, java.RenderAnnotation(a, imports))
		}
		return out
	}

	for _, t := range u.Types {
		jt := jsonType{
			Name:        t.Name,
			Modifiers:   t.Modifiers.Keywords(java.KindType),
			Annotations: renderAll(t.Annotations),
		}
		if t.Extends != "" {
			jt.Extends = imports.Qualify(t.Extends)
		}
		for _, name := range t.Implements {
			jt.Implements = append(jt.Implements, imports.Qualify(name))
		}
		for _, f := range t.Fields {
			jt.Fields = append(jt.Fields, jsonField{
				Name:        f.Name,
				Type:        imports.Qualify(f.Type),
				Modifiers:   f.Modifiers.Keywords(java.KindField),
				Initializer: f.Initializer,
				Annotations: renderAll(f.Annotations),
			})
		}
		for _, m := range t.Methods {
			jm := jsonMethod{
				Name:        m.Name,
				Modifiers:   m.Modifiers.Keywords(java.KindMethod),
				Annotations: renderAll(m.Annotations),
			}
			if !m.IsConstructor() {
				jm.ReturnType = imports.Qualify(m.ReturnType)
			}
			for _, p := range m.Parameters {
				jm.Parameters = append(jm.Parameters, jsonParameter{
					Name:        p.Name,
					Type:        imports.Qualify(p.Type),
					Annotations: renderAll(p.Annotations),
				})
			}
			for _, s := range m.Statements {
				text, err := java.ExpandWith(s.Template, s.Args, imports)
				if err != nil {
					return jsonUnit{}, err
				}
				jm.Statements = append(jm.Statements, text)
			}
			jt.Methods = append(jt.Methods, jm)
		}
		data.Types = append(data.Types, jt)
	}
	return data, nil
}
