// Package definition reads the YAML project definition that describes the
// entities, DTOs and HTTP APIs of a generated service.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 3306
)

// Position is a 1-based line and column in the definition file.
type Position struct {
	Line   int
	Column int
}

func positionOf(node *yaml.Node) Position {
	return Position{Line: node.Line, Column: node.Column}
}

func (p Position) String() string {
	if p.Column > 0 {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%d", p.Line)
}

type Definition struct {
	Project     string        `yaml:"project"`
	BasePackage string        `yaml:"basePackage"`
	Group       string        `yaml:"group,omitempty"`
	Version     string        `yaml:"version,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Git         string        `yaml:"git,omitempty"`
	Datasources []*Datasource `yaml:"datasources,omitempty"`
	Dtos        []*Data       `yaml:"dtos,omitempty"`
	APIs        []*API        `yaml:"api,omitempty"`

	refs map[string]*Data
}

type Datasource struct {
	Host     string  `yaml:"host,omitempty"`
	Port     int     `yaml:"port,omitempty"`
	Username string  `yaml:"username,omitempty"`
	Password string  `yaml:"password,omitempty"`
	Database string  `yaml:"database"`
	Entities []*Data `yaml:"entities,omitempty"`

	Pos Position `yaml:"-"`
}

func (ds *Datasource) UnmarshalYAML(node *yaml.Node) error {
	type plain Datasource
	if err := node.Decode((*plain)(ds)); err != nil {
		return err
	}
	ds.Pos = positionOf(node)
	return nil
}

// DataKind tells entities, which are backed by a table, from DTOs.
type DataKind int

const (
	KindEntity DataKind = iota
	KindDto
)

func (k DataKind) String() string {
	if k == KindDto {
		return "dto"
	}
	return "entity"
}

// Data is an entity or a DTO.
type Data struct {
	Name   string   `yaml:"name"`
	Table  string   `yaml:"table,omitempty"`
	Fields []*Field `yaml:"fields,omitempty"`

	Kind DataKind `yaml:"-"`
	Pos  Position `yaml:"-"`
}

func (d *Data) UnmarshalYAML(node *yaml.Node) error {
	type plain Data
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Pos = positionOf(node)
	return nil
}

// IDField returns the autoId field of d, or nil.
func (d *Data) IDField() *Field {
	for _, f := range d.Fields {
		if f.Type == TypeAutoID {
			return f
		}
	}
	return nil
}

// Field is a property of an entity or DTO. Exactly one of a scalar Type, Ref
// or List describes its type; Type is set to TypeRef or TypeList when only
// Ref or List is given.
type Field struct {
	Name   string    `yaml:"name"`
	Column string    `yaml:"column,omitempty"`
	Type   DataType  `yaml:"type,omitempty"`
	Ref    string    `yaml:"ref,omitempty"`
	List   *ListType `yaml:"list,omitempty"`

	Pos Position `yaml:"-"`
}

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	type plain Field
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	f.Pos = positionOf(node)
	return nil
}

// ListType is the element type of a list: a scalar type or a reference.
type ListType struct {
	Type DataType `yaml:"type,omitempty"`
	Ref  string   `yaml:"ref,omitempty"`
}

type API struct {
	Name     string     `yaml:"name"`
	BaseURL  string     `yaml:"baseUrl,omitempty"`
	Requests []*Request `yaml:"requests,omitempty"`

	Pos Position `yaml:"-"`
}

func (a *API) UnmarshalYAML(node *yaml.Node) error {
	type plain API
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	a.Pos = positionOf(node)
	return nil
}

type Request struct {
	Name   string   `yaml:"name"`
	Method string   `yaml:"method"`
	Path   string   `yaml:"path,omitempty"`
	Params []*Param `yaml:"params,omitempty"`

	Pos Position `yaml:"-"`
}

func (r *Request) UnmarshalYAML(node *yaml.Node) error {
	type plain Request
	if err := node.Decode((*plain)(r)); err != nil {
		return err
	}
	r.Pos = positionOf(node)
	return nil
}

// Param is a request parameter. A parameter with PathVariable set is bound
// to the {PathVariable} segment of the request path.
type Param struct {
	Name         string    `yaml:"name,omitempty"`
	Type         DataType  `yaml:"type,omitempty"`
	PathVariable string    `yaml:"pathVariable,omitempty"`
	Ref          string    `yaml:"ref,omitempty"`
	List         *ListType `yaml:"list,omitempty"`

	Pos Position `yaml:"-"`
}

func (p *Param) UnmarshalYAML(node *yaml.Node) error {
	type plain Param
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.Pos = positionOf(node)
	return nil
}

// ParamName returns the parameter name, falling back to the path variable.
func (p *Param) ParamName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PathVariable
}

// Entities returns the entities of every datasource in declaration order.
func (d *Definition) Entities() []*Data {
	var out []*Data
	for _, ds := range d.Datasources {
		out = append(out, ds.Entities...)
	}
	return out
}

// Lookup returns the entity or DTO called name.
func (d *Definition) Lookup(name string) (*Data, bool) {
	data, ok := d.refs[name]
	return data, ok
}

// Names returns the names of every entity and DTO in declaration order.
func (d *Definition) Names() []string {
	var names []string
	for _, data := range d.Entities() {
		names = append(names, data.Name)
	}
	for _, data := range d.Dtos {
		names = append(names, data.Name)
	}
	return names
}

func (d *Definition) applyDefaults() {
	for _, ds := range d.Datasources {
		if ds.Host == "" {
			ds.Host = DefaultHost
		}
		if ds.Port == 0 {
			ds.Port = DefaultPort
		}
		for _, e := range ds.Entities {
			e.Kind = KindEntity
		}
	}
	for _, dto := range d.Dtos {
		dto.Kind = KindDto
	}
	normalize := func(t *DataType, ref string, list *ListType) {
		if *t != TypeUnset {
			return
		}
		switch {
		case ref != "" && list == nil:
			*t = TypeRef
		case list != nil && ref == "":
			*t = TypeList
		}
	}
	for _, data := range append(d.Entities(), d.Dtos...) {
		for _, f := range data.Fields {
			normalize(&f.Type, f.Ref, f.List)
		}
	}
	for _, api := range d.APIs {
		for _, req := range api.Requests {
			for _, p := range req.Params {
				normalize(&p.Type, p.Ref, p.List)
			}
		}
	}
}

func (d *Definition) buildRefs() {
	d.refs = make(map[string]*Data)
	for _, data := range append(d.Entities(), d.Dtos...) {
		if _, dup := d.refs[data.Name]; !dup && data.Name != "" {
			d.refs[data.Name] = data
		}
	}
}

// Parse decodes and validates a definition. Decoding and validation
// problems are reported together as a *ValidationError; the returned
// definition is usable whenever decoding itself succeeded.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		var terr *yaml.TypeError
		if !errors.As(err, &terr) {
			return nil, &ValidationError{Problems: problemsFromYAML(err)}
		}
		def.applyDefaults()
		def.buildRefs()
		found := append(problemsFromYAML(err), def.Validate()...)
		sortProblems(found)
		return &def, &ValidationError{Problems: found}
	}

	def.applyDefaults()
	def.buildRefs()
	if problems := def.Validate(); len(problems) > 0 {
		return &def, &ValidationError{Problems: problems}
	}
	return &def, nil
}

// Load reads and parses the definition at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	def, err := Parse(data)
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.File = path
	}
	return def, err
}

// Marshal encodes d as YAML with two-space indentation.
func Marshal(d *Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode definition: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode definition: %w", err)
	}
	return buf.Bytes(), nil
}
