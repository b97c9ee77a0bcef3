package java

import (
	"sort"
)

// CollisionPolicy decides what happens when two different qualified names
// with the same simple name are referenced from one unit.
type CollisionPolicy int

const (
	// FirstSeenWins imports the first name in walk order; later names are
	// written fully qualified.
	FirstSeenWins CollisionPolicy = iota
	// RejectCollisions fails resolution with an *ImportCollisionError.
	RejectCollisions
)

// Collision records a qualified name that lost its simple name to another.
type Collision struct {
	Simple   string
	Kept     string
	Rejected string
}

// Imports is the resolved import table of one compilation unit. It maps each
// claimed simple name to exactly one qualified name. Names declared by the
// unit itself, names in the unit's package and java.lang names claim their
// simple name without producing an import line.
//
// Imports is not safe for concurrent mutation; it is built once per unit.
type Imports struct {
	unit       string
	pkg        string
	policy     CollisionPolicy
	bySimple   map[string]string
	imported   map[string]bool
	collisions []Collision
}

// NewImportsFor returns an empty import table for unit. The simple names of
// the unit's own types are claimed up front.
func NewImportsFor(unit *CompilationUnit, policy CollisionPolicy) *Imports {
	i := &Imports{
		unit:     unit.QualifiedName(),
		pkg:      unit.Package,
		policy:   policy,
		bySimple: map[string]string{},
		imported: map[string]bool{},
	}
	for _, t := range unit.Types {
		qualified := t.Name
		if unit.Package != "" {
			qualified = unit.Package + "." + t.Name
		}
		i.bySimple[t.Name] = qualified
	}
	return i
}

// Register claims the simple name of name. Unqualified names and primitives
// are ignored.
func (i *Imports) Register(name string) error {
	t := ParseType(name)
	if !t.IsQualified() || t.IsPrimitive() {
		return nil
	}
	simple := t.SimpleName()
	if kept, ok := i.bySimple[simple]; ok {
		if kept == t.Name || i.compatible(kept, t) {
			return nil
		}
		for _, c := range i.collisions {
			if c.Rejected == t.Name {
				return nil
			}
		}
		c := Collision{Simple: simple, Kept: kept, Rejected: t.Name}
		if i.policy == RejectCollisions {
			return &ImportCollisionError{Unit: i.unit, Simple: simple, Kept: kept, Rejected: t.Name}
		}
		i.collisions = append(i.collisions, c)
		return nil
	}
	i.bySimple[simple] = t.Name
	if t.Importable(i.pkg) {
		i.imported[t.Name] = true
	}
	return nil
}

// reserve claims the simple name of an unqualified reference. An unqualified
// name means a type of the unit's package or of java.lang, so it never
// produces an import line, and a qualified name outside those packages can no
// longer take its simple name.
func (i *Imports) reserve(name string) {
	t := ParseType(name)
	if t.Name == "" || t.IsQualified() || t.IsPrimitive() || t.IsVoid() {
		return
	}
	if _, ok := i.bySimple[t.Name]; !ok {
		i.bySimple[t.Name] = t.Name
	}
}

// compatible reports whether t may share the simple name held by an
// unqualified reservation. Only names that need no import can.
func (i *Imports) compatible(kept string, t Type) bool {
	return !IsQualified(kept) && !t.Importable(i.pkg)
}

// Qualify returns the display form of name: the simple name when it is
// unambiguous in this unit, the fully qualified name otherwise.
func (i *Imports) Qualify(name string) string {
	t := ParseType(name)
	if !t.IsQualified() {
		return t.String()
	}
	simple := t.SimpleName()
	kept, ok := i.bySimple[simple]
	switch {
	case ok && (kept == t.Name || i.compatible(kept, t)):
		return t.WithName(simple).String()
	case !ok && (t.IsJavaLang() || t.Package() == i.pkg):
		return t.WithName(simple).String()
	default:
		return t.String()
	}
}

// Specs returns the qualified names needing an import line, sorted.
func (i *Imports) Specs() []string {
	specs := make([]string, 0, len(i.imported))
	for q := range i.imported {
		specs = append(specs, q)
	}
	sort.Strings(specs)
	return specs
}

// Collisions returns the names that lost their simple name, in walk order.
func (i *Imports) Collisions() []Collision {
	return i.collisions
}

// ReferencedTypes walks unit and returns every type name it references, in
// walk order, with duplicates. The order is: for each type its extends,
// implements and annotations; then each field's type and annotations; then
// each method's return type, annotations, parameters and the arguments of
// $T placeholders in its statements.
func ReferencedTypes(unit *CompilationUnit) ([]string, error) {
	var refs []string
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				refs = append(refs, n)
			}
		}
	}
	addAnnotations := func(anns []*AnnotationDeclaration) {
		for _, a := range anns {
			add(a.Name)
			for _, attr := range a.Attributes {
				if attr.Kind == ValueClassReference {
					add(attr.Values...)
				}
			}
		}
	}

	for _, t := range unit.Types {
		add(t.Extends)
		add(t.Implements...)
		addAnnotations(t.Annotations)
		for _, f := range t.Fields {
			add(f.Type)
			addAnnotations(f.Annotations)
		}
		for _, m := range t.Methods {
			add(m.ReturnType)
			addAnnotations(m.Annotations)
			for _, p := range m.Parameters {
				add(p.Type)
				addAnnotations(p.Annotations)
			}
			for idx, s := range m.Statements {
				args, err := TypeArgs(s.Template, s.Args)
				if err != nil {
					if te, ok := err.(*TemplateError); ok {
						return nil, te.At(unit.QualifiedName(), t.Name, m.Name, idx)
					}
					return nil, err
				}
				add(args...)
			}
		}
	}
	return refs, nil
}

// ResolveImports builds the import table of unit. Names that never need an
// import (unqualified names, java.lang and the unit's own package) claim their
// simple names before importable names, so an imported type can never shadow
// them.
func ResolveImports(unit *CompilationUnit, policy CollisionPolicy) (*Imports, error) {
	refs, err := ReferencedTypes(unit)
	if err != nil {
		return nil, err
	}
	imports := NewImportsFor(unit, policy)
	for _, ref := range refs {
		t := ParseType(ref)
		if !t.IsQualified() {
			imports.reserve(ref)
			continue
		}
		if !t.Importable(unit.Package) {
			if err := imports.Register(ref); err != nil {
				return nil, err
			}
		}
	}
	for _, ref := range refs {
		if ParseType(ref).Importable(unit.Package) {
			if err := imports.Register(ref); err != nil {
				return nil, err
			}
		}
	}
	return imports, nil
}

// DiscoverImports returns the sorted import lines unit needs, resolving
// collisions first-seen-wins.
func DiscoverImports(unit *CompilationUnit) ([]string, error) {
	imports, err := ResolveImports(unit, FirstSeenWins)
	if err != nil {
		return nil, err
	}
	return imports.Specs(), nil
}
