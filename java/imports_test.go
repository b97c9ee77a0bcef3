package java

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func exampleUnit() *CompilationUnit {
	typ := NewTypeDeclaration(Public, "Test", "com.example.base.BaseEntity").
		AddImplements("java.io.Serializable", "Comparable").
		AddAnnotation(NewAnnotation("org.springframework.stereotype.Component"))

	field := NewField("name", "java.lang.String", Private, `"zhangsan"`).
		AddAnnotation(NewAnnotation("TestAnnotation",
			PlainAttribute("value", "test"),
			ClassAttribute("value2", "cn.ljyun.Test", "com.baidu.Test")))
	typ.AddField(field)
	typ.AddField(NewField("age", "int", Private, "12"))
	typ.AddField(NewField("card", "cn.ljyun.entity.Card", Private, "new Card()"))

	method := NewMethod("test", "void", Public).
		AddParameter(NewParameter("card", "cn.ljyun.Card")).
		Statement("$T $V = new $T();", "cn.ljyun.Card", "card", "cn.ljyun.entity.Card").
		Statement("System.out.println($V.getName());", "card")
	typ.AddMethod(method)

	return NewCompilationUnit("com.example.test", "Test").AddType(typ)
}

func TestReferencedTypesOrder(t *testing.T) {
	got, err := ReferencedTypes(exampleUnit())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"com.example.base.BaseEntity",
		"java.io.Serializable",
		"Comparable",
		"org.springframework.stereotype.Component",
		"java.lang.String",
		"TestAnnotation",
		"cn.ljyun.Test",
		"com.baidu.Test",
		"int",
		"cn.ljyun.entity.Card",
		"void",
		"cn.ljyun.Card",
		"cn.ljyun.Card",
		"cn.ljyun.entity.Card",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReferencedTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverImports(t *testing.T) {
	got, err := DiscoverImports(exampleUnit())
	if err != nil {
		t.Fatal(err)
	}
	// The unit declares Test itself, so neither cn.ljyun.Test nor
	// com.baidu.Test may claim that simple name.
	want := []string{
		"cn.ljyun.entity.Card",
		"com.example.base.BaseEntity",
		"java.io.Serializable",
		"org.springframework.stereotype.Component",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiscoverImports() mismatch (-want +got):\n%s", diff)
	}
}

func TestQualifyFirstSeenWins(t *testing.T) {
	imports, err := ResolveImports(exampleUnit(), FirstSeenWins)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"cn.ljyun.entity.Card", "Card"},
		{"cn.ljyun.Card", "cn.ljyun.Card"},
		{"cn.ljyun.Test", "cn.ljyun.Test"},
		{"com.example.test.Test", "Test"},
		{"java.lang.String", "String"},
		{"java.lang.Integer", "Integer"},
		{"java.io.Serializable[]", "Serializable[]"},
		{"com.example.test.Sibling", "Sibling"},
		{"org.unused.Thing", "org.unused.Thing"},
		{"int", "int"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := imports.Qualify(tt.in); got != tt.want {
				t.Errorf("Qualify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	wantCollisions := []Collision{
		{Simple: "Test", Kept: "com.example.test.Test", Rejected: "cn.ljyun.Test"},
		{Simple: "Test", Kept: "com.example.test.Test", Rejected: "com.baidu.Test"},
		{Simple: "Card", Kept: "cn.ljyun.entity.Card", Rejected: "cn.ljyun.Card"},
	}
	if diff := cmp.Diff(wantCollisions, imports.Collisions()); diff != "" {
		t.Errorf("Collisions() mismatch (-want +got):\n%s", diff)
	}
}

func TestSameSimpleNameFields(t *testing.T) {
	typ := NewTypeDeclaration(Public, "Holder", "").
		AddField(NewField("first", "a.Foo", Private, "")).
		AddField(NewField("second", "b.Foo", Private, ""))
	unit := NewCompilationUnit("com.example", "Holder").AddType(typ)

	imports, err := ResolveImports(unit, FirstSeenWins)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.Foo"}, imports.Specs()); diff != "" {
		t.Errorf("Specs() mismatch (-want +got):\n%s", diff)
	}
	first, second := imports.Qualify("a.Foo"), imports.Qualify("b.Foo")
	if first == second {
		t.Fatalf("a.Foo and b.Foo both render as %q", first)
	}
	if second != "b.Foo" {
		t.Errorf("Qualify(b.Foo) = %q, want fully qualified", second)
	}

	_, err = ResolveImports(unit, RejectCollisions)
	var ce *ImportCollisionError
	if !errors.As(err, &ce) {
		t.Fatalf("ResolveImports(RejectCollisions) error = %v, want *ImportCollisionError", err)
	}
	want := ImportCollisionError{Unit: "com.example.Holder", Simple: "Foo", Kept: "a.Foo", Rejected: "b.Foo"}
	if *ce != want {
		t.Errorf("ImportCollisionError = %+v, want %+v", *ce, want)
	}
}

func TestJavaLangNotShadowed(t *testing.T) {
	typ := NewTypeDeclaration(Public, "Shadow", "").
		AddField(NewField("a", "org.acme.String", Private, "")).
		AddField(NewField("b", "java.lang.String", Private, ""))
	unit := NewCompilationUnit("com.example", "Shadow").AddType(typ)

	imports, err := ResolveImports(unit, FirstSeenWins)
	if err != nil {
		t.Fatal(err)
	}
	if got := imports.Specs(); len(got) != 0 {
		t.Errorf("Specs() = %v, want none", got)
	}
	if got := imports.Qualify("java.lang.String"); got != "String" {
		t.Errorf("Qualify(java.lang.String) = %q, want String", got)
	}
	if got := imports.Qualify("org.acme.String"); got != "org.acme.String" {
		t.Errorf("Qualify(org.acme.String) = %q, want org.acme.String", got)
	}
}

func TestReferencedTypesTemplateError(t *testing.T) {
	typ := NewTypeDeclaration(Public, "Broken", "").
		AddMethod(NewMethod("run", "void", Public).
			Statement("ok();").
			Statement("$T x;"))
	unit := NewCompilationUnit("com.example", "Broken").AddType(typ)

	_, err := ReferencedTypes(unit)
	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("ReferencedTypes() error = %v, want *TemplateError", err)
	}
	if te.Unit != "com.example.Broken" || te.Method != "run" || te.Statement != 1 {
		t.Errorf("TemplateError location = %s %s %d", te.Unit, te.Method, te.Statement)
	}
}

func TestReservedSimpleNames(t *testing.T) {
	tests := []struct {
		name      string
		reserved  string
		qualified string
		want      string
	}{
		{"unqualified", "Card", "x.Card", "Card"},
		{"unqualified java.lang", "String", "org.acme.String", "String"},
		{"same package", "com.example.Card", "x.Card", "Card"},
		{"own type", "com.example.Holder", "x.Holder", "Holder"},
		{"java.lang", "java.lang.Integer", "x.Integer", "Integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := NewTypeDeclaration(Public, "Holder", "").
				AddField(NewField("local", tt.reserved, Private, "")).
				AddField(NewField("remote", tt.qualified, Private, ""))
			unit := NewCompilationUnit("com.example", "Holder").AddType(typ)

			imports, err := ResolveImports(unit, FirstSeenWins)
			if err != nil {
				t.Fatal(err)
			}
			if got := imports.Specs(); len(got) != 0 {
				t.Errorf("Specs() = %v, want none", got)
			}
			if got := imports.Qualify(tt.reserved); got != tt.want {
				t.Errorf("Qualify(%q) = %q, want %q", tt.reserved, got, tt.want)
			}
			if got := imports.Qualify(tt.qualified); got != tt.qualified {
				t.Errorf("Qualify(%q) = %q, want fully qualified", tt.qualified, got)
			}
			want := []Collision{{Simple: tt.want, Kept: imports.bySimple[tt.want], Rejected: tt.qualified}}
			if diff := cmp.Diff(want, imports.Collisions()); diff != "" {
				t.Errorf("Collisions() mismatch (-want +got):\n%s", diff)
			}

			_, err = ResolveImports(unit, RejectCollisions)
			var ce *ImportCollisionError
			if !errors.As(err, &ce) {
				t.Fatalf("ResolveImports(RejectCollisions) error = %v, want *ImportCollisionError", err)
			}
			if ce.Rejected != tt.qualified {
				t.Errorf("ImportCollisionError.Rejected = %q, want %q", ce.Rejected, tt.qualified)
			}
		})
	}
}

func TestUnqualifiedSharesNameWithoutImport(t *testing.T) {
	typ := NewTypeDeclaration(Public, "Holder", "").
		AddField(NewField("a", "String", Private, "")).
		AddField(NewField("b", "java.lang.String", Private, "")).
		AddField(NewField("c", "Card", Private, "")).
		AddField(NewField("d", "com.example.Card", Private, ""))
	unit := NewCompilationUnit("com.example", "Holder").AddType(typ)

	imports, err := ResolveImports(unit, RejectCollisions)
	if err != nil {
		t.Fatal(err)
	}
	for in, want := range map[string]string{
		"String":           "String",
		"java.lang.String": "String",
		"Card":             "Card",
		"com.example.Card": "Card",
	} {
		if got := imports.Qualify(in); got != want {
			t.Errorf("Qualify(%q) = %q, want %q", in, got, want)
		}
	}
	if got := imports.Specs(); len(got) != 0 {
		t.Errorf("Specs() = %v, want none", got)
	}
}
