package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/javagen/java"
	"github.com/google/go-cmp/cmp"
)

func greetUnit() *java.CompilationUnit {
	method := java.NewMethod("greet", "void", 0).
		AddParameter(java.NewParameter("c", "Card")).
		Statement("System.out.println($V.getName());", "c")
	typ := java.NewTypeDeclaration(java.Public, "Test", "").
		AddField(java.NewField("name", "String", 0, `"zhangsan"`)).
		AddMethod(method)
	return java.NewCompilationUnit("com.example", "Test").AddType(typ)
}

func TestJavaEncoderGreet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJavaEncoder(&buf).Encode(greetUnit()); err != nil {
		t.Fatal(err)
	}
	want := `package com.example;

public class Test {
    String name = "zhangsan";

    void greet(Card c) {
        System.out.println(c.getName());
    }
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func fullUnit() *java.CompilationUnit {
	typ := java.NewTypeDeclaration(java.Public, "Test", "com.example.base.BaseEntity").
		AddImplements("java.io.Serializable", "java.lang.Comparable").
		AddAnnotation(java.NewAnnotation("org.springframework.stereotype.Component",
			java.PlainAttribute("value", "test")))

	typ.AddField(java.NewField("name", "java.lang.String", java.Private, `"zhangsan"`).
		AddAnnotation(java.NewAnnotation("javax.validation.constraints.NotNull")))
	typ.AddField(java.NewField("age", "int", java.Private|java.Static|java.Final, "12"))
	typ.AddField(java.NewField("card", "cn.ljyun.entity.Card", java.Private, "new Card()"))

	typ.AddMethod(java.NewMethod("Test", "", java.Public).Statement("super();"))
	typ.AddMethod(java.NewMethod("test", "void", java.Public).
		AddParameter(java.NewParameter("card", "cn.ljyun.Card").
			AddAnnotation(java.NewAnnotation("javax.annotation.Nullable"))).
		Statement("$T $V = new $T();", "cn.ljyun.Card", "other", "cn.ljyun.entity.Card").
		Statement("System.out.println($V.getName());", "other"))
	typ.AddMethod(java.NewMethod("hash", "int", java.Private|java.Native))

	return java.NewCompilationUnit("com.example.test", "Test").AddType(typ)
}

func TestJavaEncoderFull(t *testing.T) {
	got, err := MarshalJava(fullUnit())
	if err != nil {
		t.Fatal(err)
	}
	want := `package com.example.test;

import cn.ljyun.entity.Card;
import com.example.base.BaseEntity;
import java.io.Serializable;
import javax.annotation.Nullable;
import javax.validation.constraints.NotNull;
import org.springframework.stereotype.Component;

@Component("test")
public class Test extends BaseEntity implements Serializable, Comparable {
    @NotNull
    private String name = "zhangsan";
    private static final int age = 12;
    private Card card = new Card();

    public Test() {
        super();
    }

    public void test(@Nullable cn.ljyun.Card card) {
        cn.ljyun.Card other = new Card();
        System.out.println(other.getName());
    }

    private native int hash();
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("MarshalJava() mismatch (-want +got):\n%s", diff)
	}
}

func TestJavaEncoderDeterministic(t *testing.T) {
	first, err := MarshalJava(fullUnit())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := MarshalJava(fullUnit())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestJavaEncoderMultipleTypes(t *testing.T) {
	unit := java.NewCompilationUnit("", "A").
		AddType(java.NewTypeDeclaration(java.Public, "A", "")).
		AddType(java.NewTypeDeclaration(0, "B", "A"))
	got, err := MarshalJava(unit)
	if err != nil {
		t.Fatal(err)
	}
	want := "public class A {\n}\n\nclass B extends A {\n}\n"
	if string(got) != want {
		t.Errorf("MarshalJava() = %q, want %q", got, want)
	}
}

func TestJavaEncoderMultilineStatement(t *testing.T) {
	typ := java.NewTypeDeclaration(java.Public, "M", "").
		AddMethod(java.NewMethod("run", "void", java.Public).
			Statement("int a = 1;   \nint b = $V;", "2"))
	got, err := MarshalJava(java.NewCompilationUnit("p", "M").AddType(typ))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "        int a = 1;\n        int b = 2;\n") {
		t.Errorf("statement lines not indented and trimmed:\n%s", got)
	}
}

func TestJavaEncoderTemplateError(t *testing.T) {
	typ := java.NewTypeDeclaration(java.Public, "Broken", "").
		AddMethod(java.NewMethod("run", "void", java.Public).
			Statement("ok();").
			Statement("$Q;", "x"))
	unit := java.NewCompilationUnit("com.example", "Broken").AddType(typ)

	var buf bytes.Buffer
	err := NewJavaEncoder(&buf).Encode(unit)
	var te *java.TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("Encode() error = %v, want *java.TemplateError", err)
	}
	if te.Unit != "com.example.Broken" || te.Type != "Broken" || te.Method != "run" || te.Statement != 1 {
		t.Errorf("error location = %q %q %q %d", te.Unit, te.Type, te.Method, te.Statement)
	}
	if !errors.Is(err, java.ErrUnknownPlaceholder) {
		t.Errorf("Encode() error = %v, want ErrUnknownPlaceholder", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Encode() wrote %d bytes on error", buf.Len())
	}
}

func TestJavaEncoderRejectCollisions(t *testing.T) {
	typ := java.NewTypeDeclaration(java.Public, "Holder", "").
		AddField(java.NewField("a", "a.Foo", java.Private, "")).
		AddField(java.NewField("b", "b.Foo", java.Private, ""))
	unit := java.NewCompilationUnit("p", "Holder").AddType(typ)

	got, err := MarshalJava(unit)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "    private Foo a;\n    private b.Foo b;\n") {
		t.Errorf("collision not rendered fully qualified:\n%s", got)
	}

	_, err = MarshalJava(unit, WithCollisionPolicy(java.RejectCollisions))
	var ce *java.ImportCollisionError
	if !errors.As(err, &ce) {
		t.Errorf("MarshalJava(RejectCollisions) error = %v, want *java.ImportCollisionError", err)
	}
}

func TestJavaEncoderNoUnit(t *testing.T) {
	if _, err := NewJavaEncoder(&bytes.Buffer{}).MarshalText(); err == nil {
		t.Error("MarshalText() without unit error = nil")
	}
}

func TestJavaEncoderReservedNames(t *testing.T) {
	tests := []struct {
		name     string
		reserved string
		remote   string
		want     string
	}{
		{
			name:     "unqualified",
			reserved: "Card",
			remote:   "x.Card",
			want:     "    private Card local;\n    private x.Card remote;\n",
		},
		{
			name:     "unqualified java.lang",
			reserved: "String",
			remote:   "org.acme.String",
			want:     "    private String local;\n    private org.acme.String remote;\n",
		},
		{
			name:     "same package",
			reserved: "com.example.Card",
			remote:   "x.Card",
			want:     "    private Card local;\n    private x.Card remote;\n",
		},
		{
			name:     "own type",
			reserved: "com.example.Holder",
			remote:   "x.Holder",
			want:     "    private Holder local;\n    private x.Holder remote;\n",
		},
		{
			name:     "java.lang",
			reserved: "java.lang.Integer",
			remote:   "x.Integer",
			want:     "    private Integer local;\n    private x.Integer remote;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := java.NewTypeDeclaration(java.Public, "Holder", "").
				AddField(java.NewField("local", tt.reserved, java.Private, "")).
				AddField(java.NewField("remote", tt.remote, java.Private, ""))
			unit := java.NewCompilationUnit("com.example", "Holder").AddType(typ)

			got, err := MarshalJava(unit)
			if err != nil {
				t.Fatal(err)
			}
			if strings.Contains(string(got), "import ") {
				t.Errorf("unexpected import line:\n%s", got)
			}
			if !strings.Contains(string(got), tt.want) {
				t.Errorf("MarshalJava() = \n%s\nwant fields\n%s", got, tt.want)
			}

			_, err = MarshalJava(unit, WithCollisionPolicy(java.RejectCollisions))
			var ce *java.ImportCollisionError
			if !errors.As(err, &ce) {
				t.Errorf("MarshalJava(RejectCollisions) error = %v, want *java.ImportCollisionError", err)
			}
		})
	}
}
