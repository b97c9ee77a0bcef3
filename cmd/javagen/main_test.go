package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/javagen/config"
	"github.com/dhamidi/javagen/definition"
	"github.com/dhamidi/javagen/format"
	"github.com/dhamidi/javagen/generate"
	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/project"
)

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()

	var out bytes.Buffer
	if err := runInit(&out, dir, "shop"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Created project.yaml") {
		t.Errorf("init output = %q", out.String())
	}

	def, err := definition.Load(filepath.Join(dir, "project.yaml"))
	if err != nil {
		t.Fatalf("starter definition does not validate: %v", err)
	}
	cfg, err := config.Load(filepath.Join(dir, "javagen.yaml"))
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	cfg.Output.Root = dir

	out.Reset()
	if err := runGenerate(context.Background(), &out, generate.New(def, cfg), cfg); err != nil {
		t.Fatal(err)
	}

	for _, rel := range []string{
		"pom.xml",
		"src/main/resources/application.yml",
		"src/main/java/com/example/shop/Application.java",
		"src/main/java/com/example/shop/entity/User.java",
		"src/main/java/com/example/shop/dto/UserDto.java",
		"src/main/java/com/example/shop/controller/UserController.java",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if !strings.Contains(out.String(), "6 files, 6 written") {
		t.Errorf("generate output = %q", out.String())
	}

	pomData, err := os.ReadFile(filepath.Join(dir, "pom.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pomData), "<artifactId>lombok</artifactId>") {
		t.Errorf("pom.xml lacks configured dependency:\n%s", pomData)
	}

	out.Reset()
	if err := runGenerate(context.Background(), &out, generate.New(def, cfg), cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "6 files, 0 written") {
		t.Errorf("second generate output = %q", out.String())
	}

	out.Reset()
	if err := runInit(&out, dir, "shop"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "project.yaml already exists") {
		t.Errorf("second init output = %q", out.String())
	}
}

func TestDumpSourcesTruncates(t *testing.T) {
	dir := t.TempDir()
	proj := project.New(dir)

	typ := java.NewTypeDeclaration(java.Public, "Greeter", "").
		AddMethod(java.NewMethod("greet", "void", java.Public).
			Statement("$T.out.println($V);", "java.lang.System", `"hi"`))
	unit := java.NewCompilationUnit("com.example", "Greeter").AddType(typ)

	path := proj.SourcePath("com.example", "Greeter")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	stale := strings.Repeat("// stale content\n", 100)
	if err := os.WriteFile(path, []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := dumpSources(&out, proj, []*java.CompilationUnit{unit}, java.FirstSeenWins); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "wrote "+path) {
		t.Errorf("dump output = %q", out.String())
	}

	want, err := format.MarshalJava(unit)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("file content = %q, want %q", got, want)
	}
}
