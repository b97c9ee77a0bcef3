package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/javagen/java"
	"github.com/dhamidi/javagen/pom"
)

func TestParseYAML(t *testing.T) {
	src := `
output:
  root: out
  source_dir: src
emit:
  workers: 3
  strict_imports: true
java:
  jdk_version: "17"
  pom_dependencies:
    - org.projectlombok:lombok
    - mysql:mysql-connector-java:8.0.28
`
	cfg, err := Parse([]byte(src), YAML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Root != "out" || cfg.Output.SourceDir != "src" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Emit.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Emit.Workers)
	}
	if cfg.CollisionPolicy() != java.RejectCollisions {
		t.Error("strict_imports did not select RejectCollisions")
	}
	if cfg.Java.JDKVersion != "17" {
		t.Errorf("JDKVersion = %q", cfg.Java.JDKVersion)
	}
	if diff := cmp.Diff(pom.SpringBootParent(), cfg.Java.PomParent); diff != "" {
		t.Errorf("default parent lost (-want +got):\n%s", diff)
	}

	deps, err := cfg.Dependencies()
	if err != nil {
		t.Fatal(err)
	}
	want := []pom.Dependency{
		{GroupID: "org.projectlombok", ArtifactID: "lombok"},
		{GroupID: "mysql", ArtifactID: "mysql-connector-java", Version: "8.0.28"},
	}
	if diff := cmp.Diff(want, deps); diff != "" {
		t.Errorf("Dependencies() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOML(t *testing.T) {
	src := `
[output]
root = "gen"

[emit]
workers = 2

[java]
jdk_version = "11"

[java.pom_parent]
group_id = "com.example"
artifact_id = "parent"
version = "1.0"
`
	cfg, err := Parse([]byte(src), TOML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Root != "gen" || cfg.Emit.Workers != 2 || cfg.Java.JDKVersion != "11" {
		t.Errorf("cfg = %+v", cfg)
	}
	want := &pom.Parent{GroupID: "com.example", ArtifactID: "parent", Version: "1.0"}
	if diff := cmp.Diff(want, cfg.Java.PomParent); diff != "" {
		t.Errorf("PomParent mismatch (-want +got):\n%s", diff)
	}
	if cfg.CollisionPolicy() != java.FirstSeenWins {
		t.Error("default policy is not FirstSeenWins")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
	}{
		{"negative workers", "emit:\n  workers: -1\n", YAML},
		{"empty jdk", "java:\n  jdk_version: \"\"\n", YAML},
		{"bad coordinate", "java:\n  pom_dependencies: [lombok]\n", YAML},
		{"bad yaml", "emit: [\n", YAML},
		{"bad toml", "[emit\n", TOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src), tt.format); err == nil {
				t.Error("Parse() succeeded, want error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if got := Find(dir); got != "" {
		t.Errorf("Find() on empty dir = %q", got)
	}

	tomlPath := filepath.Join(dir, "javagen.toml")
	if err := os.WriteFile(tomlPath, []byte("[emit]\nworkers = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "javagen.yaml")
	if err := os.WriteFile(yamlPath, []byte("emit:\n  workers: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Find(dir); got != yamlPath {
		t.Errorf("Find() = %q, want %q", got, yamlPath)
	}

	cfg, err := Load(tomlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Emit.Workers != 5 || cfg.Path() != tomlPath {
		t.Errorf("Load(toml) workers = %d, path = %q", cfg.Emit.Workers, cfg.Path())
	}

	cfg, err = Load(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Emit.Workers != 7 {
		t.Errorf("Load(yaml) workers = %d", cfg.Emit.Workers)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}

func TestMarshal(t *testing.T) {
	for _, format := range []Format{YAML, TOML} {
		data, err := Marshal(Default(), format)
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(Marshal()) error = %v\n%s", err, data)
		}
		if diff := cmp.Diff(Default().Java, cfg.Java); diff != "" {
			t.Errorf("format %d: Java mismatch (-want +got):\n%s", format, diff)
		}
	}
}
