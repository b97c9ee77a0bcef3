package pom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.1", "1.0", 1},
		{"1.0", "2.0", -1},
		{"1.0.0", "1.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.0-alpha", "1.0-beta", -1},
		{"1.0-beta", "1.0-alpha", 1},
		{"1.0-alpha", "1.0", -1},
		{"1.0", "1.0-alpha", 1},
		{"1.0-SNAPSHOT", "1.0", -1},
		{"1.0", "1.0-SNAPSHOT", 1},
		{"1.0-rc1", "1.0-beta1", 1},
		{"1.0-sp1", "1.0", 1},
		{"1.0.0.Final", "1.0.0", 0},
		{"1.0.0.RELEASE", "1.0.0", 0},
		{"2.0", "10.0", -1},
		{"2.6.6", "2.7.0", -1},
		{"1.0.1", "1", 1},
		{"007", "7", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		coord   string
		want    Dependency
		wantErr bool
	}{
		{"org.projectlombok:lombok", Dependency{GroupID: "org.projectlombok", ArtifactID: "lombok"}, false},
		{"mysql:mysql-connector-java:8.0.28", Dependency{GroupID: "mysql", ArtifactID: "mysql-connector-java", Version: "8.0.28"}, false},
		{"g:a:jdk8:1.0", Dependency{GroupID: "g", ArtifactID: "a", Classifier: "jdk8", Version: "1.0"}, false},
		{"justone", Dependency{}, true},
		{"g::1.0", Dependency{}, true},
		{"a:b:c:d:e", Dependency{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.coord, func(t *testing.T) {
			got, err := ParseCoordinate(tt.coord)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinate(%q) error = %v, wantErr %v", tt.coord, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCoordinate(%q) mismatch (-want +got):\n%s", tt.coord, diff)
			}
		})
	}
}

func TestMergeDependencies(t *testing.T) {
	base := []Dependency{
		{GroupID: "g", ArtifactID: "a", Version: "1.0"},
		{GroupID: "g", ArtifactID: "managed"},
		{GroupID: "g", ArtifactID: "keep", Version: "3.0"},
	}
	extra := []Dependency{
		{GroupID: "g", ArtifactID: "new", Version: "0.1"},
		{GroupID: "g", ArtifactID: "a", Version: "1.2"},
		{GroupID: "g", ArtifactID: "managed", Version: "2.0"},
		{GroupID: "g", ArtifactID: "keep", Version: "2.9"},
		{GroupID: "g", ArtifactID: "keep"},
	}

	want := []Dependency{
		{GroupID: "g", ArtifactID: "a", Version: "1.2"},
		{GroupID: "g", ArtifactID: "managed", Version: "2.0"},
		{GroupID: "g", ArtifactID: "keep", Version: "3.0"},
		{GroupID: "g", ArtifactID: "new", Version: "0.1"},
	}
	if diff := cmp.Diff(want, MergeDependencies(base, extra)); diff != "" {
		t.Errorf("MergeDependencies() mismatch (-want +got):\n%s", diff)
	}
}
